package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStore(filepath.Join(dir, "data"))
	require.NoError(t, err)

	_, err = s.Load(ctx, CollectionUsers)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Save(ctx, CollectionUsers, Document(`{"1":{"coins":5}}`)))
	doc, err := s.Load(ctx, CollectionUsers)
	require.NoError(t, err)
	assert.JSONEq(t, `{"1":{"coins":5}}`, string(doc))

	require.NoError(t, s.Save(ctx, CollectionUsers, Document(`{}`)))
	doc, err = s.Load(ctx, CollectionUsers)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(doc))

	entries, err := os.ReadDir(filepath.Join(dir, "data"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files are left behind")
}

func TestFileStore_RejectsBadContent(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	assert.Error(t, s.Save(ctx, CollectionCards, Document(`[`)))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "cards.json"), []byte("  \n"), 0o644))
	_, err = s.Load(ctx, CollectionCards)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "cards.json"), []byte("{oops"), 0o644))
	_, err = s.Load(ctx, CollectionCards)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestParseCollection(t *testing.T) {
	c, err := ParseCollection("user_cards")
	require.NoError(t, err)
	assert.Equal(t, CollectionUserCards, c)

	_, err = ParseCollection("auctions")
	assert.Error(t, err)
}
