package cmd

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlovstudio/rui/rui/database"
	"github.com/xlovstudio/rui/rui/database/models"
	"github.com/xlovstudio/rui/rui/database/repositories"
)

const seedYAML = `
cards:
  - id: rskhjv101
    group: SKZ
    member: Hyunjin
    rarity: Rare
  - id: CSKHNV101
    group: SKZ
    member: Han
    rarity: common
    type: regular
    droppable: false
  - id: LSKFXV101
    group: SKZ
    member: Felix
    rarity: rare
  - group: SKZ
    member: Nobody
    rarity: common
`

func TestParseCards(t *testing.T) {
	valid, rejected, err := parseCards([]byte(seedYAML))
	require.NoError(t, err)

	require.Len(t, valid, 2)
	assert.Equal(t, "RSKHJV101", valid[0].ID)
	assert.Equal(t, models.RarityRare, valid[0].Rarity)
	assert.Equal(t, models.CardTypeRegular, valid[0].Type)
	assert.True(t, valid[0].IsDroppable())
	assert.False(t, valid[1].IsDroppable())

	assert.Len(t, rejected, 2)
	assert.Contains(t, rejected, "LSKFXV101")
	assert.Contains(t, rejected, "#4")
}

func TestParseCards_BadYAML(t *testing.T) {
	_, _, err := parseCards([]byte("cards: [\n"))
	assert.Error(t, err)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	store, err := database.NewFileStore(t.TempDir())
	require.NoError(t, err)
	repo := repositories.NewCardRepository(store)

	valid, _, err := parseCards([]byte(seedYAML))
	require.NoError(t, err)

	added, err := seed(ctx, repo, valid)
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	added, err = seed(ctx, repo, valid)
	require.NoError(t, err)
	assert.Zero(t, added, "existing ids are left alone")

	added, err = seed(ctx, repo, nil)
	require.NoError(t, err)
	assert.Zero(t, added)
}

func TestMigrate(t *testing.T) {
	ctx := context.Background()
	src, err := database.NewFileStore(t.TempDir())
	require.NoError(t, err)
	dst, err := database.NewFileStore(t.TempDir())
	require.NoError(t, err)

	users := database.Document(json.RawMessage(`{"100":{"id":"100","coins":50}}`))
	require.NoError(t, src.Save(ctx, database.CollectionUsers, users))
	require.NoError(t, src.Save(ctx, database.CollectionCards, database.Document(json.RawMessage(`[]`))))

	copied, err := migrate(ctx, src, dst)
	require.NoError(t, err)
	assert.Equal(t, 2, copied)

	got, err := dst.Load(ctx, database.CollectionUsers)
	require.NoError(t, err)
	assert.JSONEq(t, string(users), string(got))

	_, err = dst.Load(ctx, database.CollectionUserCards)
	assert.ErrorIs(t, err, database.ErrNotFound)
}
