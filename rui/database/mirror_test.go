package database_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/xlovstudio/rui/rui/database"
	"github.com/xlovstudio/rui/rui/database/mock"
)

func newMirror(t *testing.T) (*database.MirroredStore, *mock.MockStore, *mock.MockBlob) {
	ctrl := gomock.NewController(t)
	local := mock.NewMockStore(ctrl)
	remote := mock.NewMockBlob(ctrl)
	return database.NewMirroredStore(local, remote), local, remote
}

func TestMirroredStore_LoadPrefersRemote(t *testing.T) {
	m, local, remote := newMirror(t)
	ctx := context.Background()

	remote.EXPECT().Fetch(gomock.Any()).Return([]byte(`{"users":{"1":{"id":"1"}},"cards":[]}`), nil)
	local.EXPECT().Save(gomock.Any(), database.CollectionUsers, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ database.Collection, doc database.Document) error {
			assert.JSONEq(t, `{"1":{"id":"1"}}`, string(doc))
			return nil
		})

	doc, err := m.Load(ctx, database.CollectionUsers)
	require.NoError(t, err)
	assert.JSONEq(t, `{"1":{"id":"1"}}`, string(doc))
}

func TestMirroredStore_LoadFallsBackToLocal(t *testing.T) {
	tests := []struct {
		name string
		blob []byte
		err  error
	}{
		{name: "remote down", err: errors.New("connection refused")},
		{name: "remote empty", err: database.ErrNotFound},
		{name: "invalid json", blob: []byte(`{"users":`)},
		{name: "missing field", blob: []byte(`{"cards":[]}`)},
		{name: "null field", blob: []byte(`{"users":null}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, local, remote := newMirror(t)
			remote.EXPECT().Fetch(gomock.Any()).Return(tt.blob, tt.err)
			local.EXPECT().Load(gomock.Any(), database.CollectionUsers).Return(database.Document(`{"2":{}}`), nil)

			doc, err := m.Load(context.Background(), database.CollectionUsers)
			require.NoError(t, err)
			assert.JSONEq(t, `{"2":{}}`, string(doc))
		})
	}
}

func TestMirroredStore_SaveReplacesOnlyItsField(t *testing.T) {
	m, local, remote := newMirror(t)

	local.EXPECT().Save(gomock.Any(), database.CollectionCards, gomock.Any()).Return(nil)
	remote.EXPECT().Fetch(gomock.Any()).Return([]byte(`{"users":{"1":{}},"cards":[{"id":"OLD"}]}`), nil)
	remote.EXPECT().Put(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, data []byte) error {
			var snap map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(data, &snap))
			assert.JSONEq(t, `{"1":{}}`, string(snap["users"]))
			assert.JSONEq(t, `[{"id":"NEW"}]`, string(snap["cards"]))
			return nil
		})

	require.NoError(t, m.Save(context.Background(), database.CollectionCards, database.Document(`[{"id":"NEW"}]`)))
}

func TestMirroredStore_SaveStartsSnapshot(t *testing.T) {
	m, local, remote := newMirror(t)

	local.EXPECT().Save(gomock.Any(), database.CollectionUsers, gomock.Any()).Return(nil)
	remote.EXPECT().Fetch(gomock.Any()).Return(nil, database.ErrNotFound)
	remote.EXPECT().Put(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, data []byte) error {
			assert.JSONEq(t, `{"users":{}}`, string(data))
			return nil
		})

	require.NoError(t, m.Save(context.Background(), database.CollectionUsers, database.Document(`{}`)))
}

func TestMirroredStore_SaveSkipsUnreadableSnapshot(t *testing.T) {
	m, local, remote := newMirror(t)

	local.EXPECT().Save(gomock.Any(), database.CollectionUsers, gomock.Any()).Return(nil)
	remote.EXPECT().Fetch(gomock.Any()).Return(nil, errors.New("timeout"))
	remote.EXPECT().Put(gomock.Any(), gomock.Any()).Times(0)

	assert.NoError(t, m.Save(context.Background(), database.CollectionUsers, database.Document(`{}`)))
}

func TestMirroredStore_RemoteWriteFailureIsIgnored(t *testing.T) {
	m, local, remote := newMirror(t)

	local.EXPECT().Save(gomock.Any(), database.CollectionUsers, gomock.Any()).Return(nil)
	remote.EXPECT().Fetch(gomock.Any()).Return([]byte(`{}`), nil)
	remote.EXPECT().Put(gomock.Any(), gomock.Any()).Return(errors.New("access denied"))

	assert.NoError(t, m.Save(context.Background(), database.CollectionUsers, database.Document(`{}`)))
}

func TestMirroredStore_LocalFailureIsReturned(t *testing.T) {
	m, local, _ := newMirror(t)
	boom := errors.New("disk full")
	local.EXPECT().Save(gomock.Any(), database.CollectionUsers, gomock.Any()).Return(boom)

	assert.ErrorIs(t, m.Save(context.Background(), database.CollectionUsers, database.Document(`{}`)), boom)
}

func TestMirroredStore_Sync(t *testing.T) {
	m, local, remote := newMirror(t)

	remote.EXPECT().Fetch(gomock.Any()).Return([]byte(`{"user_cards":{"9":[]},"cards":[{"id":"OLD"}]}`), nil)
	local.EXPECT().Load(gomock.Any(), database.CollectionUsers).Return(database.Document(`{"1":{}}`), nil)
	local.EXPECT().Load(gomock.Any(), database.CollectionUserCards).Return(nil, database.ErrNotFound)
	local.EXPECT().Load(gomock.Any(), database.CollectionCards).Return(database.Document(`[]`), nil)
	remote.EXPECT().Put(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, data []byte) error {
			assert.JSONEq(t, `{"users":{"1":{}},"user_cards":{"9":[]},"cards":[]}`, string(data))
			return nil
		})

	require.NoError(t, m.Sync(context.Background()))
}

func TestMirroredStore_SyncUnreadableSnapshot(t *testing.T) {
	m, _, remote := newMirror(t)

	remote.EXPECT().Fetch(gomock.Any()).Return(nil, errors.New("timeout"))
	remote.EXPECT().Put(gomock.Any(), gomock.Any()).Times(0)

	assert.Error(t, m.Sync(context.Background()))
}

// memBlob is an in-memory Blob whose writes can be switched off.
type memBlob struct {
	data    []byte
	failPut bool
}

func (b *memBlob) Fetch(context.Context) ([]byte, error) {
	if b.data == nil {
		return nil, database.ErrNotFound
	}
	return b.data, nil
}

func (b *memBlob) Put(_ context.Context, data []byte) error {
	if b.failPut {
		return errors.New("bucket unavailable")
	}
	b.data = append([]byte(nil), data...)
	return nil
}

func TestMirroredStore_FailedRemoteWriteKeepsLocalData(t *testing.T) {
	ctx := context.Background()
	local, err := database.NewFileStore(t.TempDir())
	require.NoError(t, err)
	remote := &memBlob{}
	m := database.NewMirroredStore(local, remote)

	require.NoError(t, m.Save(ctx, database.CollectionUsers, database.Document(`{"a":{"id":"a","coins":0}}`)))
	assert.False(t, m.Behind(database.CollectionUsers))

	remote.failPut = true
	require.NoError(t, m.Save(ctx, database.CollectionUsers, database.Document(`{"a":{"id":"a","coins":500}}`)))
	assert.True(t, m.Behind(database.CollectionUsers))

	doc, err := m.Load(ctx, database.CollectionUsers)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":{"id":"a","coins":500}}`, string(doc))

	onDisk, err := local.Load(ctx, database.CollectionUsers)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":{"id":"a","coins":500}}`, string(onDisk))

	remote.failPut = false
	require.NoError(t, m.Sync(ctx))
	assert.False(t, m.Behind(database.CollectionUsers))
	assert.JSONEq(t, `{"users":{"a":{"id":"a","coins":500}}}`, string(remote.data))

	doc, err = m.Load(ctx, database.CollectionUsers)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":{"id":"a","coins":500}}`, string(doc))
}

func TestMirroredStore_LaterWriteCarriesLaggingCollections(t *testing.T) {
	ctx := context.Background()
	local, err := database.NewFileStore(t.TempDir())
	require.NoError(t, err)
	remote := &memBlob{failPut: true}
	m := database.NewMirroredStore(local, remote)

	require.NoError(t, m.Save(ctx, database.CollectionUsers, database.Document(`{"a":{"coins":7}}`)))
	assert.True(t, m.Behind(database.CollectionUsers))

	remote.failPut = false
	require.NoError(t, m.Save(ctx, database.CollectionCards, database.Document(`[]`)))
	assert.False(t, m.Behind(database.CollectionUsers))
	assert.JSONEq(t, `{"users":{"a":{"coins":7}},"cards":[]}`, string(remote.data))
}
