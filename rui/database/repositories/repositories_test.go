package repositories

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlovstudio/rui/rui/database"
	"github.com/xlovstudio/rui/rui/database/models"
)

// memStore is an in-memory database.Store.
type memStore struct {
	mu    sync.Mutex
	docs  map[database.Collection]database.Document
	saves int
	fail  error
}

func newMemStore() *memStore {
	return &memStore{docs: make(map[database.Collection]database.Document)}
}

func (s *memStore) Load(_ context.Context, c database.Collection) (database.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[c]
	if !ok {
		return nil, database.ErrNotFound
	}
	return append(database.Document(nil), doc...), nil
}

func (s *memStore) Save(_ context.Context, c database.Collection, doc database.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	s.docs[c] = append(database.Document(nil), doc...)
	s.saves++
	return nil
}

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	repo := NewUserRepository(store)

	_, err := repo.Get(ctx, "1")
	assert.ErrorIs(t, err, ErrUserNotFound)

	u, created, err := repo.GetOrCreate(ctx, "1", "han", now)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "han", u.Name)

	saves := store.saves
	_, created, err = repo.GetOrCreate(ctx, "1", "han", now)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, saves, store.saves, "an existing profile is not rewritten")

	assert.ErrorIs(t, repo.Create(ctx, models.NewUser("1", "other", now)), ErrUserExists)

	u.Coins = 300
	other := models.NewUser("2", "felix", now)
	require.NoError(t, repo.Update(ctx, u, other))

	got, err := repo.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, int64(300), got.Coins)

	users, err := repo.GetUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "1", users[0].ID)
	assert.Equal(t, "2", users[1].ID)
}

func TestUserRepository_NullDocument(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.docs[database.CollectionUsers] = database.Document("null")

	_, created, err := NewUserRepository(store).GetOrCreate(ctx, "1", "han", now)
	require.NoError(t, err)
	assert.True(t, created)
}

func TestUserCardRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserCardRepository(newMemStore())

	first := models.NewUserCard(models.Card{ID: "RSKHJV101"}, now)
	second := models.NewUserCard(models.Card{ID: "CSKHNV101"}, now)
	dup := models.NewUserCard(models.Card{ID: "RSKHJV101"}, now.Add(time.Hour))
	require.NoError(t, repo.Add(ctx, "1", first, second, dup))

	n, err := repo.Count(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	moved, err := repo.Transfer(ctx, "1", "2", "rskhjv101")
	require.NoError(t, err)
	assert.Equal(t, now, moved.Obtained, "the first copy moves")

	mine, err := repo.GetAllByUserID(ctx, "1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "CSKHNV101", mine[0].ID)
	assert.Equal(t, "RSKHJV101", mine[1].ID)

	theirs, err := repo.GetAllByUserID(ctx, "2")
	require.NoError(t, err)
	require.Len(t, theirs, 1)

	_, err = repo.Transfer(ctx, "2", "1", "LSKHNV101")
	assert.ErrorIs(t, err, ErrCardNotOwned)

	owners, err := repo.Owners(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"1": 2, "2": 1}, owners)
}

func TestCardRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCardRepository(newMemStore())

	card := models.Card{ID: "RSKHJV101", Group: "SKZ", Member: "Hyunjin", Rarity: models.RarityRare}
	require.NoError(t, repo.Create(ctx, card))

	err := repo.Create(ctx, models.Card{ID: "rskhjv101"})
	assert.True(t, IsConflict(err))
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "id", conflict.Field)
	assert.Equal(t, "rskhjv101", conflict.Value)
	assert.False(t, IsConflict(ErrCardNotFound))

	got, err := repo.GetByID(ctx, "rskhjv101")
	require.NoError(t, err)
	assert.Equal(t, card, got)

	_, err = repo.GetByID(ctx, "LSKHJV101")
	assert.ErrorIs(t, err, ErrCardNotFound)

	added, err := repo.BulkCreate(ctx, []models.Card{
		{ID: "RSKHJV101"},
		{ID: "CSKHNV101"},
		{ID: "CSKHNV101"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRepository_StoreFailure(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.fail = errors.New("disk full")

	err := NewUserCardRepository(store).Add(ctx, "1", models.UserCard{})
	var repoErr *RepositoryError
	require.True(t, errors.As(err, &repoErr))
	assert.Equal(t, "save", repoErr.Operation)
	assert.ErrorIs(t, err, store.fail)
}
