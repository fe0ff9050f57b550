package repositories

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/xlovstudio/rui/rui/database"
	"github.com/xlovstudio/rui/rui/database/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

type UserRepository interface {
	Get(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	// GetOrCreate returns the stored profile, creating a fresh one when absent.
	GetOrCreate(ctx context.Context, id, name string, now time.Time) (*models.User, bool, error)
	// Update persists every given user in a single document write.
	Update(ctx context.Context, users ...*models.User) error
	GetUsers(ctx context.Context) ([]*models.User, error)
}

type userRepository struct {
	*BaseRepository
}

func NewUserRepository(store database.Store) UserRepository {
	return &userRepository{BaseRepository: NewBaseRepository(store, database.CollectionUsers)}
}

type usersDocument map[string]*models.User

func (r *userRepository) Get(ctx context.Context, id string) (*models.User, error) {
	doc := usersDocument{}
	if err := r.read(ctx, &doc); err != nil {
		return nil, err
	}
	user, ok := doc[id]
	if !ok || user == nil {
		return nil, ErrUserNotFound
	}
	if user.ID == "" {
		user.ID = id
	}
	return user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	doc := usersDocument{}
	return r.mutate(ctx, &doc, func() error {
		if _, ok := doc[user.ID]; ok {
			return ErrUserExists
		}
		doc[user.ID] = user
		slog.Info("User created",
			slog.String("type", "db"),
			slog.String("user_id", user.ID),
			slog.String("name", user.Name))
		return nil
	})
}

func (r *userRepository) GetOrCreate(ctx context.Context, id, name string, now time.Time) (*models.User, bool, error) {
	doc := usersDocument{}
	var (
		user    *models.User
		created bool
	)
	err := r.mutate(ctx, &doc, func() error {
		if existing, ok := doc[id]; ok && existing != nil {
			user = existing
			if user.ID == "" {
				user.ID = id
			}
			return errSkipSave
		}
		user = models.NewUser(id, name, now)
		doc[id] = user
		created = true
		return nil
	})
	if errors.Is(err, errSkipSave) {
		err = nil
	}
	if err != nil {
		return nil, false, err
	}
	return user, created, nil
}

func (r *userRepository) Update(ctx context.Context, users ...*models.User) error {
	if len(users) == 0 {
		return nil
	}
	doc := usersDocument{}
	return r.mutate(ctx, &doc, func() error {
		for _, u := range users {
			doc[u.ID] = u
		}
		return nil
	})
}

func (r *userRepository) GetUsers(ctx context.Context) ([]*models.User, error) {
	doc := usersDocument{}
	if err := r.read(ctx, &doc); err != nil {
		return nil, err
	}
	users := make([]*models.User, 0, len(doc))
	for id, u := range doc {
		if u == nil {
			continue
		}
		if u.ID == "" {
			u.ID = id
		}
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}
