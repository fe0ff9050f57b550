package repositories

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/xlovstudio/rui/rui/database"
	"github.com/xlovstudio/rui/rui/database/models"
)

var ErrCardNotOwned = errors.New("card not owned")

type UserCardRepository interface {
	// GetAllByUserID returns the inventory in acquisition order.
	GetAllByUserID(ctx context.Context, userID string) ([]models.UserCard, error)
	Add(ctx context.Context, userID string, cards ...models.UserCard) error
	// Transfer moves the first owned copy of cardID from one user to another.
	Transfer(ctx context.Context, fromID, toID, cardID string) (models.UserCard, error)
	Count(ctx context.Context, userID string) (int, error)
	// Owners returns the number of inventories per user.
	Owners(ctx context.Context) (map[string]int, error)
}

type userCardRepository struct {
	*BaseRepository
}

func NewUserCardRepository(store database.Store) UserCardRepository {
	return &userCardRepository{BaseRepository: NewBaseRepository(store, database.CollectionUserCards)}
}

type userCardsDocument map[string][]models.UserCard

func (r *userCardRepository) GetAllByUserID(ctx context.Context, userID string) ([]models.UserCard, error) {
	doc := userCardsDocument{}
	if err := r.read(ctx, &doc); err != nil {
		return nil, err
	}
	owned := doc[userID]
	out := make([]models.UserCard, len(owned))
	copy(out, owned)
	return out, nil
}

func (r *userCardRepository) Add(ctx context.Context, userID string, cards ...models.UserCard) error {
	if len(cards) == 0 {
		return nil
	}
	doc := userCardsDocument{}
	return r.mutate(ctx, &doc, func() error {
		doc[userID] = append(doc[userID], cards...)
		slog.Debug("Cards added to inventory",
			slog.String("type", "db"),
			slog.String("user_id", userID),
			slog.Int("count", len(cards)))
		return nil
	})
}

func (r *userCardRepository) Transfer(ctx context.Context, fromID, toID, cardID string) (models.UserCard, error) {
	var moved models.UserCard
	doc := userCardsDocument{}
	err := r.mutate(ctx, &doc, func() error {
		owned := doc[fromID]
		idx := -1
		for i, c := range owned {
			if strings.EqualFold(c.ID, cardID) {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrCardNotOwned
		}
		moved = owned[idx]
		doc[fromID] = append(owned[:idx:idx], owned[idx+1:]...)
		doc[toID] = append(doc[toID], moved)
		return nil
	})
	return moved, err
}

func (r *userCardRepository) Count(ctx context.Context, userID string) (int, error) {
	doc := userCardsDocument{}
	if err := r.read(ctx, &doc); err != nil {
		return 0, err
	}
	return len(doc[userID]), nil
}

func (r *userCardRepository) Owners(ctx context.Context) (map[string]int, error) {
	doc := userCardsDocument{}
	if err := r.read(ctx, &doc); err != nil {
		return nil, err
	}
	out := make(map[string]int, len(doc))
	for id, cards := range doc {
		out[id] = len(cards)
	}
	return out, nil
}
