package repositories

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	lru "github.com/hashicorp/golang-lru"

	"github.com/xlovstudio/rui/rui/config"
	"github.com/xlovstudio/rui/rui/database"
	"github.com/xlovstudio/rui/rui/database/models"
)

var ErrCardNotFound = errors.New("card not found")

type CardRepository interface {
	GetAll(ctx context.Context) ([]models.Card, error)
	// GetByID matches ids case-insensitively.
	GetByID(ctx context.Context, id string) (models.Card, error)
	Create(ctx context.Context, card models.Card) error
	// BulkCreate appends every card whose id is not taken yet and reports how many were added.
	BulkCreate(ctx context.Context, cards []models.Card) (int, error)
}

type cardRepository struct {
	*BaseRepository
	cache *lru.Cache
}

func NewCardRepository(store database.Store) CardRepository {
	cache, _ := lru.New(config.CacheSize)
	return &cardRepository{
		BaseRepository: NewBaseRepository(store, database.CollectionCards),
		cache:          cache,
	}
}

func cacheKey(id string) string {
	return strings.ToUpper(id)
}

func (r *cardRepository) GetAll(ctx context.Context) ([]models.Card, error) {
	var cards []models.Card
	if err := r.read(ctx, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *cardRepository) GetByID(ctx context.Context, id string) (models.Card, error) {
	if v, ok := r.cache.Get(cacheKey(id)); ok {
		return v.(models.Card), nil
	}

	cards, err := r.GetAll(ctx)
	if err != nil {
		return models.Card{}, err
	}
	for _, c := range cards {
		if strings.EqualFold(c.ID, id) {
			r.cache.Add(cacheKey(c.ID), c)
			return c, nil
		}
	}
	return models.Card{}, ErrCardNotFound
}

func (r *cardRepository) Create(ctx context.Context, card models.Card) error {
	var cards []models.Card
	return r.mutate(ctx, &cards, func() error {
		for _, c := range cards {
			if strings.EqualFold(c.ID, card.ID) {
				return &ConflictError{Entity: "card", Field: "id", Value: card.ID}
			}
		}
		cards = append(cards, card)
		slog.Info("Card added to catalog",
			slog.String("type", "db"),
			slog.String("card_id", card.ID),
			slog.String("rarity", string(card.Rarity)))
		return nil
	})
}

func (r *cardRepository) BulkCreate(ctx context.Context, batch []models.Card) (int, error) {
	var cards []models.Card
	added := 0
	err := r.mutate(ctx, &cards, func() error {
		seen := make(map[string]struct{}, len(cards)+len(batch))
		for _, c := range cards {
			seen[cacheKey(c.ID)] = struct{}{}
		}
		for _, c := range batch {
			if _, ok := seen[cacheKey(c.ID)]; ok {
				continue
			}
			seen[cacheKey(c.ID)] = struct{}{}
			cards = append(cards, c)
			added++
		}
		if added == 0 {
			return errSkipSave
		}
		return nil
	})
	if errors.Is(err, errSkipSave) {
		err = nil
	}
	return added, err
}

// IsConflict reports whether err means the card id is already taken.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
