package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/xlovstudio/rui/rui/config"
	"github.com/xlovstudio/rui/rui/database/models"
	"github.com/xlovstudio/rui/rui/database/repositories"
	"github.com/xlovstudio/rui/rui/economy/catalog"
	"github.com/xlovstudio/rui/rui/economy/userlock"
)

// GameService implements every command of the bot on top of the repositories.
// Each operation holds the lock of every user record it touches from load to save.
type GameService struct {
	users     repositories.UserRepository
	userCards repositories.UserCardRepository
	cards     repositories.CardRepository
	locks     *userlock.Manager
	staff     catalog.StaffSet
	clock     clockwork.Clock
	rand      Random
}

type Option func(*GameService)

func WithClock(c clockwork.Clock) Option {
	return func(s *GameService) { s.clock = c }
}

func WithRandom(r Random) Option {
	return func(s *GameService) { s.rand = r }
}

func WithLocks(m *userlock.Manager) Option {
	return func(s *GameService) { s.locks = m }
}

func NewGameService(
	users repositories.UserRepository,
	userCards repositories.UserCardRepository,
	cards repositories.CardRepository,
	staff catalog.StaffSet,
	opts ...Option,
) *GameService {
	s := &GameService{
		users:     users,
		userCards: userCards,
		cards:     cards,
		staff:     staff,
		clock:     clockwork.NewRealClock(),
		rand:      globalRandom{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.locks == nil {
		s.locks = userlock.NewManager(s.clock, config.LockIdleTimeout)
	}
	return s
}

func (s *GameService) Locks() *userlock.Manager {
	return s.locks
}

func (s *GameService) lock(ctx context.Context, ids ...string) (func(), error) {
	unlock, err := s.locks.Lock(ctx, ids...)
	if err != nil {
		return nil, fmt.Errorf("failed to lock user record: %w", err)
	}
	return unlock, nil
}

// profile loads the actor's record, creating it on first use.
func (s *GameService) profile(ctx context.Context, a Actor) (*models.User, error) {
	u, created, err := s.users.GetOrCreate(ctx, a.ID, a.Name, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", a.ID, err)
	}
	if created {
		slog.Info("Profile created on first use",
			slog.String("type", "cmd"),
			slog.String("user_id", a.ID))
	}
	return u, nil
}

func (s *GameService) saveUsers(ctx context.Context, users ...*models.User) error {
	if err := s.users.Update(ctx, users...); err != nil {
		return fmt.Errorf("failed to save users: %w", err)
	}
	return nil
}

func (s *GameService) addCards(ctx context.Context, userID string, cards ...models.UserCard) error {
	if err := s.userCards.Add(ctx, userID, cards...); err != nil {
		return fmt.Errorf("failed to add cards for %s: %w", userID, err)
	}
	return nil
}

func describeCard(c models.Card) string {
	return fmt.Sprintf("**%s** (%s · %s) • **%s**", c.ID, c.Group, c.Member, c.RarityOrCommon())
}

func totals(u *models.User) string {
	return fmt.Sprintf("%d %s / %d %s", u.Coins, config.CoinEmoji, u.Butterflies, config.ButterflyEmoji)
}
