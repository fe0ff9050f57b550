package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/xlovstudio/rui/rui/config"
	"github.com/xlovstudio/rui/rui/database/models"
	"github.com/xlovstudio/rui/rui/database/repositories"
	"github.com/xlovstudio/rui/rui/economy/rarity"
)

func (s *GameService) Ping(context.Context, Actor) (*Result, error) {
	return ok("Pong", "Rui is awake."), nil
}

// Start creates the actor's profile. An existing profile is never overwritten.
func (s *GameService) Start(ctx context.Context, a Actor) (*Result, error) {
	unlock, err := s.lock(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	err = s.users.Create(ctx, models.NewUser(a.ID, a.Name, s.clock.Now()))
	if errors.Is(err, repositories.ErrUserExists) {
		return fail(StatusInvalid, "Profile already exists",
			fmt.Sprintf("Oh! Seems like you already created a profile, %s. Have fun playing.", a.Name)), nil
	}
	if err != nil {
		return nil, err
	}
	return ok("Profile created", fmt.Sprintf("Hi %s. Your collector profile has been created.", a.Name)), nil
}

func (s *GameService) Balance(ctx context.Context, a Actor) (*Result, error) {
	unlock, err := s.lock(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	u, err := s.profile(ctx, a)
	if err != nil {
		return nil, err
	}
	count, err := s.userCards.Count(ctx, a.ID)
	if err != nil {
		return nil, err
	}

	boost := "none"
	if tier := rarity.ActiveTier(u, s.clock.Now()); tier != "" {
		boost = fmt.Sprintf("%s (active)", tier)
	}

	return ok(a.Name+"'s Balance", "Here's your current collector data. Keep playing to get more.",
		Field{Name: config.CoinEmoji + " Coins", Value: strconv.FormatInt(u.Coins, 10), Inline: true},
		Field{Name: config.ButterflyEmoji + " Butterflies", Value: strconv.FormatInt(u.Butterflies, 10), Inline: true},
		Field{Name: "Cards", Value: strconv.Itoa(count), Inline: true},
		Field{Name: "Boost", Value: boost, Inline: true},
	), nil
}

// Inventory returns the owned cards in acquisition order.
func (s *GameService) Inventory(ctx context.Context, a Actor) (*Result, error) {
	owned, err := s.userCards.GetAllByUserID(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	title := a.Name + "'s Inventory"
	if len(owned) == 0 {
		return ok(title, "You don't have any cards yet. Try `/drop`, `/claim` or buy a pack."), nil
	}

	res := ok(title, fmt.Sprintf("You currently own **%d** card(s).", len(owned)))
	res.Owned = owned
	return res, nil
}

// InventoryPage renders one page of owned cards as fields.
func InventoryPage(owned []models.UserCard, page int) []Field {
	start := page * config.CardsPerPage
	if start < 0 || start >= len(owned) {
		return nil
	}
	end := min(start+config.CardsPerPage, len(owned))

	fields := make([]Field, 0, end-start)
	for i := start; i < end; i++ {
		c := owned[i]
		fields = append(fields, Field{
			Name:  fmt.Sprintf("#%d • %s · %s", i+1, c.Group, c.Member),
			Value: fmt.Sprintf("ID: %s • Rarity: **%s**", c.ID, c.RarityOrCommon()),
		})
	}
	return fields
}

// InventoryPages is the number of pages needed for n cards.
func InventoryPages(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + config.CardsPerPage - 1) / config.CardsPerPage
}

var overviewFields = []Field{
	{Name: "/start", Value: "Create your collector profile"},
	{Name: "/balance", Value: "Show your coins, butterflies, and cards"},
	{Name: "/daily /weekly /monthly", Value: "Claim your rewards"},
	{Name: "/work", Value: "Earn coins and butterflies (15min cooldown)"},
	{Name: "/drop", Value: "Drop 3 random cards and choose 1 (1min cooldown, affected by boost)"},
	{Name: "/claim", Value: "Claim 1 random card every 90 seconds"},
	{Name: "/buy", Value: "Buy a specific card by ID (not event or limited)"},
	{Name: "/buyboost", Value: "Buy a 45min drop boost for butterflies"},
	{Name: "/buypack", Value: "Buy 5 / 10 / 20 random cards for coins"},
	{Name: "/gift", Value: "Send coins, butterflies, or cards to other players"},
	{Name: "/inventory", Value: "View your collected cards"},
}

func (s *GameService) Overview(context.Context, Actor) (*Result, error) {
	res := ok("Rui Command Overview", "Here's a quick summary of all available commands:", overviewFields...)
	res.Ephemeral = true
	return res, nil
}
