package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xlovstudio/rui/rui/database/models"
	"github.com/xlovstudio/rui/rui/database/repositories"
	"github.com/xlovstudio/rui/rui/economy/catalog"
	"github.com/xlovstudio/rui/rui/economy/cooldown"
	"github.com/xlovstudio/rui/rui/economy/drop"
	"github.com/xlovstudio/rui/rui/economy/rarity"
)

func cooldownResult(err error, format string) (*Result, bool) {
	var wait *cooldown.WaitError
	if !errors.As(err, &wait) {
		return nil, false
	}
	res := fail(StatusCooldown, "Cooldown", fmt.Sprintf(format, wait.Policy.Describe(wait.Remaining)))
	res.Wait = wait.Remaining
	return res, true
}

// Drop offers three cards or re-presents a pending offer.
func (s *GameService) Drop(ctx context.Context, a Actor) (*Result, error) {
	unlock, err := s.lock(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	cards, err := s.cards.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return fail(StatusUnavailable, "No cards available", "There are no cards in the catalog yet."), nil
	}

	u, err := s.profile(ctx, a)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	offer, err := drop.Start(u, cards, s.rand, now)
	if err != nil {
		if res, handled := cooldownResult(err, "You can drop again in **%s**."); handled {
			return res, nil
		}
		if errors.Is(err, rarity.ErrEmptyPool) {
			return fail(StatusUnavailable, "No cards available", "There are no droppable cards right now."), nil
		}
		return nil, err
	}

	if !offer.Reshown {
		if err := s.saveUsers(ctx, u); err != nil {
			return nil, err
		}
	}

	tier := rarity.ActiveTier(u, now)
	title := "Drop"
	if tier != "" {
		title = fmt.Sprintf("Drop (boost: %s)", tier)
	}

	var b strings.Builder
	b.WriteString("Choose **one** of the cards below:")
	for i, c := range offer.Cards {
		fmt.Fprintf(&b, "\n%d. %s · %s", i+1, c.Group, c.Member)
	}

	res := ok(title, b.String())
	res.Ephemeral = true
	res.Offer = offer.Cards
	res.ExpiresAt = offer.ExpiresAt
	res.Boost = tier
	return res, nil
}

// Pick resolves the pending drop with the card at index.
func (s *GameService) Pick(ctx context.Context, a Actor, index int) (*Result, error) {
	unlock, err := s.lock(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	u, err := s.users.Get(ctx, a.ID)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return fail(StatusInvalid, "No active drop", "You have no active drop."), nil
	}
	if err != nil {
		return nil, err
	}

	chosen, err := drop.Pick(u, index, s.clock.Now())
	switch {
	case errors.Is(err, drop.ErrNoPendingDrop):
		return fail(StatusInvalid, "No active drop", "You have no active drop."), nil
	case errors.Is(err, drop.ErrDropExpired):
		if err := s.saveUsers(ctx, u); err != nil {
			return nil, err
		}
		return fail(StatusInvalid, "Drop expired", "Your drop expired. Use /drop again."), nil
	case errors.Is(err, drop.ErrInvalidPick):
		return fail(StatusInvalid, "Not available", "This card is not available anymore."), nil
	case err != nil:
		return nil, err
	}

	if err := s.saveUsers(ctx, u); err != nil {
		return nil, err
	}
	if err := s.addCards(ctx, u.ID, models.NewUserCard(chosen, s.clock.Now())); err != nil {
		return nil, err
	}

	res := ok("Card claimed", "You claimed "+describeCard(chosen))
	res.Ephemeral = true
	return res, nil
}

// Claim grants one uniformly drawn card from the claim pool.
func (s *GameService) Claim(ctx context.Context, a Actor) (*Result, error) {
	unlock, err := s.lock(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	cards, err := s.cards.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return fail(StatusUnavailable, "No cards available", "There are no cards to claim yet."), nil
	}

	u, err := s.profile(ctx, a)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	policy := cooldown.Policies[cooldown.Claim]
	if err := policy.Require(u, now); err != nil {
		if res, handled := cooldownResult(err, "Please wait **%s** before claiming again."); handled {
			return res, nil
		}
		return nil, err
	}

	chosen, err := catalog.DrawClaim(cards, s.rand)
	if errors.Is(err, rarity.ErrEmptyPool) {
		return fail(StatusUnavailable, "No cards available", "There are no claimable cards right now."), nil
	}
	if err != nil {
		return nil, err
	}

	policy.Mark(u, now)
	if err := s.saveUsers(ctx, u); err != nil {
		return nil, err
	}
	if err := s.addCards(ctx, u.ID, models.NewUserCard(chosen, now)); err != nil {
		return nil, err
	}

	return ok("Card claimed", "You got "+describeCard(chosen)+"!"), nil
}
