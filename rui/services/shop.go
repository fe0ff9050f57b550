package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xlovstudio/rui/rui/config"
	"github.com/xlovstudio/rui/rui/database/repositories"
	"github.com/xlovstudio/rui/rui/economy/catalog"
	"github.com/xlovstudio/rui/rui/economy/ledger"
	"github.com/xlovstudio/rui/rui/economy/rarity"
)

const maxSuggestions = 3

// Buy purchases one copy of a catalog card by id.
func (s *GameService) Buy(ctx context.Context, a Actor, cardID string) (*Result, error) {
	id := catalog.NormalizeID(cardID)
	if id == "" {
		return fail(StatusInvalid, "Missing card", "Tell me which card ID you want to buy."), nil
	}

	unlock, err := s.lock(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	card, err := s.cards.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrCardNotFound) {
		return s.cardNotFound(ctx, id)
	}
	if err != nil {
		return nil, err
	}

	u, err := s.profile(ctx, a)
	if err != nil {
		return nil, err
	}

	owned, price, err := catalog.Buy(u, card, s.clock.Now())
	switch {
	case errors.Is(err, catalog.ErrNotPurchasable):
		return fail(StatusInvalid, "Not buyable",
			fmt.Sprintf("Cards with rarity **%s** cannot be bought. Try drops or events.", card.RarityOrCommon())), nil
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return fail(StatusInsufficient, "Not enough coins",
			fmt.Sprintf("This card costs **%d** %s but you only have **%d**.", price, config.CoinEmoji, u.Coins)), nil
	case err != nil:
		return nil, err
	}

	if err := s.saveUsers(ctx, u); err != nil {
		return nil, err
	}
	if err := s.addCards(ctx, u.ID, owned); err != nil {
		return nil, err
	}

	return ok("Card bought", fmt.Sprintf("You bought %s for **%d** %s", describeCard(card), price, config.CoinEmoji)), nil
}

func (s *GameService) cardNotFound(ctx context.Context, id string) (*Result, error) {
	desc := fmt.Sprintf("There is no card with ID **%s**.", id)
	all, err := s.cards.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if hints := catalog.Suggest(all, id, maxSuggestions); len(hints) > 0 {
		desc += "\nDid you mean: " + strings.Join(hints, ", ") + "?"
	}
	return fail(StatusNotFound, "Not found", desc), nil
}

// BuyBoost installs a drop boost, replacing any running one.
func (s *GameService) BuyBoost(ctx context.Context, a Actor, tier string) (*Result, error) {
	boost, err := catalog.ParseBoost(tier)
	if err != nil {
		return fail(StatusInvalid, "Unknown boost", "This boost does not exist."), nil
	}

	unlock, err := s.lock(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	u, err := s.profile(ctx, a)
	if err != nil {
		return nil, err
	}

	if err := catalog.BuyBoost(u, boost, s.clock.Now()); err != nil {
		if errors.Is(err, ledger.ErrInsufficientFunds) {
			return fail(StatusInsufficient, "Not enough butterflies",
				fmt.Sprintf("This boost costs **%d** %s but you only have **%d**.", boost.Price, config.ButterflyEmoji, u.Butterflies)), nil
		}
		return nil, err
	}

	if err := s.saveUsers(ctx, u); err != nil {
		return nil, err
	}

	res := ok("Boost activated", fmt.Sprintf(
		"You activated a **%s** boost for **%d minutes**.\nIt will affect your **/drop** pulls.\nCost: **%d** %s",
		boost.Tier, int(boost.Duration.Minutes()), boost.Price, config.ButterflyEmoji))
	res.Ephemeral = true
	res.Boost = boost.Tier
	return res, nil
}

// BuyPack draws a pack of cards uniformly from the claim pool.
func (s *GameService) BuyPack(ctx context.Context, a Actor, size string) (*Result, error) {
	pack, err := catalog.ParsePackSize(size)
	if err != nil {
		return fail(StatusInvalid, "Unknown pack", "This pack does not exist."), nil
	}

	unlock, err := s.lock(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	cards, err := s.cards.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	u, err := s.profile(ctx, a)
	if err != nil {
		return nil, err
	}

	won, err := catalog.BuyPack(u, pack, cards, s.rand, s.clock.Now())
	switch {
	case errors.Is(err, rarity.ErrEmptyPool):
		return fail(StatusUnavailable, "No cards", "There are no normal cards to buy right now."), nil
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return fail(StatusInsufficient, "Not enough coins",
			fmt.Sprintf("This pack costs **%d** %s but you only have **%d**.", pack.Price, config.CoinEmoji, u.Coins)), nil
	case err != nil:
		return nil, err
	}

	if err := s.saveUsers(ctx, u); err != nil {
		return nil, err
	}
	if err := s.addCards(ctx, u.ID, won...); err != nil {
		return nil, err
	}

	fields := make([]Field, 0, len(won))
	for i, c := range won {
		fields = append(fields, Field{
			Name:  fmt.Sprintf("#%d • %s · %s", i+1, c.Group, c.Member),
			Value: fmt.Sprintf("ID: %s • Rarity: **%s**", c.ID, c.RarityOrCommon()),
		})
	}

	return ok("Pack opened", fmt.Sprintf("You bought a **%s** pack for **%d** %s and received **%d** card(s).",
		pack.Size, pack.Price, config.CoinEmoji, len(won)), fields...), nil
}
