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
)

type GiftRequest struct {
	Target Actor
	// What is coins, butterflies or card.
	What   string
	Amount int64
	CardID string
}

// Gift sends currency or one owned card to another user. The receiver's
// profile is created when missing.
func (s *GameService) Gift(ctx context.Context, a Actor, req GiftRequest) (*Result, error) {
	if req.Target.ID == "" {
		return fail(StatusInvalid, "No target", "You have to pick someone to gift to."), nil
	}
	if req.Target.ID == a.ID {
		return fail(StatusInvalid, "...No.", "You can't gift to yourself."), nil
	}

	what := strings.ToLower(strings.TrimSpace(req.What))
	if what != "card" {
		if _, err := ledger.ParseCurrency(what); err != nil {
			return fail(StatusInvalid, "Unknown thing", "You can gift `coins`, `butterflies` or `card`."), nil
		}
		if req.Amount <= 0 {
			return fail(StatusInvalid, "Missing amount", "Tell me how many you want to send."), nil
		}
	} else if catalog.NormalizeID(req.CardID) == "" {
		return fail(StatusInvalid, "Missing card", "Tell me which card ID you want to send."), nil
	}

	unlock, err := s.lock(ctx, a.ID, req.Target.ID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	sender, err := s.profile(ctx, a)
	if err != nil {
		return nil, err
	}
	receiver, err := s.profile(ctx, req.Target)
	if err != nil {
		return nil, err
	}

	if what == "card" {
		return s.giftCard(ctx, a, req.Target, catalog.NormalizeID(req.CardID))
	}

	currency := ledger.Currency(what)
	if err := ledger.Transfer(sender, receiver, currency, req.Amount); err != nil {
		if errors.Is(err, ledger.ErrInsufficientFunds) {
			return fail(StatusInsufficient, "Not enough",
				fmt.Sprintf("You only have %d %s.", ledger.Balance(sender, currency), currency)), nil
		}
		return nil, err
	}

	if err := s.saveUsers(ctx, sender, receiver); err != nil {
		return nil, err
	}

	label := config.CoinEmoji + " coins"
	if currency == ledger.Butterflies {
		label = config.ButterflyEmoji + " butterflies"
	}
	return ok("Gift sent", fmt.Sprintf("%s sent **%d** %s to %s.", a.Name, req.Amount, label, req.Target.Name)), nil
}

func (s *GameService) giftCard(ctx context.Context, from, to Actor, cardID string) (*Result, error) {
	moved, err := s.userCards.Transfer(ctx, from.ID, to.ID, cardID)
	if errors.Is(err, repositories.ErrCardNotOwned) {
		return fail(StatusNotFound, "Not found", fmt.Sprintf("You don't own a card with ID **%s**.", cardID)), nil
	}
	if err != nil {
		return nil, err
	}
	return ok("Card sent", fmt.Sprintf("%s sent **%s** (%s · %s) to %s.", from.Name, moved.ID, moved.Group, moved.Member, to.Name)), nil
}
