package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xlovstudio/rui/rui/database/models"
	"github.com/xlovstudio/rui/rui/database/repositories"
	"github.com/xlovstudio/rui/rui/economy/catalog"
)

type AddCardRequest struct {
	ID        string
	Rarity    string
	Group     string
	Idol      string
	Era       string
	Version   string
	Image     string
	Type      string
	Droppable bool
}

// Card builds the catalog definition, normalizing id, rarity and type.
func (r AddCardRequest) Card() models.Card {
	rarity, ok := models.ParseRarity(r.Rarity)
	if !ok {
		rarity = models.Rarity(r.Rarity)
	}
	cardType, ok := models.ParseCardType(r.Type)
	if !ok {
		cardType = models.CardType(r.Type)
	}
	return models.Card{
		ID:        catalog.NormalizeID(r.ID),
		Group:     strings.TrimSpace(r.Group),
		Member:    strings.TrimSpace(r.Idol),
		Era:       strings.TrimSpace(r.Era),
		Version:   strings.TrimSpace(r.Version),
		Image:     strings.TrimSpace(r.Image),
		Rarity:    rarity,
		Type:      cardType,
		Droppable: models.BoolPtr(r.Droppable),
	}
}

// AddCard creates a catalog card. Only staff may call it.
func (s *GameService) AddCard(ctx context.Context, a Actor, req AddCardRequest) (*Result, error) {
	if !s.staff.Allows(a.ID) {
		slog.Warn("Catalog edit refused",
			slog.String("type", "cmd"),
			slog.String("user_id", a.ID))
		return fail(StatusForbidden, "Not allowed", "This command is for Rui staff only."), nil
	}

	card := req.Card()
	if err := catalog.ValidateDefinition(card); err != nil {
		return fail(StatusInvalid, "Invalid card", validationMessage(err)), nil
	}

	err := s.cards.Create(ctx, card)
	if repositories.IsConflict(err) {
		return fail(StatusInvalid, "Already exists", fmt.Sprintf("There is already a card with ID **%s**.", card.ID)), nil
	}
	if err != nil {
		return nil, err
	}

	droppable := "no"
	if card.IsDroppable() {
		droppable = "yes"
	}
	return ok("Card created", fmt.Sprintf(
		"New card was added.\nID: **%s**\nGroup: **%s**\nIdol: **%s**\nRarity: **%s**\nType: **%s**\nDroppable: **%s**\nEra: **%s**\nVersion: **%s**",
		card.ID, card.Group, card.Member, card.Rarity, card.Type, droppable, orDash(card.Era), orDash(card.Version))), nil
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, catalog.ErrRarityMismatch):
		return "The rarity letter of the card ID does not match the chosen rarity."
	case errors.Is(err, catalog.ErrInvalidID):
		return "Card IDs look like `C0102V101`: rarity letter (C, R, S, U, L, ES, EL), group, idol, `V`, version and episode 01-99."
	}
	return err.Error()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
