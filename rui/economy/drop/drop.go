// Package drop holds the two-phase drop flow: three cards are offered, then one is picked.
package drop

import (
	"errors"
	"time"

	"github.com/xlovstudio/rui/rui/config"
	"github.com/xlovstudio/rui/rui/database/models"
	"github.com/xlovstudio/rui/rui/economy/cooldown"
	"github.com/xlovstudio/rui/rui/economy/rarity"
)

var (
	ErrNoPendingDrop = errors.New("no pending drop")
	ErrDropExpired   = errors.New("drop expired")
	ErrInvalidPick   = errors.New("invalid pick")
)

type Offer struct {
	Cards     []models.Card
	ExpiresAt time.Time
	// Reshown is set when an unexpired offer was presented again without a new draw.
	Reshown bool
}

// Start offers cards to u. An unexpired pending offer is returned unchanged. An
// expired one is discarded and the drop cooldown decides whether a new offer is
// drawn. Returns *cooldown.WaitError or rarity.ErrEmptyPool without changing the
// pending offer.
func Start(u *models.User, catalog []models.Card, src rarity.Source, now time.Time) (Offer, error) {
	if p := u.PendingDrop; p != nil {
		if !p.Expired(now) {
			return Offer{Cards: p.Cards, ExpiresAt: p.ExpiresAt, Reshown: true}, nil
		}
		u.PendingDrop = nil
	}

	if err := cooldown.Policies[cooldown.Drop].Require(u, now); err != nil {
		return Offer{}, err
	}

	tier := rarity.ActiveTier(u, now)
	cards := make([]models.Card, 0, config.DropOfferSize)
	for range config.DropOfferSize {
		c, err := rarity.Draw(src, catalog, tier)
		if err != nil {
			return Offer{}, err
		}
		cards = append(cards, c)
	}

	u.PendingDrop = &models.PendingDrop{
		Cards:     cards,
		ExpiresAt: now.Add(config.DropOfferTTL),
	}
	return Offer{Cards: cards, ExpiresAt: u.PendingDrop.ExpiresAt}, nil
}

// Pick resolves the pending offer with the card at index. On success the offer is
// cleared and the drop cooldown starts. An expired offer is cleared and reported
// as ErrDropExpired. An out of range index leaves the offer untouched.
func Pick(u *models.User, index int, now time.Time) (models.Card, error) {
	p := u.PendingDrop
	if p == nil {
		return models.Card{}, ErrNoPendingDrop
	}
	if p.Expired(now) {
		u.PendingDrop = nil
		return models.Card{}, ErrDropExpired
	}
	if index < 0 || index >= len(p.Cards) {
		return models.Card{}, ErrInvalidPick
	}

	chosen := p.Cards[index]
	u.PendingDrop = nil
	cooldown.Policies[cooldown.Drop].Mark(u, now)
	return chosen, nil
}
