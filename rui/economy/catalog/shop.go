package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/xlovstudio/rui/rui/config"
	"github.com/xlovstudio/rui/rui/database/models"
	"github.com/xlovstudio/rui/rui/economy/ledger"
	"github.com/xlovstudio/rui/rui/economy/rarity"
)

// RarityPrices lists coin prices for the directly purchasable tiers.
var RarityPrices = map[models.Rarity]int64{
	models.RarityCommon:    200,
	models.RarityRare:      400,
	models.RaritySuperRare: 650,
	models.RarityUltraRare: 900,
	models.RarityLegendary: 1200,
}

type PackSize string

const (
	PackSmall  PackSize = "small"
	PackMedium PackSize = "medium"
	PackBig    PackSize = "big"
)

type Pack struct {
	Size  PackSize
	Price int64
	Cards int
}

var Packs = map[PackSize]Pack{
	PackSmall:  {PackSmall, 350, 5},
	PackMedium: {PackMedium, 650, 10},
	PackBig:    {PackBig, 1100, 20},
}

var PackOrder = []PackSize{PackSmall, PackMedium, PackBig}

type Boost struct {
	Tier     models.BoostTier
	Price    int64
	Duration time.Duration
}

var Boosts = map[models.BoostTier]Boost{
	models.BoostSmall:  {models.BoostSmall, 25, config.BoostDuration},
	models.BoostNormal: {models.BoostNormal, 40, config.BoostDuration},
	models.BoostMega:   {models.BoostMega, 60, config.BoostDuration},
}

var BoostOrder = []models.BoostTier{models.BoostSmall, models.BoostNormal, models.BoostMega}

func ParsePackSize(s string) (Pack, error) {
	p, ok := Packs[PackSize(strings.ToLower(strings.TrimSpace(s)))]
	if !ok {
		return Pack{}, fmt.Errorf("%w: %q", ErrUnknownPack, s)
	}
	return p, nil
}

func ParseBoost(s string) (Boost, error) {
	b, ok := Boosts[models.BoostTier(strings.ToLower(strings.TrimSpace(s)))]
	if !ok {
		return Boost{}, fmt.Errorf("%w: %q", ErrUnknownBoost, s)
	}
	return b, nil
}

// Price returns the coin price of c. Event and limited cards have none.
func Price(c models.Card) (int64, error) {
	p, ok := RarityPrices[c.RarityOrCommon()]
	if !ok {
		return 0, fmt.Errorf("%w: %s cards cannot be bought", ErrNotPurchasable, c.RarityOrCommon())
	}
	return p, nil
}

// Buy debits the card price from u and returns the owned snapshot.
func Buy(u *models.User, c models.Card, now time.Time) (models.UserCard, int64, error) {
	price, err := Price(c)
	if err != nil {
		return models.UserCard{}, 0, err
	}
	if err := ledger.Spend(u, ledger.Coins, price); err != nil {
		return models.UserCard{}, price, err
	}
	return models.NewUserCard(c, now), price, nil
}

// BuyPack checks the pool before charging u, then draws pack.Cards cards uniformly.
func BuyPack(u *models.User, pack Pack, catalog []models.Card, src rarity.Source, now time.Time) ([]models.UserCard, error) {
	pool := ClaimPool(catalog)
	if len(pool) == 0 {
		return nil, rarity.ErrEmptyPool
	}
	if err := ledger.Spend(u, ledger.Coins, pack.Price); err != nil {
		return nil, err
	}
	out := make([]models.UserCard, 0, pack.Cards)
	for range pack.Cards {
		out = append(out, models.NewUserCard(pool[src.IntN(len(pool))], now))
	}
	return out, nil
}

// BuyBoost debits butterflies and installs the boost, replacing any running one.
func BuyBoost(u *models.User, b Boost, now time.Time) error {
	if err := ledger.Spend(u, ledger.Butterflies, b.Price); err != nil {
		return err
	}
	u.ActiveBoost = &models.ActiveBoost{Type: b.Tier, ExpiresAt: now.Add(b.Duration)}
	return nil
}

// DrawClaim picks one card uniformly from the claim pool.
func DrawClaim(catalog []models.Card, src rarity.Source) (models.Card, error) {
	pool := ClaimPool(catalog)
	if len(pool) == 0 {
		return models.Card{}, rarity.ErrEmptyPool
	}
	return pool[src.IntN(len(pool))], nil
}

// StaffSet is the set of identities allowed to edit the catalog.
type StaffSet map[string]struct{}

func NewStaffSet(ids ...string) StaffSet {
	s := make(StaffSet, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			s[id] = struct{}{}
		}
	}
	return s
}

// Allows reports whether id may edit the catalog.
func (s StaffSet) Allows(id string) bool {
	_, ok := s[id]
	return ok
}
