// Package rarity implements the weighted rarity roll and card draws.
package rarity

import (
	"errors"
	"time"

	"github.com/xlovstudio/rui/rui/database/models"
)

var ErrEmptyPool = errors.New("no cards available")

// Source is the randomness used by draws. *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
	IntN(n int) int
}

type Weight struct {
	Rarity models.Rarity
	Value  float64
}

// Table is an ordered list of tier weights.
type Table []Weight

var BaseWeights = Table{
	{models.RarityCommon, 44},
	{models.RarityRare, 20},
	{models.RaritySuperRare, 15},
	{models.RarityUltraRare, 7},
	{models.RarityLegendary, 6},
	{models.RarityEvent, 5},
	{models.RarityLimited, 3},
}

// BoostMultipliers scale the base weights per boost tier.
var BoostMultipliers = map[models.BoostTier]map[models.Rarity]float64{
	models.BoostSmall: {
		models.RarityCommon:    0.9,
		models.RarityRare:      1.1,
		models.RaritySuperRare: 1.2,
		models.RarityUltraRare: 1.25,
		models.RarityLegendary: 1.3,
		models.RarityEvent:     1.3,
		models.RarityLimited:   1.3,
	},
	models.BoostNormal: {
		models.RarityCommon:    0.75,
		models.RarityRare:      1.25,
		models.RaritySuperRare: 1.4,
		models.RarityUltraRare: 1.5,
		models.RarityLegendary: 1.6,
		models.RarityEvent:     1.6,
		models.RarityLimited:   1.6,
	},
	models.BoostMega: {
		models.RarityCommon:    0.5,
		models.RarityRare:      1.4,
		models.RaritySuperRare: 1.6,
		models.RarityUltraRare: 1.8,
		models.RarityLegendary: 2.0,
		models.RarityEvent:     2.2,
		models.RarityLimited:   2.3,
	},
}

// Apply returns the table scaled by the tier multipliers. Unknown or empty tiers
// return the table unchanged.
func (t Table) Apply(tier models.BoostTier) Table {
	mult, ok := BoostMultipliers[tier]
	out := make(Table, len(t))
	copy(out, t)
	if !ok {
		return out
	}
	for i := range out {
		if m, ok := mult[out[i].Rarity]; ok {
			out[i].Value *= m
		}
	}
	return out
}

func (t Table) Total() float64 {
	var sum float64
	for _, w := range t {
		if w.Value > 0 {
			sum += w.Value
		}
	}
	return sum
}

// Probability is the chance of rolling r from the table.
func (t Table) Probability(r models.Rarity) float64 {
	total := t.Total()
	if total <= 0 {
		return 0
	}
	for _, w := range t {
		if w.Rarity == r && w.Value > 0 {
			return w.Value / total
		}
	}
	return 0
}

// Pick rolls a rarity: a uniform value in [0, total) lands on the first tier
// whose cumulative weight is at least the roll. Tiers with no weight are never chosen.
func (t Table) Pick(src Source) models.Rarity {
	total := t.Total()
	if total <= 0 {
		return models.RarityCommon
	}
	roll := src.Float64() * total
	var acc float64
	for _, w := range t {
		if w.Value <= 0 {
			continue
		}
		acc += w.Value
		if acc >= roll {
			return w.Rarity
		}
	}
	return models.RarityCommon
}

// PickRarity rolls against the base table modified by tier.
func PickRarity(src Source, tier models.BoostTier) models.Rarity {
	return BaseWeights.Apply(tier).Pick(src)
}

// ActiveTier returns the user's boost tier if still running. An expired boost is
// cleared from the user.
func ActiveTier(u *models.User, now time.Time) models.BoostTier {
	if u.ActiveBoost == nil {
		return ""
	}
	if u.ActiveBoost.Expired(now) {
		u.ActiveBoost = nil
		return ""
	}
	return u.ActiveBoost.Type
}

// DrawCard picks one droppable card of rolled rarity r. When no droppable card
// has that rarity it falls back to the droppable commons.
func DrawCard(src Source, cards []models.Card, r models.Rarity) (models.Card, error) {
	pool := droppable(cards, r)
	if len(pool) == 0 {
		pool = droppable(cards, models.RarityCommon)
	}
	if len(pool) == 0 {
		return models.Card{}, ErrEmptyPool
	}
	return pool[src.IntN(len(pool))], nil
}

// Draw rolls a rarity with the given tier and draws a card of it.
func Draw(src Source, cards []models.Card, tier models.BoostTier) (models.Card, error) {
	return DrawCard(src, cards, PickRarity(src, tier))
}

func droppable(cards []models.Card, r models.Rarity) []models.Card {
	var pool []models.Card
	for _, c := range cards {
		if c.IsDroppable() && c.RarityOrCommon() == r {
			pool = append(pool, c)
		}
	}
	return pool
}
