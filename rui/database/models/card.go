package models

import "strings"

// Rarity is one of the seven card scarcity tiers.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RaritySuperRare Rarity = "super_rare"
	RarityUltraRare Rarity = "ultra_rare"
	RarityLegendary Rarity = "legendary"
	RarityEvent     Rarity = "event"
	RarityLimited   Rarity = "limited"
)

// Rarities lists every tier in declaration order. Draws walk tiers in this order.
var Rarities = []Rarity{
	RarityCommon,
	RarityRare,
	RaritySuperRare,
	RarityUltraRare,
	RarityLegendary,
	RarityEvent,
	RarityLimited,
}

// ParseRarity normalizes a user supplied rarity name.
func ParseRarity(s string) (Rarity, bool) {
	r := Rarity(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Rarities {
		if r == known {
			return r, true
		}
	}
	return "", false
}

// Special reports whether the tier is event or limited. Special cards are never
// sold directly and never appear in claims or packs.
func (r Rarity) Special() bool {
	return r == RarityEvent || r == RarityLimited
}

type CardType string

const (
	CardTypeRegular CardType = "reg"
	CardTypeEvent   CardType = "event"
	CardTypeLimited CardType = "limited"
)

func ParseCardType(s string) (CardType, bool) {
	switch t := CardType(strings.ToLower(strings.TrimSpace(s))); t {
	case CardTypeRegular, CardTypeEvent, CardTypeLimited:
		return t, true
	case "regular":
		return CardTypeRegular, true
	}
	return "", false
}

// Card is a catalog definition. Definitions are immutable once created.
type Card struct {
	ID        string   `json:"id" yaml:"id"`
	Group     string   `json:"group" yaml:"group"`
	Member    string   `json:"member" yaml:"member"`
	Era       string   `json:"era,omitempty" yaml:"era"`
	Version   string   `json:"version,omitempty" yaml:"version"`
	Image     string   `json:"image,omitempty" yaml:"image"`
	Rarity    Rarity   `json:"rarity" yaml:"rarity"`
	Type      CardType `json:"type" yaml:"type"`
	Droppable *bool    `json:"droppable,omitempty" yaml:"droppable"`
}

// IsDroppable treats a missing flag as droppable.
func (c Card) IsDroppable() bool {
	return c.Droppable == nil || *c.Droppable
}

// RarityOrCommon returns the card rarity, defaulting legacy entries without one to common.
func (c Card) RarityOrCommon() Rarity {
	if c.Rarity == "" {
		return RarityCommon
	}
	return c.Rarity
}

func BoolPtr(b bool) *bool {
	return &b
}
