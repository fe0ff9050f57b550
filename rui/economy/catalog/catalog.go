// Package catalog holds the card id grammar, prices and acquisition rules.
package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/xlovstudio/rui/rui/database/models"
)

var (
	ErrInvalidID       = errors.New("invalid card id")
	ErrRarityMismatch  = errors.New("card id prefix does not match rarity")
	ErrMissingField    = errors.New("missing required field")
	ErrNotPurchasable  = errors.New("card is not purchasable")
	ErrUnknownPack     = errors.New("unknown pack size")
	ErrUnknownBoost    = errors.New("unknown boost tier")
	ErrUnknownRarity   = errors.New("unknown rarity")
	ErrUnknownCardType = errors.New("unknown card type")
)

// {RarityLetter}{Group:2}{Idol:2}V{Version}{Episode:01-99}
var idPattern = regexp.MustCompile(`^(ES|EL|C|R|S|U|L)([A-Z0-9]{2})([A-Z0-9]{2})V([0-9]+)(0[1-9]|[1-9][0-9])$`)

var prefixRarity = map[string]models.Rarity{
	"C":  models.RarityCommon,
	"R":  models.RarityRare,
	"S":  models.RaritySuperRare,
	"U":  models.RarityUltraRare,
	"L":  models.RarityLegendary,
	"ES": models.RarityEvent,
	"EL": models.RarityLimited,
}

type ID struct {
	Raw     string
	Rarity  models.Rarity
	Group   string
	Idol    string
	Version string
	Episode string
}

// NormalizeID trims and upper-cases a user supplied id.
func NormalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

func ParseID(id string) (ID, error) {
	m := idPattern.FindStringSubmatch(NormalizeID(id))
	if m == nil {
		return ID{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return ID{
		Raw:     m[0],
		Rarity:  prefixRarity[m[1]],
		Group:   m[2],
		Idol:    m[3],
		Version: m[4],
		Episode: m[5],
	}, nil
}

// ValidateDefinition checks a new catalog card: required fields, the id grammar
// and that the id prefix encodes the declared rarity.
func ValidateDefinition(c models.Card) error {
	if strings.TrimSpace(c.Group) == "" {
		return fmt.Errorf("%w: group", ErrMissingField)
	}
	if strings.TrimSpace(c.Member) == "" {
		return fmt.Errorf("%w: idol", ErrMissingField)
	}
	if _, ok := models.ParseRarity(string(c.Rarity)); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRarity, c.Rarity)
	}
	if _, ok := models.ParseCardType(string(c.Type)); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCardType, c.Type)
	}
	id, err := ParseID(c.ID)
	if err != nil {
		return err
	}
	if id.Rarity != c.Rarity {
		return fmt.Errorf("%w: %s encodes %s, got %s", ErrRarityMismatch, id.Raw, id.Rarity, c.Rarity)
	}
	return nil
}

// Find returns the catalog card with the given id, ignoring case.
func Find(cards []models.Card, id string) (models.Card, bool) {
	for _, c := range cards {
		if strings.EqualFold(c.ID, id) {
			return c, true
		}
	}
	return models.Card{}, false
}

// ClaimPool holds cards eligible for claims and packs: droppable and not event or limited.
func ClaimPool(cards []models.Card) []models.Card {
	var pool []models.Card
	for _, c := range cards {
		if c.IsDroppable() && !c.RarityOrCommon().Special() {
			pool = append(pool, c)
		}
	}
	return pool
}

// Suggest returns up to n catalog ids resembling query.
func Suggest(cards []models.Card, query string, n int) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return fuzzyIDs(ids, NormalizeID(query), n)
}
