package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlovstudio/rui/rui/database/models"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		id      string
		want    ID
		wantErr bool
	}{
		{id: "RSKHJV101", want: ID{Raw: "RSKHJV101", Rarity: models.RarityRare, Group: "SK", Idol: "HJ", Version: "1", Episode: "01"}},
		{id: " eslsjcv299 ", want: ID{Raw: "ESLSJCV299", Rarity: models.RarityEvent, Group: "LS", Idol: "JC", Version: "2", Episode: "99"}},
		{id: "ELTWNYV1210", want: ID{Raw: "ELTWNYV1210", Rarity: models.RarityLimited, Group: "TW", Idol: "NY", Version: "12", Episode: "10"}},
		{id: "CSKHJV100", wantErr: true},
		{id: "XSKHJV101", wantErr: true},
		{id: "RSKHJ101", wantErr: true},
		{id: "RSKHJV1", wantErr: true},
		{id: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, err := ParseID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidID)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateDefinition(t *testing.T) {
	valid := models.Card{ID: "SSKHJV101", Group: "SKZ", Member: "Hyunjin", Rarity: models.RaritySuperRare, Type: models.CardTypeRegular}
	require.NoError(t, ValidateDefinition(valid))

	tests := []struct {
		name    string
		edit    func(c *models.Card)
		wantErr error
	}{
		{"prefix mismatch", func(c *models.Card) { c.Rarity = models.RarityRare }, ErrRarityMismatch},
		{"bad id", func(c *models.Card) { c.ID = "S-SKZ" }, ErrInvalidID},
		{"no group", func(c *models.Card) { c.Group = " " }, ErrMissingField},
		{"no idol", func(c *models.Card) { c.Member = "" }, ErrMissingField},
		{"unknown rarity", func(c *models.Card) { c.Rarity = "mythic" }, ErrUnknownRarity},
		{"unknown type", func(c *models.Card) { c.Type = "promo" }, ErrUnknownCardType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.edit(&c)
			assert.ErrorIs(t, ValidateDefinition(c), tt.wantErr)
		})
	}
}

func TestFind(t *testing.T) {
	cards := []models.Card{{ID: "RSKHJV101"}, {ID: "CSKHNV101"}}
	c, ok := Find(cards, "cskhnv101")
	require.True(t, ok)
	assert.Equal(t, "CSKHNV101", c.ID)

	_, ok = Find(cards, "LSKHNV101")
	assert.False(t, ok)
}

func TestClaimPool(t *testing.T) {
	cards := []models.Card{
		{ID: "CSKHNV101", Rarity: models.RarityCommon},
		{ID: "LSKHNV101", Rarity: models.RarityLegendary},
		{ID: "ESSKHNV101", Rarity: models.RarityEvent},
		{ID: "ELSKHNV101", Rarity: models.RarityLimited},
		{ID: "RSKHNV101", Rarity: models.RarityRare, Droppable: models.BoolPtr(false)},
		{ID: "CSKHNV102"},
	}
	var ids []string
	for _, c := range ClaimPool(cards) {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"CSKHNV101", "LSKHNV101", "CSKHNV102"}, ids)
}

func TestSuggest(t *testing.T) {
	cards := []models.Card{{ID: "RSKHJV101"}, {ID: "RSKHJV102"}, {ID: "CTWNYV101"}}

	got := Suggest(cards, "rskhj", 3)
	assert.ElementsMatch(t, []string{"RSKHJV101", "RSKHJV102"}, got)

	// a wrong episode still finds the idol
	got = Suggest(cards, "RSKHJV9XX", 1)
	assert.Len(t, got, 1)

	assert.Empty(t, Suggest(cards, "", 3))
}
