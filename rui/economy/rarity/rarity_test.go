package rarity

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlovstudio/rui/rui/database/models"
)

// fixedSource replays the given floats and always returns index 0.
type fixedSource struct {
	floats []float64
	i      int
}

func (s *fixedSource) Float64() float64 {
	f := s.floats[s.i%len(s.floats)]
	s.i++
	return f
}

func (s *fixedSource) IntN(int) int { return 0 }

func TestTable_PickBoundaries(t *testing.T) {
	tests := []struct {
		name string
		roll float64
		want models.Rarity
	}{
		{"zero", 0, models.RarityCommon},
		{"last common", 0.4399, models.RarityCommon},
		{"first rare", 0.4401, models.RarityRare},
		{"last rare", 0.6399, models.RarityRare},
		{"super rare", 0.70, models.RaritySuperRare},
		{"ultra rare", 0.85, models.RarityUltraRare},
		{"legendary", 0.90, models.RarityLegendary},
		{"event", 0.95, models.RarityEvent},
		{"limited", 0.999, models.RarityLimited},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BaseWeights.Pick(&fixedSource{floats: []float64{tt.roll}})
			if got != tt.want {
				t.Errorf("Pick(%v) = %v, want %v", tt.roll, got, tt.want)
			}
		})
	}
}

func TestTable_PickSkipsEmptyTiers(t *testing.T) {
	table := Table{
		{models.RarityCommon, 0},
		{models.RarityRare, 1},
	}
	assert.Equal(t, models.RarityRare, table.Pick(&fixedSource{floats: []float64{0}}))
	assert.Equal(t, models.RarityCommon, Table{}.Pick(&fixedSource{floats: []float64{0.5}}))
}

func TestBaseWeights_Converge(t *testing.T) {
	const draws = 200_000
	src := rand.New(rand.NewPCG(7, 11))

	counts := make(map[models.Rarity]int)
	for range draws {
		counts[PickRarity(src, "")]++
	}

	total := BaseWeights.Total()
	require.InDelta(t, 100, total, 1e-9)
	for _, w := range BaseWeights {
		got := float64(counts[w.Rarity]) / draws
		assert.InDelta(t, w.Value/total, got, 0.01, "rarity %s", w.Rarity)
	}
}

func TestApply_BoostShiftsTowardsRare(t *testing.T) {
	base := BaseWeights.Probability(models.RarityCommon)
	prev := base
	for _, tier := range []models.BoostTier{models.BoostSmall, models.BoostNormal, models.BoostMega} {
		boosted := BaseWeights.Apply(tier)
		common := boosted.Probability(models.RarityCommon)
		assert.Less(t, common, prev, "tier %s", tier)
		assert.Greater(t, boosted.Probability(models.RarityLegendary), BaseWeights.Probability(models.RarityLegendary))
		prev = common
	}

	// the base table is never modified
	assert.Equal(t, 44.0, BaseWeights[0].Value)
	assert.Equal(t, BaseWeights, BaseWeights.Apply("unknown"))
}

func TestActiveTier(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	u := &models.User{ActiveBoost: &models.ActiveBoost{Type: models.BoostMega, ExpiresAt: now.Add(time.Minute)}}

	assert.Equal(t, models.BoostMega, ActiveTier(u, now))
	assert.Equal(t, models.BoostTier(""), ActiveTier(u, now.Add(time.Minute+time.Second)))
	assert.Nil(t, u.ActiveBoost)
}

func TestDrawCard(t *testing.T) {
	cards := []models.Card{
		{ID: "C-A-B-01", Rarity: models.RarityCommon},
		{ID: "R-A-B-01", Rarity: models.RarityRare, Droppable: models.BoolPtr(false)},
		{ID: "L-A-B-01", Rarity: models.RarityLegendary},
	}
	src := &fixedSource{floats: []float64{0}}

	c, err := DrawCard(src, cards, models.RarityLegendary)
	require.NoError(t, err)
	assert.Equal(t, "L-A-B-01", c.ID)

	// rare is not droppable, fall back to common
	c, err = DrawCard(src, cards, models.RarityRare)
	require.NoError(t, err)
	assert.Equal(t, "C-A-B-01", c.ID)

	_, err = DrawCard(src, cards[1:2], models.RarityRare)
	assert.ErrorIs(t, err, ErrEmptyPool)
}
