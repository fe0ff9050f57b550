package services

import (
	"math/rand/v2"
	"sync"
)

// Random is the draw source shared by rarity rolls and reward amounts.
type Random interface {
	Float64() float64
	IntN(n int) int
}

type globalRandom struct{}

func (globalRandom) Float64() float64 { return rand.Float64() }
func (globalRandom) IntN(n int) int   { return rand.IntN(n) }

// lockedRandom makes a single seeded generator safe for concurrent commands.
type lockedRandom struct {
	mu  sync.Mutex
	src *rand.Rand
}

func NewSeededRandom(seed1, seed2 uint64) Random {
	return &lockedRandom{src: rand.New(rand.NewPCG(seed1, seed2))}
}

func (r *lockedRandom) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Float64()
}

func (r *lockedRandom) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.IntN(n)
}
