package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// FillBits assigns every cell of g an independent fair coin flip.
func FillBits(r *rand.Rand, g *BitGrid) {
	total := g.W * g.H
	for i := 0; i < total; i++ {
		g.Set(i, r.IntN(2) == 1)
	}
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
