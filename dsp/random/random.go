// Package random draws uniformly distributed parameter values for grains.
package random

import "math/rand"

// Range draws uniform values between two bounds from a seeded source.
// It is not safe for concurrent use.
type Range struct {
	seed int64
	rng  *rand.Rand
}

// NewRange returns a Range seeded with seed.
func NewRange(seed int64) *Range {
	return &Range{seed: seed, rng: rand.New(rand.NewSource(seed))}
}

// Seed returns the current seed.
func (r *Range) Seed() int64 { return r.seed }

// SetSeed reseeds the generator, restarting its sequence.
func (r *Range) SetSeed(seed int64) {
	r.seed = seed
	r.rng.Seed(seed)
}

// Sample returns min exactly when min == max and otherwise a uniform value
// in [min, max). Swapped bounds yield a value between them.
func (r *Range) Sample(min, max float64) float64 {
	if min == max {
		return min
	}

	return min + r.rng.Float64()*(max-min)
}
