package util

import "math/rand"

// RNG encapsulates a seeded random number generator.
//
// Every source of randomness in the library is injected as an *RNG so a
// run can be reproduced by logging and replaying the seed.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a uniform int in [0, n).
func (r *RNG) Intn(n int) int {
	return r.rand.Intn(n)
}

// Perm returns a random permutation of [0, n).
func (r *RNG) Perm(n int) []int {
	return r.rand.Perm(n)
}

// Float64 returns a uniform float64 in [0, 1).
func (r *RNG) Float64() float64 {
	return r.rand.Float64()
}
