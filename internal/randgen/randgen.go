// SPDX-License-Identifier: MIT

// Package randgen provides deterministic pseudo-random generators for
// simulation patterns, truth tables, and placement seeds, all driven
// by an explicitly threaded *rand.Rand rather than global state.
package randgen

import "math/rand/v2"

// New returns a new PRNG seeded deterministically from seed, so a
// given seed always reproduces the same generator sequence.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}

// Word returns a random 32-bit simulation word.
func Word(prng *rand.Rand) uint32 {
	return uint32(prng.Uint64())
}

// Words fills a freshly allocated slice of n random 32-bit words.
func Words(prng *rand.Rand, n int) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = Word(prng)
	}
	return out
}

// TruthTable16 returns a uniformly random 16-bit truth table over the
// full 4-variable function space.
func TruthTable16(prng *rand.Rand) uint16 {
	return uint16(prng.UintN(1 << 16))
}

// Permutation returns a uniformly random permutation of {0, ..., n-1}
// via Fisher-Yates, used for FORCE's initial random placement seed.
func Permutation(prng *rand.Rand, n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := prng.IntN(i + 1)
		p[i], p[j] = p[j], p[i]
	}
	return p
}

// Bool returns a uniformly random boolean.
func Bool(prng *rand.Rand) bool {
	return prng.IntN(2) == 1
}
