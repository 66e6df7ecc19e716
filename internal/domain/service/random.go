package service

import (
	"math/rand/v2"
)

// RandomSource is the subset of *rand.Rand the reward and game logic draws from.
type RandomSource interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// IntN returns a value in [0, n).
	IntN(n int) int
}

// NewSeededSource returns a deterministic source: equal seeds give equal sequences.
func NewSeededSource(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }
func (globalSource) IntN(n int) int   { return rand.IntN(n) }

// DefaultSource is backed by the runtime's concurrency-safe generator.
func DefaultSource() RandomSource {
	return globalSource{}
}
