package core

import "math/rand"

// RandSampler is the default Sampler backed by math/rand, one per render
// worker (spec.md §5: per-worker PRNG state, thread-local, never shared).
type RandSampler struct {
	Rng *rand.Rand
}

// NewRandSampler creates a sampler seeded deterministically, so a fixed
// seed and single-threaded execution reproduce bit-identical sample
// buffers (spec.md §8, testable property 7).
func NewRandSampler(seed int64) *RandSampler {
	return &RandSampler{Rng: rand.New(rand.NewSource(seed))}
}

func (s *RandSampler) Get1D() float64 { return s.Rng.Float64() }
func (s *RandSampler) Get2D() Vec2    { return Vec2{X: s.Rng.Float64(), Y: s.Rng.Float64()} }
