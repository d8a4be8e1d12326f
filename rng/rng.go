// Package rng provides the seedable random stream shared by every stochastic
// step of a sampler run.
//
// A single [Source] is created by the outer loop and passed by pointer to each
// consumer in a fixed call order. Reproducibility of a run depends on that
// order, so the package keeps no global state and never reseeds on its own.
package rng

import "math/rand/v2"

// Source is a deterministic PCG-backed random stream.
//
// Source satisfies [rand.Source], so it can be handed to gonum distributions
// (distuv.Normal{Src: src}) without forking the stream.
type Source struct {
	seed uint64
	pcg  *rand.PCG
	r    *rand.Rand
}

var _ rand.Source = (*Source)(nil)

// New returns a Source seeded from seed. Equal seeds yield identical streams.
func New(seed uint64) *Source {
	hi, lo := expandSeed(seed)
	pcg := rand.NewPCG(hi, lo)
	return &Source{
		seed: seed,
		pcg:  pcg,
		r:    rand.New(pcg),
	}
}

// Seed returns the seed the stream was created with.
func (s *Source) Seed() uint64 { return s.seed }

// Uint64 returns the next raw 64-bit value of the stream.
func (s *Source) Uint64() uint64 { return s.pcg.Uint64() }

// Float64 returns a uniform draw in [0, 1).
// Each call advances the stream by exactly one step.
func (s *Source) Float64() float64 { return s.r.Float64() }

// NormFloat64 returns a standard normal draw (mean 0, stddev 1).
func (s *Source) NormFloat64() float64 { return s.r.NormFloat64() }

// MarshalBinary captures the current stream position.
func (s *Source) MarshalBinary() ([]byte, error) {
	return s.pcg.MarshalBinary()
}

// UnmarshalBinary restores a stream position captured by MarshalBinary.
// The seed passed to New is not part of the snapshot and is left unchanged.
func (s *Source) UnmarshalBinary(data []byte) error {
	return s.pcg.UnmarshalBinary(data)
}

// expandSeed derives the two PCG state words from one seed.
func expandSeed(seed uint64) (hi, lo uint64) {
	x := seed ^ 0x9e3779b97f4a7c15
	return splitmix64(x), splitmix64(x ^ 0xda942042e4dd58b5)
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
