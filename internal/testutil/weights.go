package testutil

import "math/rand/v2"

// UniformWeights returns n equal weights summing to 1.
func UniformWeights(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1 / float64(n)
	}
	return out
}

// DegenerateWeights returns n weights with all mass on index k.
// An out-of-range k yields all zeros.
func DegenerateWeights(n, k int) []float64 {
	out := make([]float64, n)
	if k >= 0 && k < n {
		out[k] = 1
	}
	return out
}

// DeterministicWeights returns n positive weights normalized to sum to 1,
// drawn from a fixed seed for reproducibility.
func DeterministicWeights(seed uint64, n int) []float64 {
	out := make([]float64, n)
	r := rand.New(rand.NewPCG(seed, seed^0x5851f42d4c957f2d))
	var sum float64
	for i := range out {
		out[i] = 0.05 + r.Float64()
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// SequenceSource replays a fixed list of uniform draws.
// It panics when the list is exhausted so tests notice over-consumption.
type SequenceSource struct {
	Values []float64
	Calls  int
}

// Float64 returns the next value of the sequence.
func (s *SequenceSource) Float64() float64 {
	if s.Calls >= len(s.Values) {
		panic("testutil: sequence source exhausted")
	}
	v := s.Values[s.Calls]
	s.Calls++
	return v
}

// ConstantNormal returns the same value for every normal draw.
type ConstantNormal float64

// NormFloat64 returns the constant.
func (c ConstantNormal) NormFloat64() float64 { return float64(c) }
