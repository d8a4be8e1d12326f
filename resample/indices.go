package resample

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Uniform is a stream of uniform draws in [0, 1).
// *rng.Source and *rand.Rand both satisfy it.
type Uniform interface {
	Float64() float64
}

// CumulativeWeights returns the running sum of weights:
// C[0] = w[0], C[i] = C[i-1] + w[i].
func CumulativeWeights(weights []float64) []float64 {
	return floats.CumSum(make([]float64, len(weights)), weights)
}

// Indices draws len == draws survivor indices proportionally to weights.
//
// For every uniform draw r it selects the smallest k with r < C[k], where C
// is the cumulative weight array, found by binary search. A draw at or beyond
// C[N-1] selects N-1. src is advanced by exactly draws calls; weights is not
// modified.
func Indices(weights []float64, draws int, src Uniform) ([]int, error) {
	cum, err := prepare(weights, draws)
	if err != nil {
		return nil, err
	}
	if draws == 0 {
		return []int{}, nil
	}

	n := len(cum)
	out := make([]int, draws)
	for i := range out {
		r := src.Float64()
		k := sort.Search(n, func(j int) bool { return r < cum[j] })
		if k == n {
			k = n - 1
		}
		out[i] = k
	}
	return out, nil
}

// IndicesLinear is the linear-scan form of [Indices]. It returns exactly the
// same indices for the same inputs and stream, in O(N) per draw.
func IndicesLinear(weights []float64, draws int, src Uniform) ([]int, error) {
	cum, err := prepare(weights, draws)
	if err != nil {
		return nil, err
	}
	if draws == 0 {
		return []int{}, nil
	}

	n := len(cum)
	out := make([]int, draws)
	for i := range out {
		r := src.Float64()
		k := n - 1
		for j, c := range cum {
			if r < c {
				k = j
				break
			}
		}
		out[i] = k
	}
	return out, nil
}

func prepare(weights []float64, draws int) ([]float64, error) {
	if draws < 0 {
		return nil, ErrNegativeDraws
	}
	if draws == 0 {
		return nil, nil
	}
	if len(weights) == 0 {
		return nil, ErrEmptyWeights
	}
	return CumulativeWeights(weights), nil
}
