package resample

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Normalize returns a copy of weights scaled to sum to 1.
func Normalize(weights []float64) ([]float64, error) {
	if len(weights) == 0 {
		return nil, ErrEmptyWeights
	}

	total := vecmath.Sum(weights)
	if !(total > 0) || math.IsInf(total, 0) {
		return nil, ErrZeroWeightSum
	}

	out := make([]float64, len(weights))
	vecmath.ScaleBlock(out, weights, 1/total)
	return out, nil
}

// EffectiveSampleSize returns 1 / Σ w², the usual SMC degeneracy measure for
// normalized weights. It is N for uniform weights and 1 when all mass sits on
// one particle. Returns 0 for an empty or all-zero vector.
func EffectiveSampleSize(weights []float64) float64 {
	if len(weights) == 0 {
		return 0
	}
	sq := vecmath.DotProduct(weights, weights)
	if sq == 0 {
		return 0
	}
	return 1 / sq
}
