// Package residual summarizes the misfit between a model spectrum and an
// observation.
//
// Beyond the RMS distance used for weighting, a fit report wants to know
// whether the residual looks like noise: a nonzero bias, heavy tails or too
// few sign runs all point to a systematic misfit such as a missing peak.
package residual

import (
	"errors"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"
)

var errLengthMismatch = errors.New("residual: model and observation lengths differ")

// Stats holds residual statistics.
type Stats struct {
	Points    int
	Bias      float64 // mean residual
	RMS       float64
	MaxAbs    float64
	MaxAbsPos int
	Variance  float64 // population variance
	Skewness  float64
	Kurtosis  float64 // excess kurtosis
	Runs      int     // maximal runs of equal sign, zeros skipped
	RunsZ     float64 // Wald-Wolfowitz z-score of Runs; 0 when undefined
}

// Between returns the statistics of model - observed.
func Between(model, observed []float64) (Stats, error) {
	if len(model) != len(observed) {
		return Stats{}, errLengthMismatch
	}
	diff := floats.SubTo(make([]float64, len(model)), model, observed)
	return Calculate(diff), nil
}

// Calculate computes all statistics in a single pass. Moments use Welford's
// online update for numerical stability.
func Calculate(r []float64) Stats {
	n := len(r)
	if n == 0 {
		return Stats{}
	}

	var (
		mean, m2, m3, m4 float64
		sumSq            float64
		maxAbs           float64
		maxAbsPos        int
		pos, neg, runs   int
		lastSign         float64
	)

	for i, x := range r {
		ni := float64(i + 1)
		delta := x - mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(i)

		// M4 before M3 before M2.
		m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*m2 - 4*deltaN*m3
		m3 += term1*deltaN*(float64(i)-1) - 3*deltaN*m2
		m2 += term1
		mean += deltaN

		sumSq += x * x
		if a := math.Abs(x); a > maxAbs {
			maxAbs = a
			maxAbsPos = i
		}

		if x == 0 {
			continue
		}
		sign := math.Copysign(1, x)
		if sign > 0 {
			pos++
		} else {
			neg++
		}
		if sign != lastSign {
			runs++
			lastSign = sign
		}
	}

	nf := float64(n)
	s := Stats{
		Points:    n,
		Bias:      mean,
		RMS:       math.Sqrt(sumSq / nf),
		MaxAbs:    maxAbs,
		MaxAbsPos: maxAbsPos,
		Variance:  m2 / nf,
		Runs:      runs,
		RunsZ:     runsZ(runs, pos, neg),
	}
	if s.Variance > 0 {
		s.Skewness = (m3 / nf) / (s.Variance * math.Sqrt(s.Variance))
		s.Kurtosis = (m4/nf)/(s.Variance*s.Variance) - 3
	}
	return s
}

// runsZ compares the observed number of sign runs with its expectation for
// a random ordering of pos positive and neg negative values.
func runsZ(runs, pos, neg int) float64 {
	if pos == 0 || neg == 0 {
		return 0
	}
	np, nn := float64(pos), float64(neg)
	n := np + nn
	mu := 2*np*nn/n + 1
	variance := (mu - 1) * (mu - 2) / (n - 1)
	if !(variance > 0) {
		return 0
	}
	return (float64(runs) - mu) / math.Sqrt(variance)
}

// LogValue implements slog.LogValuer.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("rms", s.RMS),
		slog.Float64("bias", s.Bias),
		slog.Float64("max_abs", s.MaxAbs),
		slog.Float64("skewness", s.Skewness),
		slog.Float64("kurtosis", s.Kurtosis),
		slog.Int("runs", s.Runs),
		slog.Float64("runs_z", s.RunsZ),
	)
}
