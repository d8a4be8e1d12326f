// Package profile describes a sampled spectrum on an energy axis.
//
// Unlike [peak], which evaluates a known line shape, profile works backwards
// from samples: where the maximum sits, how much area lies under the curve,
// its intensity-weighted centroid and spread, and the full width at half
// maximum of the dominant feature.
package profile

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
)

var (
	errLengthMismatch = errors.New("profile: energy and intensity lengths differ")
	errUnsorted       = errors.New("profile: energy axis must be increasing")
)

// Stats holds shape statistics of one spectrum.
type Stats struct {
	Points    int
	Max       float64
	MaxEnergy float64 // energy of the maximum
	MaxPos    int
	Min       float64
	MinPos    int
	Area      float64 // trapezoidal integral over energy
	Centroid  float64 // Σ e·I / Σ I
	Spread    float64 // intensity-weighted standard deviation around Centroid
	FWHM      float64 // full width at half maximum around the maximum
}

// Calculate computes all statistics. An empty spectrum yields zero Stats.
// The energy axis must be sorted in increasing order.
func Calculate(energy, intensity []float64) (Stats, error) {
	if len(energy) != len(intensity) {
		return Stats{}, errLengthMismatch
	}
	n := len(energy)
	if n == 0 {
		return Stats{}, nil
	}
	if !sort.Float64sAreSorted(energy) {
		return Stats{}, errUnsorted
	}

	maxPos := floats.MaxIdx(intensity)
	minPos := floats.MinIdx(intensity)
	sum := floats.Sum(intensity)
	cent := centroid(energy, intensity, sum)

	return Stats{
		Points:    n,
		Max:       intensity[maxPos],
		MaxEnergy: energy[maxPos],
		MaxPos:    maxPos,
		Min:       intensity[minPos],
		MinPos:    minPos,
		Area:      area(energy, intensity),
		Centroid:  cent,
		Spread:    spread(energy, intensity, cent, sum),
		FWHM:      fwhm(energy, intensity, maxPos),
	}, nil
}

// Centroid returns the intensity-weighted mean energy.
//
//	centroid = Σ(e_i · I_i) / Σ I_i
//
// It is 0 when the intensities sum to zero or the lengths differ.
func Centroid(energy, intensity []float64) float64 {
	if len(energy) != len(intensity) || len(energy) == 0 {
		return 0
	}
	return centroid(energy, intensity, floats.Sum(intensity))
}

func centroid(energy, intensity []float64, sum float64) float64 {
	if sum == 0 {
		return 0
	}
	return floats.Dot(energy, intensity) / sum
}

func spread(energy, intensity []float64, cent, sum float64) float64 {
	if sum == 0 {
		return 0
	}
	var acc float64
	for i, v := range intensity {
		d := energy[i] - cent
		acc += d * d * v
	}
	// Negative samples (noise) can pull the second moment below zero.
	return math.Sqrt(max(acc/sum, 0))
}

func area(energy, intensity []float64) float64 {
	if len(energy) < 2 {
		return 0
	}
	return integrate.Trapezoidal(energy, intensity)
}

// FWHM returns the full width at half maximum of the highest feature, or 0
// if the maximum is not positive. Crossings are located by linear
// interpolation; a side that never drops below half maximum extends to the
// end of the axis.
func FWHM(energy, intensity []float64) float64 {
	if len(energy) != len(intensity) || len(energy) < 2 {
		return 0
	}
	return fwhm(energy, intensity, floats.MaxIdx(intensity))
}

func fwhm(energy, intensity []float64, peakPos int) float64 {
	n := len(intensity)
	if n < 2 || !(intensity[peakPos] > 0) {
		return 0
	}
	half := intensity[peakPos] / 2

	lower := energy[0]
	for i := peakPos; i >= 1; i-- {
		if intensity[i-1] <= half && intensity[i] > half {
			lower = crossing(energy[i-1], energy[i], intensity[i-1], intensity[i], half)
			break
		}
	}

	upper := energy[n-1]
	for i := peakPos; i < n-1; i++ {
		if intensity[i+1] <= half && intensity[i] > half {
			upper = crossing(energy[i], energy[i+1], intensity[i], intensity[i+1], half)
			break
		}
	}

	return max(upper-lower, 0)
}

// crossing interpolates the energy where the intensity passes level.
func crossing(eLow, eHigh, iLow, iHigh, level float64) float64 {
	denom := iHigh - iLow
	if denom == 0 {
		return (eLow + eHigh) / 2
	}
	t := (level - iLow) / denom
	return eLow + t*(eHigh-eLow)
}

// LogValue implements slog.LogValuer.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("points", s.Points),
		slog.Float64("max", s.Max),
		slog.Float64("max_energy", s.MaxEnergy),
		slog.Float64("area", s.Area),
		slog.Float64("centroid", s.Centroid),
		slog.Float64("spread", s.Spread),
		slog.Float64("fwhm", s.FWHM),
	)
}

// String formats the headline numbers for reports.
func (s Stats) String() string {
	return fmt.Sprintf("max %.4g at %.4g, area %.4g, centroid %.4g, fwhm %.4g",
		s.Max, s.MaxEnergy, s.Area, s.Centroid, s.FWHM)
}
