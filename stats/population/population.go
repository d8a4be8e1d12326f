// Package population computes per-parameter diagnostics of a particle
// population for convergence monitoring.
//
// A population is a matrix with one row per particle and one column per
// parameter. Standard deviations are population (biased, 1/N) estimates.
package population

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	errNilPopulation   = errors.New("population: matrix is nil")
	errEmptyPopulation = errors.New("population: matrix is empty")
)

// ColumnStats holds the mean and population standard deviation of one parameter.
type ColumnStats struct {
	Mean   float64
	StdDev float64
}

// Summary holds one ColumnStats per parameter, in column order.
type Summary []ColumnStats

// Summarize returns the per-column mean and population standard deviation.
// m is not modified.
func Summarize(m mat.Matrix) (Summary, error) {
	return summarize(m, nil)
}

// SummarizeWeighted is like Summarize with each row weighted by weights[i].
// Weights need not be normalized; len(weights) must equal the row count.
func SummarizeWeighted(m mat.Matrix, weights []float64) (Summary, error) {
	if m != nil {
		if r, _ := m.Dims(); len(weights) != r {
			return nil, fmt.Errorf("population: %d weights for %d rows", len(weights), r)
		}
	}
	return summarize(m, weights)
}

func summarize(m mat.Matrix, weights []float64) (Summary, error) {
	if m == nil {
		return nil, errNilPopulation
	}
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return nil, errEmptyPopulation
	}

	out := make(Summary, c)
	col := make([]float64, r)
	for j := range out {
		mat.Col(col, j, m)
		mean, std := stat.PopMeanStdDev(col, weights)
		out[j] = ColumnStats{Mean: mean, StdDev: std}
	}
	return out, nil
}

// Means returns the column means.
func (s Summary) Means() []float64 {
	out := make([]float64, len(s))
	for i, cs := range s {
		out[i] = cs.Mean
	}
	return out
}

// StdDevs returns the column standard deviations.
func (s Summary) StdDevs() []float64 {
	out := make([]float64, len(s))
	for i, cs := range s {
		out[i] = cs.StdDev
	}
	return out
}

// LogValue implements slog.LogValuer, grouping mean and std per parameter
// under keys p0, p1, ...
func (s Summary) LogValue() slog.Value {
	attrs := make([]slog.Attr, len(s))
	for i, cs := range s {
		attrs[i] = slog.Group("p"+strconv.Itoa(i),
			slog.Float64("mean", cs.Mean),
			slog.Float64("std", cs.StdDev),
		)
	}
	return slog.GroupValue(attrs...)
}
