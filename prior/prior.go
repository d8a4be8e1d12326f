// Package prior holds the independent normal initial guess over a parameter
// vector: it seeds the first particle population and scores parameter vectors
// for importance weighting.
package prior

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	errNoParams       = errors.New("prior: at least one parameter is required")
	errLengthMismatch = errors.New("prior: means and stddevs must have same length")
)

// Prior is a product of independent normal distributions, one per parameter.
type Prior struct {
	dists []distuv.Normal
}

// New returns a Prior with the given per-parameter means and standard
// deviations. All draws are taken from src, which should be the run's shared
// stream.
func New(means, stddevs []float64, src rand.Source) (*Prior, error) {
	if len(means) == 0 {
		return nil, errNoParams
	}
	if len(means) != len(stddevs) {
		return nil, errLengthMismatch
	}
	if src == nil {
		return nil, errors.New("prior: nil source")
	}

	dists := make([]distuv.Normal, len(means))
	for i := range dists {
		if !(stddevs[i] > 0) {
			return nil, fmt.Errorf("prior: stddev of parameter %d must be > 0: %f", i, stddevs[i])
		}
		dists[i] = distuv.Normal{Mu: means[i], Sigma: stddevs[i], Src: src}
	}
	return &Prior{dists: dists}, nil
}

// Dim returns the number of parameters.
func (p *Prior) Dim() int { return len(p.dists) }

// Means returns the per-parameter means.
func (p *Prior) Means() []float64 {
	out := make([]float64, len(p.dists))
	for i, d := range p.dists {
		out[i] = d.Mu
	}
	return out
}

// Sample draws an n × Dim() population. Draws are taken row by row, column
// by column, so the result depends only on the stream position.
func (p *Prior) Sample(n int) (*mat.Dense, error) {
	if n <= 0 {
		return nil, fmt.Errorf("prior: sample count must be > 0: %d", n)
	}

	out := mat.NewDense(n, len(p.dists), nil)
	for i := range n {
		row := out.RawRowView(i)
		for j, d := range p.dists {
			row[j] = d.Rand()
		}
	}
	return out, nil
}

// Density returns the joint prior density of theta.
func (p *Prior) Density(theta []float64) (float64, error) {
	lp, err := p.LogDensity(theta)
	if err != nil {
		return 0, err
	}
	return math.Exp(lp), nil
}

// LogDensity returns the joint prior log-density of theta.
func (p *Prior) LogDensity(theta []float64) (float64, error) {
	if len(theta) != len(p.dists) {
		return 0, fmt.Errorf("prior: theta has %d values, want %d", len(theta), len(p.dists))
	}
	var lp float64
	for i, d := range p.dists {
		lp += d.LogProb(theta[i])
	}
	return lp, nil
}
