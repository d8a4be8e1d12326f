package spectrum

import (
	"slices"

	"github.com/cwbudde/algo-abc/core"
	"github.com/cwbudde/algo-abc/peak"
	"github.com/cwbudde/algo-vecmath"
)

// Normal is a stream of standard normal draws.
// *rng.Source and *rand.Rand both satisfy it.
type Normal interface {
	NormFloat64() float64
}

// Synthesizer evaluates a fixed peak list on a fixed energy grid.
//
// A Synthesizer reuses internal scratch memory and must not be shared between
// goroutines.
type Synthesizer struct {
	grid       []float64
	peaks      []peak.Shape
	noiseScale float64
	scratch    []float64
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithNoiseScale multiplies every noise draw by scale. The default is 1
// (standard normal noise). Non-positive values are ignored.
func WithNoiseScale(scale float64) Option {
	return func(s *Synthesizer) {
		if validateNoiseScale(scale) == nil {
			s.noiseScale = scale
		}
	}
}

// NewSynthesizer returns a Synthesizer over grid for the given peak list.
// grid and peaks are copied.
func NewSynthesizer(grid []float64, peaks []peak.Shape, opts ...Option) (*Synthesizer, error) {
	if err := validateGridSize(len(grid)); err != nil {
		return nil, err
	}

	s := &Synthesizer{
		grid:       core.Clone(grid),
		peaks:      slices.Clone(peaks),
		noiseScale: 1,
		scratch:    make([]float64, len(grid)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Grid returns a copy of the energy grid.
func (s *Synthesizer) Grid() []float64 { return core.Clone(s.grid) }

// Peaks returns a copy of the peak list.
func (s *Synthesizer) Peaks() []peak.Shape { return slices.Clone(s.peaks) }

// SetPeakList replaces the peak list.
func (s *Synthesizer) SetPeakList(peaks []peak.Shape) {
	s.peaks = slices.Clone(peaks)
}

// NumParams returns the parameter vector length the peak list expects.
func (s *Synthesizer) NumParams() int { return peak.ParamsPerPeak * len(s.peaks) }

// Synthesize returns the spectrum for params, optionally with additive noise.
func (s *Synthesizer) Synthesize(params []float64, withNoise bool, src Normal) ([]float64, error) {
	return s.SynthesizeInto(nil, params, withNoise, src)
}

// SynthesizeInto writes the spectrum for params into dst, growing it as
// needed, and returns the resulting slice.
//
// Peaks are summed in list order. With withNoise set, one draw per grid
// point is taken from src, in grid order, after all peaks are summed.
func (s *Synthesizer) SynthesizeInto(dst, params []float64, withNoise bool, src Normal) ([]float64, error) {
	if len(params) != s.NumParams() {
		return nil, &ShapeMismatchError{Params: len(params), Peaks: len(s.peaks)}
	}
	if withNoise && src == nil {
		return nil, ErrNilSource
	}

	acc := core.EnsureLen(dst, len(s.grid))
	core.Zero(acc)

	for i, shape := range s.peaks {
		p := peak.ParamsFrom(params[i*peak.ParamsPerPeak:])
		if err := peak.EvaluateInto(s.scratch, s.grid, shape, p); err != nil {
			// Unknown tags wipe everything accumulated so far.
			core.Zero(acc)
			continue
		}
		vecmath.AddBlockInPlace(acc, s.scratch)
	}

	if withNoise {
		for i := range s.scratch {
			s.scratch[i] = src.NormFloat64()
		}
		if s.noiseScale != 1 {
			vecmath.ScaleBlockInPlace(s.scratch, s.noiseScale)
		}
		vecmath.AddBlockInPlace(acc, s.scratch)
	}

	return acc, nil
}

// Synthesize evaluates params for peaks on Grid(gridSize).
func Synthesize(params []float64, peaks []peak.Shape, gridSize int, withNoise bool, src Normal) ([]float64, error) {
	grid, err := Grid(gridSize)
	if err != nil {
		return nil, err
	}
	s, err := NewSynthesizer(grid, peaks)
	if err != nil {
		return nil, err
	}
	return s.Synthesize(params, withNoise, src)
}
