package spectrum

import (
	"math"

	"github.com/cwbudde/algo-abc/core"
	"github.com/cwbudde/algo-abc/peak"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

// Model is an observed spectrum together with the peak list used to explain it.
type Model struct {
	synth     *Synthesizer
	intensity []float64
}

// NewModel returns a Model for the observed (energy, intensity) pairs.
// Both slices are copied and must have the same non-zero length.
func NewModel(energy, intensity []float64, peaks []peak.Shape, opts ...Option) (*Model, error) {
	if len(energy) != len(intensity) {
		return nil, errLengthMismatch
	}
	synth, err := NewSynthesizer(energy, peaks, opts...)
	if err != nil {
		return nil, err
	}
	return &Model{synth: synth, intensity: core.Clone(intensity)}, nil
}

// Energy returns a copy of the observed energy axis.
func (m *Model) Energy() []float64 { return m.synth.Grid() }

// Intensity returns a copy of the observed intensities.
func (m *Model) Intensity() []float64 { return core.Clone(m.intensity) }

// Peaks returns a copy of the peak list.
func (m *Model) Peaks() []peak.Shape { return m.synth.Peaks() }

// SetPeakList replaces the peak list.
func (m *Model) SetPeakList(peaks []peak.Shape) { m.synth.SetPeakList(peaks) }

// NumParams returns the parameter vector length the peak list expects.
func (m *Model) NumParams() int { return m.synth.NumParams() }

// Synthesizer returns the synthesizer evaluating on the observed energy axis.
func (m *Model) Synthesizer() *Synthesizer { return m.synth }

// Calculate evaluates the noise-free model spectrum on the observed energies.
func (m *Model) Calculate(params []float64) ([]float64, error) {
	return m.synth.Synthesize(params, false, nil)
}

// Residual returns Calculate(params) minus the observed intensity.
func (m *Model) Residual(params []float64) ([]float64, error) {
	calc, err := m.Calculate(params)
	if err != nil {
		return nil, err
	}
	return floats.SubTo(calc, calc, m.intensity), nil
}

// Error returns the RMS discrepancy between the model and the observation.
func (m *Model) Error(params []float64) (float64, error) {
	diff, err := m.Residual(params)
	if err != nil {
		return 0, err
	}
	return RMSError(diff), nil
}

// Distance returns the RMS discrepancy between a simulated spectrum and the
// observation. It is the ABC distance for a spectrum produced by Synthesizer().
func (m *Model) Distance(simulated []float64) (float64, error) {
	if len(simulated) != len(m.intensity) {
		return 0, errLengthMismatch
	}
	diff := floats.SubTo(make([]float64, len(simulated)), simulated, m.intensity)
	return RMSError(diff), nil
}

// RMSError returns sqrt(Σ d² / n). It is 0 for an empty slice.
func RMSError(diff []float64) float64 {
	if len(diff) == 0 {
		return 0
	}
	return math.Sqrt(vecmath.DotProduct(diff, diff) / float64(len(diff)))
}
