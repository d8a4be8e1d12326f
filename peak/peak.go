// Package peak evaluates analytic line shapes on an energy grid.
//
// The shape set is closed: [Gaussian] and [Lorentzian]. Both are parameterized
// by center, full width at half maximum and integrated intensity, so the area
// under a peak equals its intensity regardless of shape.
//
// Degenerate widths are not guarded. A zero FWHM divides by zero and yields
// NaN or ±Inf values, which callers must validate upstream or tolerate.
package peak

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ParamsPerPeak is the number of parameters describing one peak.
const ParamsPerPeak = 3

const (
	// fwhmPerSigma converts a normal density FWHM to its standard deviation.
	fwhmPerSigma = 2.35482
	sqrt2Pi      = 2.5066282746310002 // math.Sqrt(2 * math.Pi)
)

// ErrUnknownShape is returned when a Shape value is not one of the defined shapes.
var ErrUnknownShape = errors.New("peak: unknown shape")

// Shape identifies an analytic peak profile.
type Shape int

const (
	// Gaussian is a normal density profile.
	Gaussian Shape = iota
	// Lorentzian is a Cauchy density profile.
	Lorentzian
)

var shapeNames = [...]string{
	Gaussian:   "gaussian",
	Lorentzian: "lorentzian",
}

// String returns the lower-case shape name.
func (s Shape) String() string {
	if s.Valid() {
		return shapeNames[s]
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// Valid reports whether s is a defined shape.
func (s Shape) Valid() bool {
	return s >= Gaussian && s <= Lorentzian
}

// ParseShape resolves a shape name. Matching is case-insensitive and accepts
// the short aliases "gauss" and "lorentz".
func ParseShape(name string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "gaussian", "gauss":
		return Gaussian, nil
	case "lorentzian", "lorentz":
		return Lorentzian, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownShape, name)
}

// Params is one [center, fwhm, intensity] block of a parameter vector.
type Params struct {
	Center    float64
	FWHM      float64
	Intensity float64
}

// ParamsFrom reads a Params from the first three values of block.
// It panics if block is shorter than ParamsPerPeak.
func ParamsFrom(block []float64) Params {
	_ = block[ParamsPerPeak-1]
	return Params{Center: block[0], FWHM: block[1], Intensity: block[2]}
}

// GaussianProfile evaluates a Gaussian peak over grid.
func GaussianProfile(grid []float64, center, fwhm, intensity float64) []float64 {
	out := make([]float64, len(grid))
	gaussianInto(out, grid, center, fwhm, intensity)
	return out
}

// LorentzianProfile evaluates a Lorentzian peak over grid.
func LorentzianProfile(grid []float64, center, fwhm, intensity float64) []float64 {
	out := make([]float64, len(grid))
	lorentzianInto(out, grid, center, fwhm, intensity)
	return out
}

// Evaluate returns shape evaluated over grid with parameters p.
func Evaluate(shape Shape, grid []float64, p Params) ([]float64, error) {
	out := make([]float64, len(grid))
	if err := EvaluateInto(out, grid, shape, p); err != nil {
		return nil, err
	}
	return out, nil
}

// EvaluateInto writes shape evaluated over grid into dst.
// dst must have the same length as grid.
func EvaluateInto(dst, grid []float64, shape Shape, p Params) error {
	if len(dst) != len(grid) {
		return fmt.Errorf("peak: dst length %d does not match grid length %d", len(dst), len(grid))
	}

	switch shape {
	case Gaussian:
		gaussianInto(dst, grid, p.Center, p.FWHM, p.Intensity)
	case Lorentzian:
		lorentzianInto(dst, grid, p.Center, p.FWHM, p.Intensity)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownShape, int(shape))
	}
	return nil
}

// gaussianInto: sigma = |fwhm|/2.35482, amplitude = intensity/(sigma*sqrt(2π)).
func gaussianInto(dst, grid []float64, center, fwhm, intensity float64) {
	sigma := math.Abs(fwhm) / fwhmPerSigma
	amp := intensity / (sigma * sqrt2Pi)
	c := 0.5 / (sigma * sigma)
	for i, x := range grid {
		d := x - center
		dst[i] = amp * math.Exp(-c*d*d)
	}
}

// lorentzianInto: gamma = |fwhm|/2, value = intensity/(gamma*π*(1+((x-center)/gamma)²)).
func lorentzianInto(dst, grid []float64, center, fwhm, intensity float64) {
	gamma := math.Abs(fwhm) / 2
	inv := 1 / gamma
	norm := intensity / (gamma * math.Pi)
	for i, x := range grid {
		u := (x - center) * inv
		dst[i] = norm / (1 + u*u)
	}
}

var paramLabels = [ParamsPerPeak]string{"center", "fwhm", "intensity"}

// ParamNames labels every entry of a parameter vector for shapes, e.g.
// "gaussian0.center", "gaussian0.fwhm", "lorentzian1.intensity".
func ParamNames(shapes []Shape) []string {
	out := make([]string, 0, ParamsPerPeak*len(shapes))
	for i, s := range shapes {
		for _, label := range paramLabels {
			out = append(out, fmt.Sprintf("%s%d.%s", s, i, label))
		}
	}
	return out
}
