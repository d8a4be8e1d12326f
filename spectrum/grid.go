package spectrum

import "gonum.org/v1/gonum/floats"

// Grid returns n evenly spaced energies from 0 to 1 inclusive.
// A single-point grid is [1].
func Grid(n int) ([]float64, error) {
	if err := validateGridSize(n); err != nil {
		return nil, err
	}
	if n == 1 {
		return []float64{1}, nil
	}
	return floats.Span(make([]float64, n), 0, 1), nil
}
