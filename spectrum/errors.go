package spectrum

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch is wrapped by every *ShapeMismatchError.
	ErrShapeMismatch = errors.New("spectrum: parameter vector does not match peak list")

	// ErrNilSource is returned when noise is requested without a random source.
	ErrNilSource = errors.New("spectrum: noise requested with nil source")

	errLengthMismatch = errors.New("spectrum: energy and intensity must have same length")
)

// ShapeMismatchError reports a parameter vector whose length is not three
// times the number of peaks.
type ShapeMismatchError struct {
	Params int // length of the parameter vector
	Peaks  int // number of peaks in the list
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("spectrum: parameter vector length %d does not match %d peaks (want %d)",
		e.Params, e.Peaks, 3*e.Peaks)
}

func (e *ShapeMismatchError) Unwrap() error { return ErrShapeMismatch }

func validateGridSize(n int) error {
	if n <= 0 {
		return fmt.Errorf("spectrum: grid size must be > 0: %d", n)
	}
	return nil
}

func validateNoiseScale(scale float64) error {
	if !(scale > 0) {
		return fmt.Errorf("spectrum: noise scale must be > 0: %f", scale)
	}
	return nil
}
