package resample

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyWeights is returned when draws are requested from an empty weight vector.
	ErrEmptyWeights = errors.New("resample: weight vector is empty")

	// ErrNegativeDraws is returned for a negative draw count.
	ErrNegativeDraws = errors.New("resample: draw count must be >= 0")

	// ErrIndexOutOfRange is wrapped by every *IndexError.
	ErrIndexOutOfRange = errors.New("resample: index out of range")

	// ErrEmptyIndices is returned by Rows for an empty index array.
	ErrEmptyIndices = errors.New("resample: index array is empty")

	// ErrZeroWeightSum is returned by Normalize when the weights carry no mass.
	ErrZeroWeightSum = errors.New("resample: weights must have a positive finite sum")

	errNilMatrix = errors.New("resample: population matrix is nil")
)

// IndexError reports an index array entry outside [0, Len).
type IndexError struct {
	Position int // position within the index array
	Index    int // offending value
	Len      int // length of the resampled dimension
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("resample: index %d at position %d out of range [0,%d)", e.Index, e.Position, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

func checkIndices(idx []int, n int) error {
	for i, k := range idx {
		if k < 0 || k >= n {
			return &IndexError{Position: i, Index: k, Len: n}
		}
	}
	return nil
}
