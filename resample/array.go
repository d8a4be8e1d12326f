package resample

import "gonum.org/v1/gonum/mat"

// Vector returns out with out[i] = v[idx[i]] and len(out) == len(idx).
// Any index outside [0, len(v)) yields an *IndexError; v is not modified.
func Vector(v []float64, idx []int) ([]float64, error) {
	if err := checkIndices(idx, len(v)); err != nil {
		return nil, err
	}

	out := make([]float64, len(idx))
	for i, k := range idx {
		out[i] = v[k]
	}
	return out, nil
}

// Rows returns a new matrix whose row i is row idx[i] of m.
//
// The result has len(idx) rows and the column count of m. Any index outside
// the row range yields an *IndexError; m is not modified.
func Rows(m *mat.Dense, idx []int) (*mat.Dense, error) {
	if m == nil {
		return nil, errNilMatrix
	}
	if len(idx) == 0 {
		return nil, ErrEmptyIndices
	}

	r, c := m.Dims()
	if err := checkIndices(idx, r); err != nil {
		return nil, err
	}

	out := mat.NewDense(len(idx), c, nil)
	for i, k := range idx {
		copy(out.RawRowView(i), m.RawRowView(k))
	}
	return out, nil
}
