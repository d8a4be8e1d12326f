package testutil

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t testing.TB, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if diff := math.Abs(got[i] - want[i]); diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireMatrixNearlyEqual fails t if got and want differ in shape or any
// element pair exceeds eps.
func RequireMatrixNearlyEqual(t testing.TB, got, want mat.Matrix, eps float64) {
	t.Helper()
	gr, gc := got.Dims()
	wr, wc := want.Dims()
	if gr != wr || gc != wc {
		t.Fatalf("shape mismatch: got %dx%d, want %dx%d", gr, gc, wr, wc)
	}
	if !mat.EqualApprox(got, want, eps) {
		t.Fatalf("matrices differ beyond %v:\ngot\n%v\nwant\n%v", eps, mat.Formatted(got), mat.Formatted(want))
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t testing.TB, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireWeights fails t unless w is a nonnegative vector summing to 1
// within eps.
func RequireWeights(t testing.TB, w []float64, eps float64) {
	t.Helper()
	for i, v := range w {
		if v < 0 || math.IsNaN(v) {
			t.Fatalf("index %d: invalid weight %v", i, v)
		}
	}
	if sum := floats.Sum(w); math.Abs(sum-1) > eps {
		t.Fatalf("weights sum to %v, want 1", sum)
	}
}

// RequireIndicesInRange fails t if any index is outside [0, n).
func RequireIndicesInRange(t testing.TB, idx []int, n int) {
	t.Helper()
	for i, k := range idx {
		if k < 0 || k >= n {
			t.Fatalf("index %d: value %d outside [0,%d)", i, k, n)
		}
	}
}
