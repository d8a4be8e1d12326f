package residual

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-abc/rng"
)

const tolerance = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestCalculateEmpty(t *testing.T) {
	if s := Calculate(nil); s != (Stats{}) {
		t.Fatalf("expected zero Stats, got %+v", s)
	}
}

func TestCalculateAlternating(t *testing.T) {
	s := Calculate([]float64{1, -1, 1, -1})

	if s.Points != 4 || s.Bias != 0 || s.RMS != 1 || s.MaxAbs != 1 || s.MaxAbsPos != 0 {
		t.Fatalf("unexpected basics: %+v", s)
	}
	if !almostEqual(s.Variance, 1, tolerance) || !almostEqual(s.Skewness, 0, tolerance) {
		t.Fatalf("unexpected moments: %+v", s)
	}
	if !almostEqual(s.Kurtosis, -2, tolerance) {
		t.Fatalf("Kurtosis = %g, want -2", s.Kurtosis)
	}
	if s.Runs != 4 {
		t.Fatalf("Runs = %d, want 4", s.Runs)
	}
	if want := 1 / math.Sqrt(2.0/3.0); !almostEqual(s.RunsZ, want, 1e-12) {
		t.Fatalf("RunsZ = %g, want %g", s.RunsZ, want)
	}
}

func TestCalculateSystematic(t *testing.T) {
	s := Calculate([]float64{1, 1, -1, -1})
	if s.Runs != 2 {
		t.Fatalf("Runs = %d, want 2", s.Runs)
	}
	if want := -1 / math.Sqrt(2.0/3.0); !almostEqual(s.RunsZ, want, 1e-12) {
		t.Fatalf("RunsZ = %g, want %g", s.RunsZ, want)
	}
}

func TestCalculateMoments(t *testing.T) {
	s := Calculate([]float64{1, 2, 3, 4, 5})
	if !almostEqual(s.Bias, 3, tolerance) {
		t.Fatalf("Bias = %g, want 3", s.Bias)
	}
	if !almostEqual(s.Variance, 2, tolerance) {
		t.Fatalf("Variance = %g, want 2", s.Variance)
	}
	if !almostEqual(s.Skewness, 0, tolerance) {
		t.Fatalf("Skewness = %g, want 0", s.Skewness)
	}
	if !almostEqual(s.Kurtosis, -1.3, 1e-12) {
		t.Fatalf("Kurtosis = %g, want -1.3", s.Kurtosis)
	}
	if s.Runs != 1 || s.RunsZ != 0 {
		t.Fatalf("one-signed residual: runs %d, z %g", s.Runs, s.RunsZ)
	}
	if s.MaxAbs != 5 || s.MaxAbsPos != 4 {
		t.Fatalf("MaxAbs = %g at %d", s.MaxAbs, s.MaxAbsPos)
	}
}

func TestCalculateSkipsZerosInRuns(t *testing.T) {
	s := Calculate([]float64{1, 0, 1, 0, -1})
	if s.Runs != 2 {
		t.Fatalf("Runs = %d, want 2", s.Runs)
	}
}

func TestCalculateWhiteNoise(t *testing.T) {
	src := rng.New(99)
	r := make([]float64, 20000)
	for i := range r {
		r[i] = src.NormFloat64()
	}

	s := Calculate(r)
	if math.Abs(s.Bias) > 0.05 || math.Abs(s.Variance-1) > 0.05 {
		t.Fatalf("unexpected moments: bias %g, variance %g", s.Bias, s.Variance)
	}
	if math.Abs(s.Skewness) > 0.1 || math.Abs(s.Kurtosis) > 0.2 {
		t.Fatalf("unexpected shape: skew %g, kurtosis %g", s.Skewness, s.Kurtosis)
	}
	if math.Abs(s.RunsZ) > 5 {
		t.Fatalf("RunsZ = %g for white noise", s.RunsZ)
	}
}

func TestBetween(t *testing.T) {
	s, err := Between([]float64{2, 2, 2}, []float64{1, 2, 3})
	if err != nil {
		t.Fatalf("Between: %v", err)
	}
	if s.Bias != 0 || s.Runs != 2 || s.MaxAbs != 1 {
		t.Fatalf("unexpected stats: %+v", s)
	}

	if _, err := Between([]float64{1}, []float64{1, 2}); err == nil {
		t.Fatal("expected length mismatch error")
	}
}
