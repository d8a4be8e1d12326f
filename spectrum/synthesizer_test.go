package spectrum

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-abc/core"
	"github.com/cwbudde/algo-abc/internal/testutil"
	"github.com/cwbudde/algo-abc/peak"
	"github.com/cwbudde/algo-abc/rng"
)

func TestGrid(t *testing.T) {
	g, err := Grid(5)
	if err != nil {
		t.Fatalf("Grid: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, g, []float64{0, 0.25, 0.5, 0.75, 1}, 1e-15)

	one, err := Grid(1)
	if err != nil {
		t.Fatalf("Grid(1): %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, one, []float64{1}, 0)

	for _, n := range []int{0, -3} {
		if _, err := Grid(n); err == nil {
			t.Fatalf("Grid(%d): expected error", n)
		}
	}
}

func TestSynthesizeSinglePeakMatchesPeakModel(t *testing.T) {
	grid, _ := Grid(64)
	params := []float64{0.4, 0.1, 2}

	got, err := Synthesize(params, []peak.Shape{peak.Gaussian}, 64, false, nil)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	want := peak.GaussianProfile(grid, 0.4, 0.1, 2)
	testutil.RequireSliceNearlyEqual(t, got, want, 0)
}

func TestSynthesizeLinearity(t *testing.T) {
	const n = 128
	params := []float64{0.3, 0.05, 1.5, 0.65, 0.12, 0.8}
	peaks := []peak.Shape{peak.Gaussian, peak.Lorentzian}

	both, err := Synthesize(params, peaks, n, false, nil)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	first, err := Synthesize(params[:3], peaks[:1], n, false, nil)
	if err != nil {
		t.Fatalf("Synthesize first: %v", err)
	}
	second, err := Synthesize(params[3:], peaks[1:], n, false, nil)
	if err != nil {
		t.Fatalf("Synthesize second: %v", err)
	}

	sum := make([]float64, n)
	for i := range sum {
		sum[i] = first[i] + second[i]
	}
	testutil.RequireSliceNearlyEqual(t, both, sum, 1e-12)
	testutil.RequireFinite(t, both)
}

func TestSynthesizeUnknownShapeResetsSpectrum(t *testing.T) {
	const n = 32
	g := []float64{0.2, 0.05, 1}
	l := []float64{0.7, 0.1, 1}

	t.Run("trailing", func(t *testing.T) {
		params := append(append([]float64{}, g...), 0.5, 0.1, 1)
		got, err := Synthesize(params, []peak.Shape{peak.Gaussian, peak.Shape(42)}, n, false, nil)
		if err != nil {
			t.Fatalf("Synthesize: %v", err)
		}
		testutil.RequireSliceNearlyEqual(t, got, make([]float64, n), 0)
	})

	t.Run("middle", func(t *testing.T) {
		params := append(append(append([]float64{}, g...), 0.5, 0.1, 1), l...)
		got, err := Synthesize(params, []peak.Shape{peak.Gaussian, peak.Shape(42), peak.Lorentzian}, n, false, nil)
		if err != nil {
			t.Fatalf("Synthesize: %v", err)
		}
		want, _ := Synthesize(l, []peak.Shape{peak.Lorentzian}, n, false, nil)
		testutil.RequireSliceNearlyEqual(t, got, want, 0)
	})
}

func TestSynthesizeShapeMismatch(t *testing.T) {
	tests := []struct {
		name   string
		params []float64
		peaks  []peak.Shape
	}{
		{name: "not multiple of three", params: []float64{1, 2, 3, 4}, peaks: []peak.Shape{peak.Gaussian}},
		{name: "too few", params: []float64{1, 2, 3}, peaks: []peak.Shape{peak.Gaussian, peak.Gaussian}},
		{name: "too many", params: []float64{1, 2, 3, 4, 5, 6}, peaks: []peak.Shape{peak.Lorentzian}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Synthesize(tt.params, tt.peaks, 8, false, nil)
			if !errors.Is(err, ErrShapeMismatch) {
				t.Fatalf("err = %v, want ErrShapeMismatch", err)
			}
			var sm *ShapeMismatchError
			if !errors.As(err, &sm) || sm.Params != len(tt.params) || sm.Peaks != len(tt.peaks) {
				t.Fatalf("unexpected error details: %#v", err)
			}
		})
	}
}

func TestSynthesizeNoise(t *testing.T) {
	const n = 16
	params := []float64{0.5, 0.2, 1}
	peaks := []peak.Shape{peak.Gaussian}
	clean, _ := Synthesize(params, peaks, n, false, nil)

	t.Run("constant", func(t *testing.T) {
		got, err := Synthesize(params, peaks, n, true, testutil.ConstantNormal(0.5))
		if err != nil {
			t.Fatalf("Synthesize: %v", err)
		}
		for i := range got {
			if !core.NearlyEqual(got[i], clean[i]+0.5, 1e-12) {
				t.Fatalf("index %d: got %v, want %v", i, got[i], clean[i]+0.5)
			}
		}
	})

	t.Run("shared stream order", func(t *testing.T) {
		src := rng.New(4444)
		got, err := Synthesize(params, peaks, n, true, src)
		if err != nil {
			t.Fatalf("Synthesize: %v", err)
		}

		ref := rng.New(4444)
		for i := range got {
			want := clean[i] + ref.NormFloat64()
			if !core.NearlyEqual(got[i], want, 1e-12) {
				t.Fatalf("index %d: got %v, want %v", i, got[i], want)
			}
		}
		if src.Uint64() != ref.Uint64() {
			t.Fatal("noise must consume the shared stream exactly once per grid point")
		}
	})

	t.Run("reproducible", func(t *testing.T) {
		a, _ := Synthesize(params, peaks, n, true, rng.New(9))
		b, _ := Synthesize(params, peaks, n, true, rng.New(9))
		testutil.RequireSliceNearlyEqual(t, a, b, 0)
	})

	t.Run("nil source", func(t *testing.T) {
		if _, err := Synthesize(params, peaks, n, true, nil); !errors.Is(err, ErrNilSource) {
			t.Fatalf("err = %v, want ErrNilSource", err)
		}
	})
}

func TestSynthesizerNoiseScale(t *testing.T) {
	grid, _ := Grid(8)
	s, err := NewSynthesizer(grid, []peak.Shape{peak.Lorentzian}, WithNoiseScale(0.1), WithNoiseScale(-1))
	if err != nil {
		t.Fatalf("NewSynthesizer: %v", err)
	}
	params := []float64{0.5, 0.3, 1}
	clean, _ := s.Synthesize(params, false, nil)
	noisy, _ := s.Synthesize(params, true, testutil.ConstantNormal(1))
	for i := range clean {
		if !core.NearlyEqual(noisy[i]-clean[i], 0.1, 1e-9) {
			t.Fatalf("index %d: noise offset %v, want 0.1", i, noisy[i]-clean[i])
		}
	}
}

func TestSynthesizerSetPeakList(t *testing.T) {
	grid, _ := Grid(16)
	peaks := []peak.Shape{peak.Gaussian}
	s, err := NewSynthesizer(grid, peaks)
	if err != nil {
		t.Fatalf("NewSynthesizer: %v", err)
	}

	peaks[0] = peak.Lorentzian
	if s.Peaks()[0] != peak.Gaussian {
		t.Fatal("synthesizer must copy the peak list")
	}
	if s.NumParams() != 3 {
		t.Fatalf("NumParams = %d, want 3", s.NumParams())
	}

	s.SetPeakList([]peak.Shape{peak.Gaussian, peak.Lorentzian})
	if s.NumParams() != 6 {
		t.Fatalf("NumParams = %d, want 6", s.NumParams())
	}
	if _, err := s.Synthesize([]float64{0.5, 0.1, 1}, false, nil); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("err = %v, want ErrShapeMismatch after SetPeakList", err)
	}
}

func TestSynthesizeIntoReusesBuffer(t *testing.T) {
	grid, _ := Grid(10)
	s, _ := NewSynthesizer(grid, []peak.Shape{peak.Gaussian})
	dst := make([]float64, 10, 32)
	for i := range dst {
		dst[i] = 99
	}

	out, err := s.SynthesizeInto(dst, []float64{0.5, 0.2, 1}, false, nil)
	if err != nil {
		t.Fatalf("SynthesizeInto: %v", err)
	}
	if &out[0] != &dst[0] {
		t.Fatal("SynthesizeInto should reuse dst capacity")
	}
	want, _ := s.Synthesize([]float64{0.5, 0.2, 1}, false, nil)
	testutil.RequireSliceNearlyEqual(t, out, want, 0)
}

func TestNewSynthesizerEmptyGrid(t *testing.T) {
	if _, err := NewSynthesizer(nil, nil); err == nil {
		t.Fatal("expected error for empty grid")
	}
}
