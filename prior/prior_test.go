package prior

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-abc/internal/testutil"
	"github.com/cwbudde/algo-abc/rng"
	"github.com/cwbudde/algo-abc/stats/population"
	"gonum.org/v1/gonum/mat"
)

func TestNewValidation(t *testing.T) {
	src := rng.New(1)
	tests := []struct {
		name    string
		means   []float64
		stddevs []float64
	}{
		{name: "empty"},
		{name: "length mismatch", means: []float64{0, 1}, stddevs: []float64{1}},
		{name: "zero stddev", means: []float64{0}, stddevs: []float64{0}},
		{name: "nan stddev", means: []float64{0}, stddevs: []float64{math.NaN()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.means, tt.stddevs, src); err == nil {
				t.Fatal("expected error")
			}
		})
	}
	if _, err := New([]float64{0}, []float64{1}, nil); err == nil {
		t.Fatal("expected error for nil source")
	}
}

func TestSampleMoments(t *testing.T) {
	means := []float64{0.3, 0.05, 2}
	stds := []float64{0.1, 0.01, 0.5}
	p, err := New(means, stds, rng.New(11))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	pop, err := p.Sample(20000)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	r, c := pop.Dims()
	if r != 20000 || c != 3 {
		t.Fatalf("dims = %dx%d, want 20000x3", r, c)
	}

	s, err := population.Summarize(pop)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	for j := range means {
		if math.Abs(s[j].Mean-means[j]) > 0.03*stds[j]*3 {
			t.Fatalf("param %d: mean %v, want ~%v", j, s[j].Mean, means[j])
		}
		if math.Abs(s[j].StdDev-stds[j])/stds[j] > 0.03 {
			t.Fatalf("param %d: std %v, want ~%v", j, s[j].StdDev, stds[j])
		}
	}
}

func TestSampleDeterministic(t *testing.T) {
	a, _ := New([]float64{0, 1}, []float64{1, 2}, rng.New(5))
	b, _ := New([]float64{0, 1}, []float64{1, 2}, rng.New(5))

	pa, _ := a.Sample(16)
	pb, _ := b.Sample(16)
	if !mat.Equal(pa, pb) {
		t.Fatal("same seed produced different populations")
	}

	if _, err := a.Sample(0); err == nil {
		t.Fatal("expected error for zero samples")
	}
}

func TestSampleSharesStream(t *testing.T) {
	src := rng.New(8)
	p, _ := New([]float64{0}, []float64{1}, src)
	first, _ := p.Sample(4)
	second, _ := p.Sample(4)
	if mat.Equal(first, second) {
		t.Fatal("consecutive samples must advance the shared stream")
	}
}

func TestDensity(t *testing.T) {
	p, err := New([]float64{0, 1}, []float64{1, 2}, rng.New(1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got, err := p.Density([]float64{0, 1})
	if err != nil {
		t.Fatalf("Density: %v", err)
	}
	want := 1 / math.Sqrt(2*math.Pi) * 1 / (2 * math.Sqrt(2*math.Pi))
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("Density = %v, want %v", got, want)
	}

	lp, _ := p.LogDensity([]float64{0, 1})
	if math.Abs(lp-math.Log(want)) > 1e-12 {
		t.Fatalf("LogDensity = %v, want %v", lp, math.Log(want))
	}

	if _, err := p.Density([]float64{0}); err == nil {
		t.Fatal("expected error for short theta")
	}
	testutil.RequireSliceNearlyEqual(t, p.Means(), []float64{0, 1}, 0)
	if p.Dim() != 2 {
		t.Fatalf("Dim = %d, want 2", p.Dim())
	}
}
