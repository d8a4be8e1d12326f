package smc

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-abc/resample"
	"github.com/cwbudde/algo-abc/stats/population"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	errNoTolerances    = errors.New("smc: tolerance schedule is empty")
	errNonPositiveTol  = errors.New("smc: tolerance must be > 0")
	errNegativeScale   = errors.New("smc: perturbation scale must be >= 0")
	errNoFiniteWeights = errors.New("smc: no particle has a finite weight")
)

// Distancer scores one simulated spectrum against the observation.
// *spectrum.Model satisfies it.
type Distancer interface {
	Distance(simulated []float64) (float64, error)
}

// LogDensity evaluates the log prior density of a parameter vector.
// *prior.Prior satisfies it.
type LogDensity interface {
	LogDensity(theta []float64) (float64, error)
}

// KernelWeigher returns a Weigher that scores particle i with
//
//	w_i ∝ exp(-½(d_i/tolerance)²) · prior(θ_i)
//
// normalized to sum to 1. Weights are formed in log space and shifted by
// their maximum, so a tight tolerance does not underflow every particle.
// Particles with a non-finite distance or prior density get weight 0.
// pr may be nil, in which case the prior factor is omitted.
func KernelWeigher(dist Distancer, pr LogDensity, tolerance float64) Weigher {
	return WeigherFunc(func(pop *mat.Dense, sims [][]float64) ([]float64, error) {
		if !(tolerance > 0) {
			return nil, errNonPositiveTol
		}
		logw := make([]float64, len(sims))
		best := math.Inf(-1)
		for i, sim := range sims {
			d, err := dist.Distance(sim)
			if err != nil {
				return nil, fmt.Errorf("distance of particle %d: %w", i, err)
			}
			lw := -0.5 * (d / tolerance) * (d / tolerance)
			if pr != nil {
				lp, err := pr.LogDensity(pop.RawRowView(i))
				if err != nil {
					return nil, fmt.Errorf("prior of particle %d: %w", i, err)
				}
				lw += lp
			}
			if math.IsNaN(lw) || math.IsInf(lw, 1) {
				lw = math.Inf(-1)
			}
			logw[i] = lw
			best = max(best, lw)
		}
		if math.IsInf(best, -1) {
			return nil, errNoFiniteWeights
		}
		for i, lw := range logw {
			logw[i] = math.Exp(lw - best)
		}
		return resample.Normalize(logw)
	})
}

// Perturb returns a copy of pop with every entry of column j moved by a
// normal draw of standard deviation scale·std_j. Columns with zero spread
// are left in place. Draws are taken row-major from src.
func Perturb(pop *mat.Dense, scale float64, src rand.Source) (*mat.Dense, error) {
	if pop == nil || pop.IsEmpty() {
		return nil, errNilPopulation
	}
	if scale < 0 || math.IsNaN(scale) {
		return nil, errNegativeScale
	}
	if src == nil {
		return nil, errNilSource
	}
	summary, err := population.Summarize(pop)
	if err != nil {
		return nil, err
	}

	kernels := make([]distuv.Normal, len(summary))
	for j, cs := range summary {
		kernels[j] = distuv.Normal{Mu: 0, Sigma: scale * cs.StdDev, Src: src}
	}

	out := mat.DenseCopyOf(pop)
	n, _ := out.Dims()
	for i := range n {
		row := out.RawRowView(i)
		for j, k := range kernels {
			if k.Sigma == 0 {
				continue
			}
			row[j] += k.Rand()
		}
	}
	return out, nil
}

// Schedule drives a sequence of generations with shrinking tolerances.
type Schedule struct {
	Tolerances   []float64 // one generation per entry
	Perturbation float64   // kernel width relative to the column std; 0 disables
}

// Validate reports the first problem with the schedule.
func (s Schedule) Validate() error {
	if len(s.Tolerances) == 0 {
		return errNoTolerances
	}
	for i, tol := range s.Tolerances {
		if !(tol > 0) {
			return fmt.Errorf("%w: tolerances[%d] = %g", errNonPositiveTol, i, tol)
		}
	}
	if s.Perturbation < 0 || math.IsNaN(s.Perturbation) {
		return errNegativeScale
	}
	return nil
}

// Run steps once per tolerance, starting from pop. After each generation
// but the last the survivors are perturbed before the next step, using the
// engine's random stream. onGeneration, if not nil, sees every generation
// as it completes.
func (e *Engine) Run(pop *mat.Dense, dist Distancer, pr LogDensity, s Schedule, onGeneration func(*Generation, float64)) ([]*Generation, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	out := make([]*Generation, 0, len(s.Tolerances))
	current := pop
	for i, tol := range s.Tolerances {
		g, err := e.Step(current, KernelWeigher(dist, pr, tol))
		if err != nil {
			return out, fmt.Errorf("smc: tolerance %g: %w", tol, err)
		}
		out = append(out, g)
		if onGeneration != nil {
			onGeneration(g, tol)
		}
		if i == len(s.Tolerances)-1 {
			break
		}

		current = g.Population
		if s.Perturbation > 0 {
			current, err = Perturb(g.Population, s.Perturbation, e.src)
			if err != nil {
				return out, fmt.Errorf("smc: perturb: %w", err)
			}
		}
	}
	return out, nil
}
