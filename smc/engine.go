// Package smc wires the per-generation data flow of an ABC-SMC sampler:
// simulate every particle, weight, resample, summarize.
//
// The tolerance schedule, the weighting rule and the perturbation kernel
// belong to the caller; [Engine.Step] runs exactly one generation with the
// [Weigher] it is given. All randomness comes from one shared *rng.Source, in
// a fixed order: synthesis noise for particles 0..N-1, then N resampling
// draws.
package smc

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-abc/resample"
	"github.com/cwbudde/algo-abc/rng"
	"github.com/cwbudde/algo-abc/spectrum"
	"github.com/cwbudde/algo-abc/stats/population"
	"gonum.org/v1/gonum/mat"
)

var (
	errNilSimulator  = errors.New("smc: nil simulator")
	errNilSource     = errors.New("smc: nil random source")
	errNilWeigher    = errors.New("smc: nil weigher")
	errNilPopulation = errors.New("smc: population is nil or empty")
)

// Simulator produces a spectrum for one parameter vector.
// *spectrum.Synthesizer satisfies it.
type Simulator interface {
	Synthesize(params []float64, withNoise bool, src spectrum.Normal) ([]float64, error)
}

// Weigher turns a population and its simulated spectra into one weight per
// particle. Weights should be normalized; the engine does not rescale them.
type Weigher interface {
	Weights(pop *mat.Dense, sims [][]float64) ([]float64, error)
}

// WeigherFunc adapts a function to the Weigher interface.
type WeigherFunc func(pop *mat.Dense, sims [][]float64) ([]float64, error)

// Weights calls f(pop, sims).
func (f WeigherFunc) Weights(pop *mat.Dense, sims [][]float64) ([]float64, error) {
	return f(pop, sims)
}

// Generation is the outcome of one Step.
type Generation struct {
	Index      int                // zero-based generation counter of the engine
	Population *mat.Dense         // resampled population, owned by the caller
	Weights    []float64          // weights of the resampled particles
	Indices    []int              // survivor indices into the input population
	Summary    population.Summary // per-parameter mean and std of Population
	ESS        float64            // effective sample size of the pre-resampling weights
}

// Engine runs generations against one simulator and one random stream.
// It is not safe for concurrent use.
type Engine struct {
	sim        Simulator
	src        *rng.Source
	logger     *slog.Logger
	withNoise  bool
	generation int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for per-generation debug records.
// A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithNoise makes every simulation add standard normal noise.
func WithNoise(on bool) Option {
	return func(e *Engine) {
		e.withNoise = on
	}
}

// New returns an Engine. src is shared with any other stochastic component
// of the run and must not be nil.
func New(sim Simulator, src *rng.Source, opts ...Option) (*Engine, error) {
	if sim == nil {
		return nil, errNilSimulator
	}
	if src == nil {
		return nil, errNilSource
	}

	e := &Engine{
		sim:    sim,
		src:    src,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e, nil
}

// Generations returns the number of completed steps.
func (e *Engine) Generations() int { return e.generation }

// Step runs one generation on pop. pop is read, never modified; the
// returned Generation holds a new population of the same size.
func (e *Engine) Step(pop *mat.Dense, w Weigher) (*Generation, error) {
	if w == nil {
		return nil, errNilWeigher
	}
	if pop == nil || pop.IsEmpty() {
		return nil, errNilPopulation
	}
	n, _ := pop.Dims()

	sims := make([][]float64, n)
	for i := range sims {
		sim, err := e.sim.Synthesize(pop.RawRowView(i), e.withNoise, e.src)
		if err != nil {
			return nil, fmt.Errorf("smc: synthesize particle %d: %w", i, err)
		}
		sims[i] = sim
	}

	weights, err := w.Weights(pop, sims)
	if err != nil {
		return nil, fmt.Errorf("smc: weights: %w", err)
	}
	if len(weights) != n {
		return nil, fmt.Errorf("smc: weigher returned %d weights for %d particles", len(weights), n)
	}

	idx, err := resample.Indices(weights, n, e.src)
	if err != nil {
		return nil, fmt.Errorf("smc: resample indices: %w", err)
	}
	next, err := resample.Rows(pop, idx)
	if err != nil {
		return nil, fmt.Errorf("smc: resample population: %w", err)
	}
	nextWeights, err := resample.Vector(weights, idx)
	if err != nil {
		return nil, fmt.Errorf("smc: resample weights: %w", err)
	}

	summary, err := population.Summarize(next)
	if err != nil {
		return nil, fmt.Errorf("smc: summarize: %w", err)
	}

	g := &Generation{
		Index:      e.generation,
		Population: next,
		Weights:    nextWeights,
		Indices:    idx,
		Summary:    summary,
		ESS:        resample.EffectiveSampleSize(weights),
	}
	e.generation++

	e.logger.Debug("generation complete",
		slog.Int("generation", g.Index),
		slog.Int("particles", n),
		slog.Float64("ess", g.ESS),
		slog.Any("summary", g.Summary),
	)
	return g, nil
}
