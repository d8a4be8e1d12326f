// Command abcfit fits a peak mixture to a spectrum with ABC-SMC.
//
// Usage:
//
//	abcfit [flags]
//
// Without -observed the observation is synthesized from the truth entries of
// the configuration.
//
// Examples:
//
//	abcfit
//	abcfit -config run.yaml -observed spectrum.csv
//	abcfit -summary generations.csv -v
//	abcfit -dump-config run.yaml
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-abc/config"
	"github.com/cwbudde/algo-abc/internal/dataio"
	"github.com/cwbudde/algo-abc/peak"
	"github.com/cwbudde/algo-abc/prior"
	"github.com/cwbudde/algo-abc/rng"
	"github.com/cwbudde/algo-abc/smc"
	"github.com/cwbudde/algo-abc/spectrum"
	"github.com/cwbudde/algo-abc/stats/profile"
	"github.com/cwbudde/algo-abc/stats/residual"
)

func main() {
	configPath := flag.String("config", "", "YAML run configuration (defaults are embedded)")
	observedPath := flag.String("observed", "", "observed spectrum CSV with energy,intensity columns")
	summaryPath := flag.String("summary", "", "write per-generation summaries to this CSV file")
	syntheticPath := flag.String("write-observed", "", "write the synthesized observation to this CSV file")
	dumpPath := flag.String("dump-config", "", "write the effective configuration to this YAML file and exit")
	verbose := flag.Bool("v", false, "log every generation")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: abcfit [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Fits a mixture of Gaussian and Lorentzian peaks to a spectrum with ABC-SMC.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  abcfit\n")
		fmt.Fprintf(os.Stderr, "  abcfit -config run.yaml -observed spectrum.csv\n")
		fmt.Fprintf(os.Stderr, "  abcfit -summary generations.csv -v\n")
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *dumpPath != "" {
		if err := cfg.WriteYAML(*dumpPath); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	opts := runOptions{
		observedPath:  *observedPath,
		syntheticPath: *syntheticPath,
		summaryPath:   *summaryPath,
	}
	if err := run(cfg, opts, logger, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type runOptions struct {
	observedPath  string
	syntheticPath string
	summaryPath   string
}

func run(cfg *config.Config, opts runOptions, logger *slog.Logger, out io.Writer) error {
	shapes, err := cfg.Shapes()
	if err != nil {
		return err
	}

	src := rng.New(cfg.Seed)
	var synthOpts []spectrum.Option
	if cfg.Noise {
		synthOpts = append(synthOpts, spectrum.WithNoiseScale(cfg.NoiseScale))
	}

	energy, intensity, err := observation(cfg, opts, shapes, synthOpts, src)
	if err != nil {
		return err
	}
	observed, err := profile.Calculate(energy, intensity)
	if err != nil {
		return err
	}
	logger.Info("observation ready", slog.Int("peaks", len(shapes)), slog.Any("profile", observed))

	model, err := spectrum.NewModel(energy, intensity, shapes, synthOpts...)
	if err != nil {
		return err
	}

	means, stddevs := cfg.PriorMoments()
	pr, err := prior.New(means, stddevs, src)
	if err != nil {
		return err
	}
	pop, err := pr.Sample(cfg.Particles)
	if err != nil {
		return err
	}

	engine, err := smc.New(model.Synthesizer(), src, smc.WithLogger(logger), smc.WithNoise(cfg.Noise))
	if err != nil {
		return err
	}

	names := peak.ParamNames(shapes)
	var records []dataio.SummaryRecord
	schedule := smc.Schedule{Tolerances: cfg.Tolerances, Perturbation: cfg.Perturbation}
	gens, err := engine.Run(pop, model, pr, schedule, func(g *smc.Generation, tol float64) {
		records = append(records, dataio.SummaryRecords(g.Index, tol, g.ESS, names, g.Summary)...)
		logger.Info("generation", slog.Int("index", g.Index), slog.Float64("tolerance", tol), slog.Float64("ess", g.ESS))
	})
	if err != nil {
		return err
	}

	if opts.summaryPath != "" {
		if err := dataio.WriteSummariesFile(opts.summaryPath, records); err != nil {
			return err
		}
	}

	final := gens[len(gens)-1]
	fitted, err := model.Calculate(final.Summary.Means())
	if err != nil {
		return err
	}
	misfit, err := residual.Between(fitted, intensity)
	if err != nil {
		return err
	}
	logger.Info("fit complete", slog.Int("generations", len(gens)), slog.Any("residual", misfit))

	if err := printSummaries(out, names, gens, cfg.Tolerances); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "\nObserved: %s\nResidual: rms %.4g, bias %.4g, max |r| %.4g, runs z %.2f\n",
		observed, misfit.RMS, misfit.Bias, misfit.MaxAbs, misfit.RunsZ)
	return err
}

// observation reads the observed spectrum, or synthesizes one from the
// configured truth when no file is given.
func observation(cfg *config.Config, opts runOptions, shapes []peak.Shape, synthOpts []spectrum.Option, src *rng.Source) (energy, intensity []float64, err error) {
	if opts.observedPath != "" {
		return dataio.ReadSpectrumFile(opts.observedPath)
	}

	truth, ok := cfg.Truth()
	if !ok {
		return nil, nil, fmt.Errorf("no -observed file and the configuration has no truth for every peak")
	}
	energy, err = spectrum.Grid(cfg.GridSize)
	if err != nil {
		return nil, nil, err
	}
	synth, err := spectrum.NewSynthesizer(energy, shapes, synthOpts...)
	if err != nil {
		return nil, nil, err
	}
	intensity, err = synth.Synthesize(truth, cfg.Noise, src)
	if err != nil {
		return nil, nil, err
	}

	if opts.syntheticPath != "" {
		f, err := os.Create(opts.syntheticPath)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()
		if err := dataio.WriteSpectrum(f, energy, intensity); err != nil {
			return nil, nil, err
		}
	}
	return energy, intensity, nil
}

func printSummaries(out io.Writer, names []string, gens []*smc.Generation, tolerances []float64) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Gen\tTolerance\tESS")
	for _, n := range names {
		fmt.Fprintf(tw, "\t%s", n)
	}
	fmt.Fprintln(tw)

	for i, g := range gens {
		fmt.Fprintf(tw, "%d\t%.4g\t%.1f", g.Index, tolerances[i], g.ESS)
		for _, cs := range g.Summary {
			fmt.Fprintf(tw, "\t%.4f(%.4f)", cs.Mean, cs.StdDev)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
