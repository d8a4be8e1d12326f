// Package config loads sampler run settings from YAML.
//
// Embedded defaults are decoded first and a user file, if any, is decoded over
// them, so a user file only needs the fields it changes.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/cwbudde/algo-abc/peak"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all run parameters.
type Config struct {
	Seed         uint64       `yaml:"seed"`
	Particles    int          `yaml:"particles"`
	GridSize     int          `yaml:"grid_size"`    // used when the observation is synthesized
	Noise        bool         `yaml:"noise"`        // add noise to every simulation
	NoiseScale   float64      `yaml:"noise_scale"`  // stddev of the simulation noise
	Tolerances   []float64    `yaml:"tolerances"`   // one generation per entry
	Perturbation float64      `yaml:"perturbation"` // kernel stddev / population std
	Peaks        []PeakConfig `yaml:"peaks"`
}

var paramNames = [peak.ParamsPerPeak]string{"center", "fwhm", "intensity"}

// Normal is a normal prior on one parameter.
type Normal struct {
	Mean   float64 `yaml:"mean"`
	StdDev float64 `yaml:"stddev"`
}

// TruthConfig holds known peak parameters for synthetic observations.
type TruthConfig struct {
	Center    float64 `yaml:"center"`
	FWHM      float64 `yaml:"fwhm"`
	Intensity float64 `yaml:"intensity"`
}

// PeakConfig describes one peak of the model.
type PeakConfig struct {
	Shape     string       `yaml:"shape"`
	Center    Normal       `yaml:"center"`
	FWHM      Normal       `yaml:"fwhm"`
	Intensity Normal       `yaml:"intensity"`
	Truth     *TruthConfig `yaml:"truth,omitempty"`
}

// Default returns the embedded default configuration.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	return cfg, nil
}

// Parse decodes data over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the file at path over the defaults. An empty path yields the
// validated defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		cfg, err := Default()
		if err != nil {
			return nil, err
		}
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Particles <= 0 {
		return fmt.Errorf("config: particles must be > 0: %d", c.Particles)
	}
	if c.GridSize <= 0 {
		return fmt.Errorf("config: grid_size must be > 0: %d", c.GridSize)
	}
	if c.Noise && !(c.NoiseScale > 0) {
		return fmt.Errorf("config: noise_scale must be > 0 when noise is on: %f", c.NoiseScale)
	}
	if len(c.Tolerances) == 0 {
		return errors.New("config: at least one tolerance is required")
	}
	for i, eps := range c.Tolerances {
		if !(eps > 0) {
			return fmt.Errorf("config: tolerance %d must be > 0: %f", i, eps)
		}
	}
	if c.Perturbation < 0 {
		return fmt.Errorf("config: perturbation must be >= 0: %f", c.Perturbation)
	}
	if len(c.Peaks) == 0 {
		return errors.New("config: at least one peak is required")
	}
	for i, p := range c.Peaks {
		if _, err := peak.ParseShape(p.Shape); err != nil {
			return fmt.Errorf("config: peak %d: %w", i, err)
		}
		for j, n := range []Normal{p.Center, p.FWHM, p.Intensity} {
			if !(n.StdDev > 0) {
				return fmt.Errorf("config: peak %d %s stddev must be > 0: %f", i, paramNames[j], n.StdDev)
			}
		}
	}
	return nil
}

// Shapes returns the peak list.
func (c *Config) Shapes() ([]peak.Shape, error) {
	out := make([]peak.Shape, len(c.Peaks))
	for i, p := range c.Peaks {
		s, err := peak.ParseShape(p.Shape)
		if err != nil {
			return nil, fmt.Errorf("config: peak %d: %w", i, err)
		}
		out[i] = s
	}
	return out, nil
}

// PriorMoments returns the flattened prior means and standard deviations in
// parameter vector order.
func (c *Config) PriorMoments() (means, stddevs []float64) {
	means = make([]float64, 0, peak.ParamsPerPeak*len(c.Peaks))
	stddevs = make([]float64, 0, peak.ParamsPerPeak*len(c.Peaks))
	for _, p := range c.Peaks {
		for _, n := range []Normal{p.Center, p.FWHM, p.Intensity} {
			means = append(means, n.Mean)
			stddevs = append(stddevs, n.StdDev)
		}
	}
	return means, stddevs
}

// Truth returns the flattened truth parameter vector. ok is false unless
// every peak carries a truth entry.
func (c *Config) Truth() (params []float64, ok bool) {
	params = make([]float64, 0, peak.ParamsPerPeak*len(c.Peaks))
	for _, p := range c.Peaks {
		if p.Truth == nil {
			return nil, false
		}
		params = append(params, p.Truth.Center, p.Truth.FWHM, p.Truth.Intensity)
	}
	return params, true
}
