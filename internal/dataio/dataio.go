// Package dataio reads and writes spectra and generation summaries as CSV.
package dataio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/algo-abc/stats/population"
	"github.com/gocarina/gocsv"
)

var errEmptySpectrum = errors.New("dataio: spectrum has no rows")

// SpectrumRecord is one row of a spectrum CSV file.
type SpectrumRecord struct {
	Energy    float64 `csv:"energy"`
	Intensity float64 `csv:"intensity"`
}

// SummaryRecord is one parameter of one generation summary.
type SummaryRecord struct {
	Generation int     `csv:"generation"`
	Tolerance  float64 `csv:"tolerance"`
	Parameter  string  `csv:"parameter"`
	Mean       float64 `csv:"mean"`
	StdDev     float64 `csv:"stddev"`
	ESS        float64 `csv:"ess"`
}

// ReadSpectrum parses an energy,intensity CSV with a header row.
func ReadSpectrum(r io.Reader) (energy, intensity []float64, err error) {
	var records []SpectrumRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, nil, fmt.Errorf("dataio: parsing spectrum: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, errEmptySpectrum
	}

	energy = make([]float64, len(records))
	intensity = make([]float64, len(records))
	for i, rec := range records {
		energy[i] = rec.Energy
		intensity[i] = rec.Intensity
	}
	return energy, intensity, nil
}

// ReadSpectrumFile reads a spectrum CSV from path.
func ReadSpectrumFile(path string) (energy, intensity []float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("dataio: opening spectrum: %w", err)
	}
	defer f.Close()
	return ReadSpectrum(f)
}

// WriteSpectrum writes energy,intensity pairs with a header row.
func WriteSpectrum(w io.Writer, energy, intensity []float64) error {
	if len(energy) != len(intensity) {
		return fmt.Errorf("dataio: %d energies for %d intensities", len(energy), len(intensity))
	}
	records := make([]SpectrumRecord, len(energy))
	for i := range records {
		records[i] = SpectrumRecord{Energy: energy[i], Intensity: intensity[i]}
	}
	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("dataio: writing spectrum: %w", err)
	}
	return nil
}

// SummaryRecords flattens one generation summary into rows, one per
// parameter. names labels the parameters; missing labels fall back to pN.
func SummaryRecords(generation int, tolerance, ess float64, names []string, s population.Summary) []SummaryRecord {
	out := make([]SummaryRecord, len(s))
	for j, cs := range s {
		name := fmt.Sprintf("p%d", j)
		if j < len(names) {
			name = names[j]
		}
		out[j] = SummaryRecord{
			Generation: generation,
			Tolerance:  tolerance,
			Parameter:  name,
			Mean:       cs.Mean,
			StdDev:     cs.StdDev,
			ESS:        ess,
		}
	}
	return out
}

// WriteSummaries writes summary rows with a header row.
func WriteSummaries(w io.Writer, records []SummaryRecord) error {
	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("dataio: writing summaries: %w", err)
	}
	return nil
}

// WriteSummariesFile writes summary rows to path, replacing any existing file.
func WriteSummariesFile(path string, records []SummaryRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dataio: creating %s: %w", path, err)
	}
	if err := WriteSummaries(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
