package signal

import (
	"fmt"
	"strings"

	"github.com/arloliu/luxsig/culture"
	"github.com/arloliu/luxsig/errs"
	"github.com/arloliu/luxsig/labels"
)

// StatsFieldCount is the number of scalars in a Stats record.
const StatsFieldCount = 10

// Stats holds the derived statistics of a capture.
//
// The zero value is the empty record. Legacy and ELux files do not carry stats; the
// PlainText and Binary formats carry all ten fields.
type Stats struct {
	Average            float64
	Maximum            float64
	Minimum            float64
	FractalDimension   float64
	FractalVariance    float64
	ApproximateEntropy float64
	SampleEntropy      float64
	ShannonEntropy     float64
	EntropyBit         float64
	IdealEntropy       float64
}

// IsZero reports whether every field of s is zero.
func (s Stats) IsZero() bool {
	return s == Stats{}
}

// Values returns the fields of s in file order.
func (s Stats) Values() [StatsFieldCount]float64 {
	return [StatsFieldCount]float64{
		s.Average,
		s.Maximum,
		s.Minimum,
		s.FractalDimension,
		s.FractalVariance,
		s.ApproximateEntropy,
		s.SampleEntropy,
		s.ShannonEntropy,
		s.EntropyBit,
		s.IdealEntropy,
	}
}

// StatsFromValues builds a Stats record from values in file order.
func StatsFromValues(v [StatsFieldCount]float64) Stats {
	return Stats{
		Average:            v[0],
		Maximum:            v[1],
		Minimum:            v[2],
		FractalDimension:   v[3],
		FractalVariance:    v[4],
		ApproximateEntropy: v[5],
		SampleEntropy:      v[6],
		ShannonEntropy:     v[7],
		EntropyBit:         v[8],
		IdealEntropy:       v[9],
	}
}

// HeaderKeys returns the header label keys of the stats fields in file order.
func HeaderKeys() [StatsFieldCount]labels.Key {
	return [StatsFieldCount]labels.Key{
		labels.Average,
		labels.Maximum,
		labels.Minimum,
		labels.FractalDimension,
		labels.FractalVariance,
		labels.ApproximateEntropy,
		labels.SampleEntropy,
		labels.ShannonEntropy,
		labels.EntropyBit,
		labels.IdealEntropy,
	}
}

var summaryFields = [StatsFieldCount]struct {
	key     labels.Key
	pattern string
}{
	{labels.AverageIlluminance, "0.######"},
	{labels.MaximumIlluminance, "0.##"},
	{labels.MinimumIlluminance, "0.##"},
	{labels.FractalDimension, "0.########"},
	{labels.FractalVariance, "0.########"},
	{labels.ApproximateEntropy, "0.########"},
	{labels.SampleEntropy, "0.########"},
	{labels.ShannonEntropy, "0.########"},
	{labels.EntropyBit, "0.########"},
	{labels.IdealEntropy, "0.########"},
}

// SummaryLines renders s as "label: value" lines for the results report.
func (s Stats) SummaryLines(c culture.Culture, loc labels.Localizer) []string {
	values := s.Values()
	lines := make([]string, len(values))
	for i, f := range summaryFields {
		v, err := c.FormatNumber(values[i], f.pattern)
		if err != nil {
			panic(err) // patterns are constants
		}
		lines[i] = labels.Lookup(loc, f.key, c.Name) + ": " + v
	}

	return lines
}

// String renders s with the invariant culture and English labels.
func (s Stats) String() string {
	return strings.Join(s.SummaryLines(culture.Invariant(), nil), "\n")
}

// Spectrum is the frequency table written to a results report.
type Spectrum struct {
	Frequencies []float64 // Hz
	Magnitude   []float64 // RMS²
	Power       []float64 // dB
}

// Len returns the number of frequency bins.
func (s Spectrum) Len() int {
	return len(s.Frequencies)
}

// Validate checks that the three columns have equal length.
func (s Spectrum) Validate() error {
	if len(s.Magnitude) != len(s.Frequencies) || len(s.Power) != len(s.Frequencies) {
		return fmt.Errorf("%w: %d frequencies, %d magnitudes, %d powers",
			errs.ErrInvalidSpectrum, len(s.Frequencies), len(s.Magnitude), len(s.Power))
	}

	return nil
}
