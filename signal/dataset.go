// Package signal holds the in-memory model of a multi-series light-sensor capture.
//
// A Dataset is a dense matrix addressed as Series[seriesIndex][sampleIndex] plus the
// timing metadata needed to derive per-sample timestamps. Stats carries the derived
// scalars computed by an external analysis engine, and Spectrum the frequency table
// written to ".results" reports.
package signal

import (
	"fmt"
	"math"
	"time"

	"github.com/arloliu/luxsig/errs"
	"github.com/arloliu/luxsig/internal/collision"
	"github.com/arloliu/luxsig/internal/hash"
)

// Dataset is a parsed or to-be-written signal capture.
type Dataset struct {
	// Series holds one row per series; every row has SampleCount entries.
	Series [][]float64
	// SampleCount is the number of samples per series.
	SampleCount int
	// SeriesCount is the number of series (rows).
	SeriesCount int
	// SampleFrequency is the sampling frequency in Hz.
	SampleFrequency float64
	// Start is the timestamp of sample 0.
	Start time.Time
	// Labels names every series, in row order.
	Labels []string
}

// NewDataset allocates a zero-filled dataset with one row per label.
//
// The whole matrix is allocated before any value is written.
//
// Returns an error wrapping errs.ErrInvalidDataset if labels is empty, samples is
// not positive, the matrix size overflows int, frequency is not a positive finite
// number or the samples do not fit in MaxSpan.
func NewDataset(labels []string, samples int, frequency float64, start time.Time) (*Dataset, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: no series", errs.ErrInvalidDataset)
	}
	if samples < 1 {
		return nil, fmt.Errorf("%w: sample count %d", errs.ErrInvalidDataset, samples)
	}
	if samples > math.MaxInt/len(labels) {
		return nil, fmt.Errorf("%w: %d series of %d samples overflow", errs.ErrInvalidDataset, len(labels), samples)
	}
	if !validFrequency(frequency) {
		return nil, fmt.Errorf("%w: sampling frequency %v", errs.ErrInvalidDataset, frequency)
	}
	if !SpanFits(samples, frequency) {
		return nil, fmt.Errorf("%w: %d samples at %v Hz exceed the date range", errs.ErrInvalidDataset, samples, frequency)
	}

	// one backing array keeps the rows contiguous
	backing := make([]float64, len(labels)*samples)
	series := make([][]float64, len(labels))
	for i := range series {
		series[i] = backing[i*samples : (i+1)*samples : (i+1)*samples]
	}

	return &Dataset{
		Series:          series,
		SampleCount:     samples,
		SeriesCount:     len(labels),
		SampleFrequency: frequency,
		Start:           start,
		Labels:          append([]string(nil), labels...),
	}, nil
}

func validFrequency(f float64) bool {
	return f > 0 && !math.IsInf(f, 1) && !math.IsNaN(f)
}

// MaxSpan is the longest time between the first and the last sample, in seconds:
// the span of a .NET DateTime, 0001-01-01 to 9999-12-31.
const MaxSpan = 315537897599

// SpanFits reports whether samples taken at frequency span at most MaxSpan seconds.
func SpanFits(samples int, frequency float64) bool {
	return float64(samples-1)/frequency <= MaxSpan
}

// Validate checks the shape invariants of d.
func (d *Dataset) Validate() error {
	switch {
	case d == nil:
		return fmt.Errorf("%w: nil dataset", errs.ErrInvalidDataset)
	case d.SeriesCount < 1:
		return fmt.Errorf("%w: series count %d", errs.ErrInvalidDataset, d.SeriesCount)
	case d.SampleCount < 1:
		return fmt.Errorf("%w: sample count %d", errs.ErrInvalidDataset, d.SampleCount)
	case !validFrequency(d.SampleFrequency):
		return fmt.Errorf("%w: sampling frequency %v", errs.ErrInvalidDataset, d.SampleFrequency)
	case !SpanFits(d.SampleCount, d.SampleFrequency):
		return fmt.Errorf("%w: %d samples at %v Hz exceed the date range", errs.ErrInvalidDataset, d.SampleCount, d.SampleFrequency)
	case len(d.Series) != d.SeriesCount:
		return fmt.Errorf("%w: %d rows for %d series", errs.ErrInvalidDataset, len(d.Series), d.SeriesCount)
	case len(d.Labels) != d.SeriesCount:
		return fmt.Errorf("%w: %d labels for %d series", errs.ErrInvalidDataset, len(d.Labels), d.SeriesCount)
	}

	for i, row := range d.Series {
		if len(row) != d.SampleCount {
			return fmt.Errorf("%w: series %d has %d samples, want %d", errs.ErrInvalidDataset, i, len(row), d.SampleCount)
		}
	}

	return nil
}

// TimeAt returns the timestamp of sample index.
func (d *Dataset) TimeAt(index int) time.Time {
	return SampleTime(d.Start, index, d.SampleFrequency)
}

// End returns the timestamp of the last sample.
func (d *Dataset) End() time.Time {
	return d.TimeAt(d.SampleCount - 1)
}

// Elapsed returns the measuring time between the first and the last sample.
func (d *Dataset) Elapsed() Elapsed {
	return NewElapsed(d.End().Sub(d.Start))
}

// Select returns a dataset holding the given series over the sample window [from, to).
//
// An empty indices slice selects every series. The rows of the result share memory
// with d and Start is moved to the timestamp of sample from.
//
// Returns an error wrapping errs.ErrSeriesIndex or errs.ErrSampleRange on bad arguments.
func (d *Dataset) Select(indices []int, from, to int) (*Dataset, error) {
	if from < 0 || to > d.SampleCount || from >= to {
		return nil, fmt.Errorf("%w: [%d, %d) of %d samples", errs.ErrSampleRange, from, to, d.SampleCount)
	}
	if len(indices) == 0 {
		indices = make([]int, d.SeriesCount)
		for i := range indices {
			indices[i] = i
		}
	}

	out := &Dataset{
		Series:          make([][]float64, 0, len(indices)),
		Labels:          make([]string, 0, len(indices)),
		SampleCount:     to - from,
		SeriesCount:     len(indices),
		SampleFrequency: d.SampleFrequency,
		Start:           d.TimeAt(from),
	}
	for _, i := range indices {
		if i < 0 || i >= d.SeriesCount {
			return nil, fmt.Errorf("%w: %d of %d series", errs.ErrSeriesIndex, i, d.SeriesCount)
		}
		out.Series = append(out.Series, d.Series[i][from:to])
		out.Labels = append(out.Labels, d.Labels[i])
	}

	return out, nil
}

// SeriesID returns the stable identifier of a series label.
func SeriesID(label string) uint64 {
	return hash.ID(label)
}

// Lookup returns the row and index of the first series whose label hashes to id.
func (d *Dataset) Lookup(id uint64) ([]float64, int, bool) {
	for i, label := range d.Labels {
		if SeriesID(label) == id && i < len(d.Series) {
			return d.Series[i], i, true
		}
	}

	return nil, -1, false
}

// SeriesByLabel returns the row of the first series named label.
func (d *Dataset) SeriesByLabel(label string) ([]float64, bool) {
	for i, l := range d.Labels {
		if l == label && i < len(d.Series) {
			return d.Series[i], true
		}
	}

	return nil, false
}

// Ambiguities reports the labels that occur more than once in d, in order, and
// whether two distinct labels share a series ID. Lookup and SeriesByLabel return
// the first match in either case.
func (d *Dataset) Ambiguities() ([]string, bool) {
	tracker := collision.NewTracker()
	for _, label := range d.Labels {
		_ = tracker.Track(label, SeriesID(label))
	}

	return tracker.Duplicates(), tracker.HasCollision()
}

// Fingerprint hashes the shape, timing, labels and every sample of d.
//
// Two datasets with equal fingerprints are, with overwhelming probability, identical.
func (d *Dataset) Fingerprint() uint64 {
	fp := hash.NewFingerprint().
		Int(d.SeriesCount).
		Int(d.SampleCount).
		Float64(d.SampleFrequency).
		Time(d.Start)
	for _, label := range d.Labels {
		fp.Text(label)
	}
	for _, row := range d.Series {
		for _, v := range row {
			fp.Float64(v)
		}
	}

	return fp.Sum64()
}

// maxDurationSeconds is the largest offset time.Duration can hold.
const maxDurationSeconds = float64(math.MaxInt64 / int64(time.Second))

// SampleTime returns start + index/frequency seconds, rounded to 100ns ticks.
func SampleTime(start time.Time, index int, frequency float64) time.Time {
	offset := float64(index) / frequency
	if math.Abs(offset) < maxDurationSeconds {
		return start.Add(time.Duration(math.Round(offset*1e7)) * 100)
	}

	// whole seconds overflow time.Duration, add them to the Unix time instead
	sec := math.Floor(offset)
	ticks := math.Round((offset - sec) * 1e7)

	return time.Unix(start.Unix()+int64(sec), int64(start.Nanosecond())+int64(ticks)*100).In(start.Location())
}
