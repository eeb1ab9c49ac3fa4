package section

import (
	"fmt"
	"strings"
	"time"

	"github.com/arloliu/luxsig/errs"
	"github.com/arloliu/luxsig/format"
	"github.com/arloliu/luxsig/labels"
	"github.com/arloliu/luxsig/signal"
)

// ELuxFixedSeries is the number of series an ELux file carries besides its sensors.
const ELuxFixedSeries = 6

// FileHeader is the parsed or to-be-written header of a luxsig file.
type FileHeader struct {
	// Format is the file format the header belongs to.
	Format format.FileFormat
	// CultureName is the culture tag named on the first line (or in the binary tag).
	CultureName string
	// Start is the timestamp of sample 0. Zero for Legacy files.
	Start time.Time
	// End is the timestamp of the last sample, derived from Start, PointCount and
	// SampleFrequency. Zero for Legacy files.
	End time.Time
	// Elapsed is End - Start split into its header components.
	Elapsed signal.Elapsed
	// SeriesCount is the effective number of series; for ELux the declared sensor
	// count plus ELuxFixedSeries.
	SeriesCount int
	// PointCount is the number of samples per series.
	PointCount int
	// SampleFrequency is the sampling frequency in Hz.
	SampleFrequency float64
	// Stats is populated only when HasStats is set.
	Stats signal.Stats
	// HasStats reports whether the format carries the statistics block.
	HasStats bool
	// Labels names every series; the time column label is not included.
	Labels []string
}

// NewFileHeader builds the header written for d in format f with culture cultureName.
//
// End and Elapsed are recomputed from the point count and the sampling frequency.
// stats is kept only for formats that carry it.
func NewFileHeader(f format.FileFormat, d *signal.Dataset, stats signal.Stats, cultureName string) (FileHeader, error) {
	if err := d.Validate(); err != nil {
		return FileHeader{}, err
	}
	if f == format.ELux && d.SeriesCount <= ELuxFixedSeries {
		return FileHeader{}, fmt.Errorf("%w: ELux needs more than %d series, got %d",
			errs.ErrTooFewSeries, ELuxFixedSeries, d.SeriesCount)
	}

	h := FileHeader{
		Format:          f,
		CultureName:     cultureName,
		SeriesCount:     d.SeriesCount,
		PointCount:      d.SampleCount,
		SampleFrequency: d.SampleFrequency,
		HasStats:        f.HasStats(),
		Labels:          append([]string(nil), d.Labels...),
	}
	if f.HasTimestamps() {
		h.Start = d.Start
		h.End = d.End()
		h.Elapsed = d.Elapsed()
	}
	if h.HasStats {
		h.Stats = stats
	}

	return h, nil
}

// Duration returns the measuring time of the header.
func (h *FileHeader) Duration() time.Duration {
	return h.End.Sub(h.Start)
}

// DeclaredSeries returns the series count as written in the header: the sensor
// count for ELux, the series count otherwise.
func (h *FileHeader) DeclaredSeries() int {
	if h.Format == format.ELux {
		return h.SeriesCount - ELuxFixedSeries
	}

	return h.SeriesCount
}

// NewDataset allocates the zero-filled dataset described by h.
func (h *FileHeader) NewDataset() (*signal.Dataset, error) {
	return signal.NewDataset(h.Labels, h.PointCount, h.SampleFrequency, h.Start)
}

// derive fills End and Elapsed from Start, PointCount and SampleFrequency.
func (h *FileHeader) derive() {
	if h.Start.IsZero() || h.PointCount < 1 || h.SampleFrequency <= 0 {
		return
	}
	h.End = signal.SampleTime(h.Start, h.PointCount-1, h.SampleFrequency)
	h.Elapsed = signal.NewElapsed(h.End.Sub(h.Start))
}

// tagKey returns the label key of the first header line of f.
func tagKey(f format.FileFormat) labels.Key {
	if f == format.ELux {
		return labels.ELuxData
	}

	return labels.SignalData
}

// TagLine renders the first header line, e.g. "SignalAnalysis data (en-US)".
func TagLine(f format.FileFormat, loc labels.Localizer, cultureName string) string {
	return labels.Lookup(loc, tagKey(f), cultureName) + " (" + cultureName + ")"
}

// cultureFromTag extracts the culture name of a tag line: the text between the
// first "(" and the last character. ok is false when the line does not contain
// one of the tag candidates followed by " (".
func cultureFromTag(line string, candidates []string) (string, bool) {
	found := false
	for _, c := range candidates {
		if strings.Contains(line, c+" (") {
			found = true
			break
		}
	}
	if !found {
		return "", false
	}

	open := strings.IndexByte(line, '(')
	if open < 0 || open+1 > len(line)-1 {
		return "", false
	}

	return line[open+1 : len(line)-1], true
}
