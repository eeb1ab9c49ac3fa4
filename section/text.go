package section

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arloliu/luxsig/culture"
	"github.com/arloliu/luxsig/encoding"
	"github.com/arloliu/luxsig/errs"
	"github.com/arloliu/luxsig/format"
	"github.com/arloliu/luxsig/internal/options"
	"github.com/arloliu/luxsig/labels"
	"github.com/arloliu/luxsig/signal"
)

// ParseTextHeader scans the header of a text file in the given variant.
//
// The reader is left at the first body line. The returned culture is the file
// culture named on the first line, with any milliseconds override applied; the body
// must be parsed with it.
//
// Returns:
//   - *errs.CultureError if the culture named by the tag is not recognized
//   - *errs.HeaderFormatError for the first missing, mislabelled or malformed line
//   - *errs.UnsupportedFormatError if variant is not a text format
func ParseTextHeader(lines *encoding.LineReader, variant format.FileFormat, opts ...ScanOption) (FileHeader, culture.Culture, error) {
	if !variant.IsText() {
		return FileHeader{}, culture.Culture{}, &errs.UnsupportedFormatError{Extension: variant.Extension()}
	}

	cfg, err := options.Build(newScanConfig, opts...)
	if err != nil {
		return FileHeader{}, culture.Culture{}, err
	}

	s := NewHeaderScanner(lines, cfg)
	h := FileHeader{Format: variant}

	h.CultureName = s.FormatTag(tagKey(variant))
	countKey := labels.DataSeries

	switch variant { //nolint:exhaustive
	case format.ELux:
		h.Start = s.Timestamp(labels.StartTime)
		s.Present(labels.EndTime)
		s.Present(labels.TotalTime)
		countKey = labels.Sensors
		h.SeriesCount = s.Count(labels.Sensors) + ELuxFixedSeries
		h.PointCount = s.Count(labels.DataPoints)
		h.SampleFrequency = s.Frequency(labels.SamplingFrequency)
		s.Blank()
		h.Labels = s.Labels(false)

	case format.Legacy:
		h.SeriesCount = s.Count(labels.DataSeries)
		h.PointCount = s.Count(labels.DataPoints)
		h.SampleFrequency = s.Frequency(labels.SamplingFrequency)
		s.Blank()
		h.Labels = s.Labels(false)

	case format.PlainText:
		h.Start = s.Timestamp(labels.StartTime)
		s.Present(labels.EndTime)
		s.Present(labels.TotalTime)
		h.SeriesCount = s.Count(labels.DataSeries)
		h.PointCount = s.Count(labels.DataPoints)
		h.SampleFrequency = s.Frequency(labels.SamplingFrequency)

		var values [signal.StatsFieldCount]float64
		for i, key := range signal.HeaderKeys() {
			values[i] = s.Scalar(key)
		}
		h.Stats = signal.StatsFromValues(values)
		h.HasStats = true

		s.Blank()
		h.Labels = s.Labels(true)
	}

	if err := s.Err(); err != nil {
		return FileHeader{}, culture.Culture{}, err
	}

	if len(h.Labels) != h.SeriesCount {
		return FileHeader{}, culture.Culture{}, errs.Header(labels.English(countKey), s.Line(),
			fmt.Sprintf("%d column labels for %d series", len(h.Labels), h.SeriesCount))
	}

	h.derive()

	return h, s.Culture(), nil
}

// TextHeaderWriter renders text headers with the active culture.
type TextHeaderWriter struct {
	culture   culture.Culture
	localizer labels.Localizer
	newline   string
}

// NewTextHeaderWriter creates a writer formatting with c and labels from loc.
// Lines end with "\r\n".
func NewTextHeaderWriter(c culture.Culture, loc labels.Localizer) *TextHeaderWriter {
	return &TextHeaderWriter{
		culture:   c,
		localizer: loc,
		newline:   "\r\n",
	}
}

func (hw *TextHeaderWriter) label(key labels.Key) string {
	return labels.Lookup(hw.localizer, key, hw.culture.Name)
}

func (hw *TextHeaderWriter) number(v float64) string {
	s, _ := hw.culture.FormatNumber(v, "")
	return s
}

// Lines returns the header lines of h, without terminators, the label row included.
func (hw *TextHeaderWriter) Lines(h *FileHeader) ([]string, error) {
	if !h.Format.IsText() {
		return nil, &errs.UnsupportedFormatError{Extension: h.Format.Extension()}
	}

	lines := make([]string, 0, 20)
	add := func(key labels.Key, value string) {
		lines = append(lines, hw.label(key)+": "+value)
	}

	lines = append(lines, TagLine(h.Format, hw.localizer, hw.culture.Name))

	if h.Format.HasTimestamps() {
		pattern := hw.culture.FullDateTimePattern()
		start, err := hw.culture.FormatTime(h.Start, pattern)
		if err != nil {
			return nil, err
		}
		end, err := hw.culture.FormatTime(h.End, pattern)
		if err != nil {
			return nil, err
		}
		add(labels.StartTime, start)
		add(labels.EndTime, end)
		add(labels.TotalTime, hw.elapsed(h.Elapsed))
	}

	if h.Format == format.ELux {
		add(labels.Sensors, strconv.Itoa(h.DeclaredSeries()))
	} else {
		add(labels.DataSeries, strconv.Itoa(h.SeriesCount))
	}
	add(labels.DataPoints, strconv.Itoa(h.PointCount))
	add(labels.SamplingFrequency, hw.number(h.SampleFrequency))

	if h.Format.HasStats() {
		values := h.Stats.Values()
		for i, key := range signal.HeaderKeys() {
			add(key, hw.number(values[i]))
		}
	}

	lines = append(lines, "")

	cols := strings.Join(h.Labels, "\t")
	if h.Format == format.PlainText {
		cols = hw.label(labels.Time) + "\t" + cols
	}
	lines = append(lines, cols)

	return lines, nil
}

// Write renders h to w, one terminated line per header line.
func (hw *TextHeaderWriter) Write(w io.StringWriter, h *FileHeader) error {
	lines, err := hw.Lines(h)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := w.WriteString(line + hw.newline); err != nil {
			return err
		}
	}

	return nil
}

func (hw *TextHeaderWriter) elapsed(e signal.Elapsed) string {
	return fmt.Sprintf("%d %s, %d %s, %d %s, %d %s %s %d %s",
		e.Days, hw.label(labels.Days),
		e.Hours, hw.label(labels.Hours),
		e.Minutes, hw.label(labels.Minutes),
		e.Seconds, hw.label(labels.Seconds),
		hw.label(labels.And),
		e.Milliseconds, hw.label(labels.Milliseconds))
}
