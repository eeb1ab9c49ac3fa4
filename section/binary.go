package section

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/arloliu/luxsig/encoding"
	"github.com/arloliu/luxsig/errs"
	"github.com/arloliu/luxsig/format"
	"github.com/arloliu/luxsig/internal/options"
	"github.com/arloliu/luxsig/labels"
	"github.com/arloliu/luxsig/signal"
)

// BinaryHeader is the header of a ".bin" file.
type BinaryHeader struct {
	FileHeader

	// Tag is the first string of the file, e.g. "SignalAnalysis data (en-US)".
	Tag string
	// DeclaredSeries is the series count field as stored. Readers infer the series
	// count from the label row instead.
	DeclaredSeries int32
}

// NewBinaryHeader wraps h for writing. h.Format must be format.Binary.
func NewBinaryHeader(h FileHeader) (*BinaryHeader, error) {
	if h.Format != format.Binary {
		return nil, &errs.UnsupportedFormatError{Extension: h.Format.Extension()}
	}

	return &BinaryHeader{
		FileHeader:     h,
		DeclaredSeries: int32(h.SeriesCount), //nolint:gosec
	}, nil
}

// binaryField reads one header field and converts running out of data into a
// *errs.HeaderFormatError naming the field.
type binaryField struct {
	r   *encoding.BinaryReader
	err error
}

func (f *binaryField) check(key labels.Key, err error) {
	if f.err != nil || err == nil {
		return
	}
	if encoding.IsEndOfData(err) {
		err = io.ErrUnexpectedEOF
	}
	f.err = errs.HeaderWrap(labels.English(key), 0, err)
}

func (f *binaryField) readString(key labels.Key) string {
	if f.err != nil {
		return ""
	}
	v, err := f.r.ReadString()
	f.check(key, err)

	return v
}

func (f *binaryField) readDateTime(key labels.Key) time.Time {
	if f.err != nil {
		return time.Time{}
	}
	v, err := f.r.ReadDateTime()
	f.check(key, err)

	return v
}

func (f *binaryField) readInt32(key labels.Key) int32 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.ReadInt32()
	f.check(key, err)

	return v
}

func (f *binaryField) readFloat64(key labels.Key) float64 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.ReadFloat64()
	f.check(key, err)

	return v
}

// Parse reads the header fields from r, leaving r at the first sample.
//
// Only the presence of the format tag is checked; the culture named in the tag is
// recorded but never used, since binary numbers are culture-independent.
//
// Returns *errs.HeaderFormatError naming the first field that is missing, truncated
// or out of range.
func (h *BinaryHeader) Parse(r *encoding.BinaryReader, opts ...ScanOption) error {
	cfg, err := options.Build(newScanConfig, opts...)
	if err != nil {
		return err
	}

	f := &binaryField{r: r}
	parsed := BinaryHeader{FileHeader: FileHeader{Format: format.Binary, HasStats: true}}

	parsed.Tag = f.readString(labels.SignalData)
	if f.err == nil {
		name, ok := cultureFromTag(parsed.Tag, labels.Candidates(cfg.Localizer, labels.SignalData, cfg.UICulture))
		if !ok {
			return errs.Header(labels.English(labels.SignalData), 0, "format tag not found")
		}
		parsed.CultureName = name
	}

	parsed.Start = f.readDateTime(labels.StartTime)
	parsed.End = f.readDateTime(labels.EndTime)
	parsed.Elapsed = signal.Elapsed{
		Days:         f.readInt32(labels.Days),
		Hours:        f.readInt32(labels.Hours),
		Minutes:      f.readInt32(labels.Minutes),
		Seconds:      f.readInt32(labels.Seconds),
		Milliseconds: f.readInt32(labels.Milliseconds),
	}
	parsed.DeclaredSeries = f.readInt32(labels.DataSeries)
	parsed.PointCount = int(f.readInt32(labels.DataPoints))
	parsed.SampleFrequency = f.readFloat64(labels.SamplingFrequency)

	var values [signal.StatsFieldCount]float64
	for i, key := range signal.HeaderKeys() {
		values[i] = f.readFloat64(key)
	}
	parsed.Stats = signal.StatsFromValues(values)

	row := f.readString(labels.LabelRow)
	if f.err != nil {
		return f.err
	}

	if parsed.PointCount < 1 {
		return errs.Header(labels.English(labels.DataPoints), 0, fmt.Sprintf("must be positive, got %d", parsed.PointCount))
	}
	if !(parsed.SampleFrequency > 0) {
		return errs.Header(labels.English(labels.SamplingFrequency), 0,
			fmt.Sprintf("must be positive, got %v", parsed.SampleFrequency))
	}

	cols := strings.Split(row, "\t")[1:]
	if len(cols) == 0 {
		return errs.Header(labels.English(labels.LabelRow), 0, "no series label after the time column")
	}
	parsed.Labels = cols
	parsed.SeriesCount = len(cols)

	*h = parsed

	return nil
}

// AppendTo writes the header fields to w, labelling with loc in the header culture.
func (h *BinaryHeader) AppendTo(w *encoding.BinaryWriter, loc labels.Localizer) {
	w.WriteString(TagLine(format.Binary, loc, h.CultureName))
	w.WriteDateTime(h.Start)
	w.WriteDateTime(h.End)
	w.WriteInt32(h.Elapsed.Days)
	w.WriteInt32(h.Elapsed.Hours)
	w.WriteInt32(h.Elapsed.Minutes)
	w.WriteInt32(h.Elapsed.Seconds)
	w.WriteInt32(h.Elapsed.Milliseconds)
	w.WriteInt32(h.DeclaredSeries)
	w.WriteInt32(int32(h.PointCount)) //nolint:gosec
	w.WriteFloat64(h.SampleFrequency)
	for _, v := range h.Stats.Values() {
		w.WriteFloat64(v)
	}
	w.WriteString(labels.Lookup(loc, labels.Time, h.CultureName) + "\t" + strings.Join(h.Labels, "\t"))
}
