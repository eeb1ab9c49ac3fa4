package encoding

import (
	"fmt"
	"io"
	"iter"
	"strings"
	"time"

	"github.com/arloliu/luxsig/culture"
	"github.com/arloliu/luxsig/errs"
	"github.com/arloliu/luxsig/internal/options"
	"github.com/arloliu/luxsig/labels"
	"github.com/arloliu/luxsig/signal"
)

// BodyRow is one decoded line of a numeric body.
type BodyRow struct {
	// Index is the 0-based sample index of the row.
	Index int
	// Line is the 1-based line number in the file.
	Line int
	// Values holds one value per numeric column, in column order.
	Values []float64
}

// BodyDecoder parses the tab-separated numeric body that follows a text header.
//
// Each line is one sample index; each numeric column is one series. When skipTime is
// set the first column holds a timestamp and is ignored.
type BodyDecoder struct {
	lines    *LineReader
	culture  culture.Culture
	skipTime bool
}

// NewBodyDecoder creates a decoder reading from lines with the number grammar of c.
func NewBodyDecoder(lines *LineReader, c culture.Culture, skipTime bool) *BodyDecoder {
	return &BodyDecoder{
		lines:    lines,
		culture:  c,
		skipTime: skipTime,
	}
}

// All returns an iterator over the remaining body lines.
//
// Every call scans from the current position of the underlying reader and numbers
// rows from zero. Iteration stops at end of input or after yielding the first error,
// which is a *errs.NumberParseError for a malformed token.
func (d *BodyDecoder) All() iter.Seq2[BodyRow, error] {
	return func(yield func(BodyRow, error) bool) {
		for index := 0; ; index++ {
			text, ok, err := d.lines.ReadLine()
			if err != nil {
				yield(BodyRow{}, err)
				return
			}
			if !ok {
				return
			}

			row, err := d.parse(text, index)
			if err != nil {
				yield(BodyRow{}, err)
				return
			}
			if !yield(row, nil) {
				return
			}
		}
	}
}

func (d *BodyDecoder) parse(text string, index int) (BodyRow, error) {
	fields := strings.Split(text, "\t")
	first := 0
	if d.skipTime {
		first = 1
	}

	row := BodyRow{Index: index, Line: d.lines.Line()}
	if len(fields) > first {
		row.Values = make([]float64, 0, len(fields)-first)
	}
	for col := first; col < len(fields); col++ {
		v, err := d.culture.ParseFloat(fields[col])
		if err != nil {
			return BodyRow{}, &errs.NumberParseError{Token: fields[col], Line: row.Line, Column: col}
		}
		row.Values = append(row.Values, v)
	}

	return row, nil
}

// Fill decodes the remaining lines into series[column][row] and returns the row count.
//
// Rows missing at the end and columns missing in a row keep their previous values.
// A row past the end of the series rows or a column past the last series is a
// *errs.HeaderFormatError.
func (d *BodyDecoder) Fill(series [][]float64) (int, error) {
	rows := 0
	for row, err := range d.All() {
		if err != nil {
			return rows, err
		}
		if len(row.Values) > len(series) {
			return rows, errs.Header(labels.English(labels.DataSeries), row.Line,
				fmt.Sprintf("%d values in a row of %d series", len(row.Values), len(series)))
		}
		for col, v := range row.Values {
			if row.Index >= len(series[col]) {
				return rows, errs.Header(labels.English(labels.DataPoints), row.Line,
					fmt.Sprintf("more than %d data rows", len(series[col])))
			}
			series[col][row.Index] = v
		}
		rows++
	}

	return rows, nil
}

// BodyEncoder renders a numeric body, one line per sample index.
type BodyEncoder struct {
	culture     culture.Culture
	pattern     culture.NumberPattern
	timePattern string
	start       time.Time
	frequency   float64
	newline     string
}

// BodyOption configures a BodyEncoder.
type BodyOption = options.Option[*BodyEncoder]

// WithTimestamps prefixes every line with start + index/frequency rendered with pattern.
func WithTimestamps(start time.Time, frequency float64, pattern string) BodyOption {
	return options.New(func(e *BodyEncoder) error {
		if frequency <= 0 {
			return fmt.Errorf("%w: sampling frequency %v", errs.ErrInvalidDataset, frequency)
		}
		if _, err := e.culture.FormatTime(start, pattern); err != nil {
			return err
		}
		e.timePattern = pattern
		e.start = start
		e.frequency = frequency

		return nil
	})
}

// WithLineEnding sets the line terminator, "\r\n" by default.
func WithLineEnding(eol string) BodyOption {
	return options.NoError(func(e *BodyEncoder) {
		e.newline = eol
	})
}

// NewBodyEncoder creates an encoder formatting values with valuePattern in culture c.
func NewBodyEncoder(c culture.Culture, valuePattern string, opts ...BodyOption) (*BodyEncoder, error) {
	pattern, err := culture.CompileNumberPattern(valuePattern)
	if err != nil {
		return nil, err
	}

	e := &BodyEncoder{
		culture: c,
		pattern: pattern,
		newline: "\r\n",
	}
	if err := options.Apply(e, opts...); err != nil {
		return nil, err
	}

	return e, nil
}

// Encode writes one line per sample of series to w.
// All rows must have the length of the first row.
func (e *BodyEncoder) Encode(w io.StringWriter, series [][]float64) error {
	if len(series) == 0 {
		return nil
	}

	samples := len(series[0])
	for i, row := range series {
		if len(row) != samples {
			return fmt.Errorf("%w: series %d has %d samples, want %d", errs.ErrInvalidDataset, i, len(row), samples)
		}
	}

	var sb strings.Builder
	for j := range samples {
		sb.Reset()
		if e.timePattern != "" {
			ts, err := e.culture.FormatTime(signal.SampleTime(e.start, j, e.frequency), e.timePattern)
			if err != nil {
				return err
			}
			sb.WriteString(ts)
			sb.WriteByte('\t')
		}
		for i, row := range series {
			if i > 0 {
				sb.WriteByte('\t')
			}
			sb.WriteString(e.culture.Format(row[j], e.pattern))
		}
		sb.WriteString(e.newline)

		if _, err := w.WriteString(sb.String()); err != nil {
			return err
		}
	}

	return nil
}
