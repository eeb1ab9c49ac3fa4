package section

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/arloliu/luxsig/culture"
	"github.com/arloliu/luxsig/encoding"
	"github.com/arloliu/luxsig/errs"
	"github.com/arloliu/luxsig/internal/options"
	"github.com/arloliu/luxsig/labels"
)

// ScanConfig configures header scanning.
type ScanConfig struct {
	// Localizer supplies the localized labels; nil means English only.
	Localizer labels.Localizer
	// UICulture selects the localized text accepted for the format tag. The culture
	// of the rest of the header is the one named by the tag itself.
	UICulture string
	// MillisecondsFormat overrides the seconds token of the file culture's full
	// date-time pattern when parsing timestamps.
	MillisecondsFormat string
}

func newScanConfig() *ScanConfig {
	return &ScanConfig{}
}

// ScanOption is a functional option for configuring header scanning.
type ScanOption = options.Option[*ScanConfig]

// WithLocalizer sets the label localizer.
func WithLocalizer(loc labels.Localizer) ScanOption {
	return options.NoError(func(cfg *ScanConfig) {
		cfg.Localizer = loc
	})
}

// WithUICulture sets the culture whose localized format tag is accepted.
func WithUICulture(name string) ScanOption {
	return options.NoError(func(cfg *ScanConfig) {
		cfg.UICulture = name
	})
}

// WithMillisecondsFormat overrides the milliseconds format used for timestamps.
func WithMillisecondsFormat(f string) ScanOption {
	return options.New(func(cfg *ScanConfig) error {
		if f != "" && !strings.HasPrefix(f, ":s") {
			return fmt.Errorf("%w: milliseconds format %q must start with \":s\"", errs.ErrInvalidPattern, f)
		}
		cfg.MillisecondsFormat = f

		return nil
	})
}

// HeaderScanner reads header lines one step at a time.
//
// Each step consumes exactly one line and either yields its value or records the
// first violation. Once an error is recorded every later step is a no-op returning
// the zero value, so a whole header can be scanned without checking errors between
// steps:
//
//	s := section.NewHeaderScanner(lines, cfg)
//	name := s.FormatTag(labels.SignalData)
//	points := s.Count(labels.DataPoints)
//	freq := s.Frequency(labels.SamplingFrequency)
//	s.Blank()
//	if err := s.Err(); err != nil {
//	    return err
//	}
type HeaderScanner struct {
	lines   *encoding.LineReader
	cfg     *ScanConfig
	culture culture.Culture
	err     error
}

// NewHeaderScanner creates a scanner reading from lines.
// The culture starts as the invariant culture until FormatTag resolves the file culture.
func NewHeaderScanner(lines *encoding.LineReader, cfg *ScanConfig) *HeaderScanner {
	if cfg == nil {
		cfg = newScanConfig()
	}

	return &HeaderScanner{
		lines:   lines,
		cfg:     cfg,
		culture: culture.Invariant(),
	}
}

// Err returns the first violation recorded, or nil.
func (s *HeaderScanner) Err() error {
	return s.err
}

// Culture returns the file culture resolved by FormatTag.
func (s *HeaderScanner) Culture() culture.Culture {
	return s.culture
}

// Line returns the number of the last line consumed.
func (s *HeaderScanner) Line() int {
	return s.lines.Line()
}

func (s *HeaderScanner) fail(field string, detail string) {
	if s.err == nil {
		s.err = errs.Header(field, s.lines.Line(), detail)
	}
}

// next reads one line. A missing line records a violation for field.
func (s *HeaderScanner) next(field string) (string, bool) {
	if s.err != nil {
		return "", false
	}

	text, ok, err := s.lines.ReadLine()
	if err != nil {
		s.err = err
		return "", false
	}
	if !ok {
		s.err = errs.Header(field, s.lines.Line()+1, "unexpected end of file")
		return "", false
	}

	return text, true
}

// labelled reads a "<label>: <value>" line and returns the text after the first colon.
func (s *HeaderScanner) labelled(key labels.Key) (string, bool) {
	field := labels.English(key)
	text, ok := s.next(field)
	if !ok {
		return "", false
	}

	found := false
	for _, label := range labels.Candidates(s.cfg.Localizer, key, s.culture.Name) {
		if strings.Contains(text, label+": ") {
			found = true
			break
		}
	}
	if !found {
		s.fail(field, "label not found")
		return "", false
	}

	return text[strings.IndexByte(text, ':')+1:], true
}

// FormatTag reads the first line, checks the format tag of key and resolves the
// culture named between the parentheses. It returns the culture name.
func (s *HeaderScanner) FormatTag(key labels.Key) string {
	field := labels.English(key)
	text, ok := s.next(field)
	if !ok {
		return ""
	}

	name, ok := cultureFromTag(text, labels.Candidates(s.cfg.Localizer, key, s.cfg.UICulture))
	if !ok {
		s.fail(field, "format tag not found")
		return ""
	}

	c, err := culture.Resolve(name)
	if err != nil {
		s.err = err
		return ""
	}
	s.culture = c.WithMillisecondsFormat(s.cfg.MillisecondsFormat)

	return name
}

// Timestamp reads a labelled line whose value is a date-time in the full
// millisecond pattern of the file culture.
func (s *HeaderScanner) Timestamp(key labels.Key) time.Time {
	value, ok := s.labelled(key)
	if !ok {
		return time.Time{}
	}

	// the value starts after ": "
	if value == "" || value[0] != ' ' {
		s.fail(labels.English(key), "missing value")
		return time.Time{}
	}

	ts, err := s.culture.ParseTime(value[1:], s.culture.FullDateTimePattern())
	if err != nil {
		s.fail(labels.English(key), err.Error())
		return time.Time{}
	}

	return ts
}

// Present reads a labelled line whose value is not interpreted.
func (s *HeaderScanner) Present(key labels.Key) {
	s.labelled(key)
}

// Count reads a labelled line whose value is a positive integer.
func (s *HeaderScanner) Count(key labels.Key) int {
	value, ok := s.labelled(key)
	if !ok {
		return 0
	}

	n, err := s.culture.ParseCount(value)
	if err != nil {
		s.fail(labels.English(key), err.Error())
		return 0
	}
	if n == 0 {
		s.fail(labels.English(key), "must not be zero")
		return 0
	}

	return n
}

// Frequency reads a labelled line whose value is a positive culture-formatted number.
func (s *HeaderScanner) Frequency(key labels.Key) float64 {
	f := s.Scalar(key)
	if s.err != nil {
		return 0
	}
	if !(f > 0) || math.IsInf(f, 1) {
		s.fail(labels.English(key), fmt.Sprintf("must be positive, got %v", f))
		return 0
	}

	return f
}

// Scalar reads a labelled line whose value is a culture-formatted number.
func (s *HeaderScanner) Scalar(key labels.Key) float64 {
	value, ok := s.labelled(key)
	if !ok {
		return 0
	}

	f, err := s.culture.ParseFloat(value)
	if err != nil {
		s.fail(labels.English(key), err.Error())
		return 0
	}

	return f
}

// Blank reads a line that must be empty.
func (s *HeaderScanner) Blank() {
	field := labels.English(labels.BlankLine)
	text, ok := s.next(field)
	if ok && text != "" {
		s.fail(field, fmt.Sprintf("found %q", text))
	}
}

// Labels reads the tab-separated column labels. With dropTime the first column,
// the time column, is discarded. An empty result is a violation.
func (s *HeaderScanner) Labels(dropTime bool) []string {
	field := labels.English(labels.LabelRow)
	text, ok := s.next(field)
	if !ok {
		return nil
	}
	if text == "" {
		s.fail(field, "empty label row")
		return nil
	}

	cols := strings.Split(text, "\t")
	if dropTime {
		cols = cols[1:]
	}
	if len(cols) == 0 {
		s.fail(field, "no series label after the time column")
		return nil
	}

	return cols
}
