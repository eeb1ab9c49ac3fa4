package codec

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/arloliu/luxsig/culture"
	"github.com/arloliu/luxsig/errs"
	"github.com/arloliu/luxsig/internal/options"
	"github.com/arloliu/luxsig/labels"
	"github.com/arloliu/luxsig/section"
	"github.com/arloliu/luxsig/signal"
)

// DefaultDataFormat is the numeric display pattern of body values. The empty
// pattern renders the shortest text that parses back to the same value.
const DefaultDataFormat = ""

// DefaultMaxSamples is the largest matrix, in values over all series, a reader
// allocates: 512 MiB of float64.
const DefaultMaxSamples = 1 << 26

// Config holds the settings of one read or write call.
//
// Readers use the logger, the localizer, the UI culture, the milliseconds format
// and the caller-supplied stats; writers use everything except the UI culture.
type Config struct {
	logger    *slog.Logger
	localizer labels.Localizer

	culture    culture.Culture
	uiCulture  *string
	msFormat   string
	dataFormat string

	series []int
	from   int
	to     int // 0 means the last sample

	stats    signal.Stats
	spectrum signal.Spectrum

	maxSamples int
}

func newConfig() *Config {
	return &Config{
		logger:     slog.New(slog.DiscardHandler),
		culture:    culture.Invariant(),
		dataFormat: DefaultDataFormat,
		maxSamples: DefaultMaxSamples,
	}
}

// Option is a functional option for configuring reads and writes.
type Option = options.Option[*Config]

func buildConfig(opts []Option) (*Config, error) {
	return options.Build(newConfig, opts...)
}

// activeCulture returns the write culture with the milliseconds override applied.
func (c *Config) activeCulture() culture.Culture {
	return c.culture.WithMillisecondsFormat(c.msFormat)
}

// checkShape rejects a parsed header whose sample matrix would exceed the
// reader limit or whose samples do not fit in the date range.
func (c *Config) checkShape(h *section.FileHeader) error {
	if h.SeriesCount > 0 && h.PointCount > c.maxSamples/h.SeriesCount {
		return errs.Header(labels.English(labels.DataPoints), 0,
			fmt.Sprintf("%d points of %d series exceed the limit of %d values", h.PointCount, h.SeriesCount, c.maxSamples))
	}
	if !signal.SpanFits(h.PointCount, h.SampleFrequency) {
		return errs.Header(labels.English(labels.SamplingFrequency), 0,
			fmt.Sprintf("%d points at %v Hz exceed the date range", h.PointCount, h.SampleFrequency))
	}

	return nil
}

// scanOptions returns the header scanning options of a read.
func (c *Config) scanOptions() []section.ScanOption {
	ui := c.culture.Name
	if c.uiCulture != nil {
		ui = *c.uiCulture
	}

	return []section.ScanOption{
		section.WithLocalizer(c.localizer),
		section.WithUICulture(ui),
		section.WithMillisecondsFormat(c.msFormat),
	}
}

// WithLogger sets the logger receiving read and write diagnostics.
// A nil logger discards them, which is the default.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *Config) {
		if logger == nil {
			logger = slog.New(slog.DiscardHandler)
		}
		c.logger = logger
	})
}

// WithLocalizer sets the source of localized header labels.
// Without it only the English labels are written and accepted.
func WithLocalizer(loc labels.Localizer) Option {
	return options.NoError(func(c *Config) {
		c.localizer = loc
	})
}

// WithCulture sets the active culture by tag. Writers format numbers, dates and
// labels with it; readers accept its localized format tag. Default is the
// invariant culture.
//
// Returns *errs.CultureError if the tag is not recognized.
func WithCulture(tag string) Option {
	return options.New(func(c *Config) error {
		resolved, err := culture.Resolve(tag)
		if err != nil {
			return err
		}
		c.culture = resolved

		return nil
	})
}

// WithUICulture sets the culture whose localized format tag readers accept,
// overriding the active culture for that purpose.
func WithUICulture(tag string) Option {
	return options.NoError(func(c *Config) {
		c.uiCulture = &tag
	})
}

// WithMillisecondsFormat replaces the seconds token of full date-time patterns,
// e.g. ":ss.ff". The default is ":ss" followed by the decimal separator and "fff".
func WithMillisecondsFormat(f string) Option {
	return options.New(func(c *Config) error {
		if f != "" && !strings.HasPrefix(f, ":s") {
			return fmt.Errorf("%w: milliseconds format %q must start with \":s\"", errs.ErrInvalidPattern, f)
		}
		c.msFormat = f

		return nil
	})
}

// WithDataFormat sets the numeric display pattern of body values, e.g. "0.###".
func WithDataFormat(pattern string) Option {
	return options.New(func(c *Config) error {
		if _, err := culture.CompileNumberPattern(pattern); err != nil {
			return err
		}
		c.dataFormat = pattern

		return nil
	})
}

// WithSeries restricts a write to the series at the given indices, in that order.
func WithSeries(indices ...int) Option {
	return options.NoError(func(c *Config) {
		c.series = append([]int(nil), indices...)
	})
}

// WithRange restricts a write to the samples [from, to). Timestamps of the
// written file start at sample from.
func WithRange(from, to int) Option {
	return options.New(func(c *Config) error {
		if from < 0 || to <= from {
			return fmt.Errorf("%w: [%d, %d)", errs.ErrSampleRange, from, to)
		}
		c.from, c.to = from, to

		return nil
	})
}

// WithStats supplies the statistics record. Writers of PlainText, Binary and
// Results files write it; readers of ELux and Legacy files, which carry no
// statistics, return it unchanged.
func WithStats(stats signal.Stats) Option {
	return options.NoError(func(c *Config) {
		c.stats = stats
	})
}

// WithSpectrum supplies the frequency table of a Results report.
func WithSpectrum(s signal.Spectrum) Option {
	return options.New(func(c *Config) error {
		if err := s.Validate(); err != nil {
			return err
		}
		c.spectrum = s

		return nil
	})
}

// WithMaxSamples limits the values, over all series, a reader allocates for one
// file. Files declaring more fail with *errs.HeaderFormatError on the data points
// field. Default is DefaultMaxSamples.
func WithMaxSamples(n int) Option {
	return options.New(func(c *Config) error {
		if n < 1 {
			return fmt.Errorf("%w: max samples %d", errs.ErrSampleRange, n)
		}
		c.maxSamples = n

		return nil
	})
}
