package codec

import (
	"context"
	"io"
	"strings"

	"github.com/arloliu/luxsig/format"
	"github.com/arloliu/luxsig/internal/pool"
	"github.com/arloliu/luxsig/labels"
	"github.com/arloliu/luxsig/section"
)

// resultsPattern is the fixed display pattern of the frequency table.
const resultsPattern = "0.########"

// WriteResults writes the analysis report of WithStats and WithSpectrum to path,
// whatever its extension. A compression suffix is honored as in WriteFile.
func WriteResults(ctx context.Context, path string, opts ...Option) error {
	cfg, err := buildConfig(opts)
	if err != nil {
		return err
	}

	return writeEncoded(ctx, path, format.Results, cfg, func(buf *pool.ByteBuffer) error {
		return encodeResults(buf, cfg)
	})
}

// EncodeResults writes the analysis report of WithStats and WithSpectrum to w.
//
// The report holds the format tag, the statistics block, a blank line and a
// frequency, magnitude and power table formatted with "0.########".
func EncodeResults(w io.Writer, opts ...Option) error {
	cfg, err := buildConfig(opts)
	if err != nil {
		return err
	}

	buf := pool.GetFileBuffer()
	defer pool.PutFileBuffer(buf)

	if err := encodeResults(buf, cfg); err != nil {
		return err
	}
	_, err = buf.WriteTo(w)

	return err
}

func encodeResults(buf *pool.ByteBuffer, cfg *Config) error {
	c := cfg.activeCulture()
	label := func(key labels.Key) string {
		return labels.Lookup(cfg.localizer, key, c.Name)
	}

	lines := []string{section.TagLine(format.Results, cfg.localizer, c.Name)}
	lines = append(lines, cfg.stats.SummaryLines(c, cfg.localizer)...)
	lines = append(lines, "", strings.Join([]string{
		label(labels.FrequencyAxis),
		label(labels.MagnitudeAxis),
		label(labels.PowerAxis),
	}, "\t"))

	s := cfg.spectrum
	for i := range s.Len() {
		row := make([]string, 3)
		for k, v := range []float64{s.Frequencies[i], s.Magnitude[i], s.Power[i]} {
			text, err := c.FormatNumber(v, resultsPattern)
			if err != nil {
				return err
			}
			row[k] = text
		}
		lines = append(lines, strings.Join(row, "\t"))
	}

	_, _ = buf.WriteString(byteOrderMark)
	for _, line := range lines {
		_, _ = buf.WriteString(line)
		_, _ = buf.WriteString(newline)
	}

	return nil
}
