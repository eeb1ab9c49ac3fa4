package codec

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/arloliu/luxsig/compress"
	"github.com/arloliu/luxsig/encoding"
	"github.com/arloliu/luxsig/endian"
	"github.com/arloliu/luxsig/errs"
	"github.com/arloliu/luxsig/format"
	"github.com/arloliu/luxsig/internal/pool"
	"github.com/arloliu/luxsig/section"
	"github.com/arloliu/luxsig/signal"
)

const (
	byteOrderMark = "\uFEFF"
	newline       = "\r\n"
)

// WriteFile writes d to path in the format chosen by its extension.
//
// ".elux", ".sig", ".bin" and ".results" select their format; any other extension
// is written as PlainText. A trailing ".zst", ".s2" or ".lz4" compresses the file.
// A ".results" path writes the report of WithStats and WithSpectrum and ignores d.
//
// Returns *errs.IOError if the file cannot be written; option and dataset errors
// are returned as they are.
func WriteFile(ctx context.Context, path string, d *signal.Dataset, opts ...Option) error {
	cfg, err := buildConfig(opts)
	if err != nil {
		return err
	}

	base, _ := format.SplitPath(path)
	f := format.ForWrite(filepath.Ext(base))

	return writeEncoded(ctx, path, f, cfg, func(buf *pool.ByteBuffer) error {
		if f == format.Results {
			return encodeResults(buf, cfg)
		}

		return encode(buf, f, d, cfg)
	})
}

// writeEncoded renders a file with enc, compresses it as the suffix of path
// asks and writes it to path.
func writeEncoded(ctx context.Context, path string, f format.FileFormat, cfg *Config, enc func(*pool.ByteBuffer) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	codec, compression, _ := compress.ForPath(path)

	buf := pool.GetFileBuffer()
	defer pool.PutFileBuffer(buf)

	if err := enc(buf); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := codec.Compress(buf.Bytes())
	if err != nil {
		return &errs.IOError{Op: "compress", Path: path, Err: err}
	}
	if compression != format.CompressionNone {
		stats := compress.NewCompressionStats(compression, buf.Len(), len(data))
		cfg.logger.Debug("signal file compressed",
			slog.String("path", path),
			slog.String("algorithm", compression.String()),
			slog.Float64("ratio", stats.CompressionRatio()),
		)
	}

	if err := writeAll(path, data); err != nil {
		return err
	}

	cfg.logger.Debug("signal file written",
		slog.String("path", path),
		slog.String("format", f.String()),
		slog.String("culture", cfg.culture.Name),
		slog.Int("bytes", len(data)),
	)

	return nil
}

// Encode writes d to w in format f. Results is not accepted; use EncodeResults.
func Encode(w io.Writer, f format.FileFormat, d *signal.Dataset, opts ...Option) error {
	cfg, err := buildConfig(opts)
	if err != nil {
		return err
	}

	buf := pool.GetFileBuffer()
	defer pool.PutFileBuffer(buf)

	if err := encode(buf, f, d, cfg); err != nil {
		return err
	}
	_, err = buf.WriteTo(w)

	return err
}

func writeAll(path string, data []byte) (err error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return &errs.IOError{Op: "create", Path: path, Err: err}
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = &errs.IOError{Op: "close", Path: path, Err: cerr}
		}
	}()

	if _, err := file.Write(data); err != nil {
		return &errs.IOError{Op: "write", Path: path, Err: err}
	}

	return nil
}

// selection applies WithSeries and WithRange to d.
func (c *Config) selection(d *signal.Dataset) (*signal.Dataset, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if len(c.series) == 0 && c.from == 0 && c.to == 0 {
		return d, nil
	}

	to := c.to
	if to == 0 {
		to = d.SampleCount
	}

	return d.Select(c.series, c.from, to)
}

func encode(buf *pool.ByteBuffer, f format.FileFormat, d *signal.Dataset, cfg *Config) error {
	if f != format.Binary && !f.IsText() {
		return &errs.UnsupportedFormatError{Extension: f.Extension()}
	}

	sel, err := cfg.selection(d)
	if err != nil {
		return err
	}

	c := cfg.activeCulture()
	h, err := section.NewFileHeader(f, sel, cfg.stats, c.Name)
	if err != nil {
		return err
	}

	if f == format.Binary {
		return encodeBinary(buf, h, sel, cfg)
	}

	_, _ = buf.WriteString(byteOrderMark)
	if err := section.NewTextHeaderWriter(c, cfg.localizer).Write(buf, &h); err != nil {
		return err
	}

	var bodyOpts []encoding.BodyOption
	if f == format.PlainText {
		bodyOpts = append(bodyOpts, encoding.WithTimestamps(sel.Start, sel.SampleFrequency, c.FullDateTimePattern()))
	}
	enc, err := encoding.NewBodyEncoder(c, cfg.dataFormat, bodyOpts...)
	if err != nil {
		return err
	}

	return enc.Encode(buf, sel.Series)
}

func encodeBinary(buf *pool.ByteBuffer, h section.FileHeader, d *signal.Dataset, cfg *Config) error {
	bh, err := section.NewBinaryHeader(h)
	if err != nil {
		return err
	}

	w := encoding.NewBinaryWriter(endian.GetLittleEndianEngine())
	defer w.Finish()

	bh.AppendTo(w, cfg.localizer)
	for _, row := range d.Series {
		for j, v := range row {
			w.WriteDateTime(signal.SampleTime(d.Start, j, d.SampleFrequency))
			w.WriteFloat64(v)
		}
	}

	_, err = buf.Write(w.Bytes())

	return err
}
