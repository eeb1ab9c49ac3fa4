package codec

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/arloliu/luxsig/compress"
	"github.com/arloliu/luxsig/encoding"
	"github.com/arloliu/luxsig/endian"
	"github.com/arloliu/luxsig/errs"
	"github.com/arloliu/luxsig/format"
	"github.com/arloliu/luxsig/section"
	"github.com/arloliu/luxsig/signal"
)

// Result is a successfully read signal file.
type Result struct {
	// Dataset holds the samples. Samples missing from an incomplete body are zero.
	Dataset *signal.Dataset
	// Stats is the statistics record of the file, or the one passed with WithStats
	// for formats that carry none.
	Stats signal.Stats
	// Info describes how the file was read.
	Info ReadInfo
}

// ReadInfo describes a completed read.
type ReadInfo struct {
	Path        string
	Format      format.FileFormat
	Compression format.CompressionType
	// CultureName is the culture named by the format tag.
	CultureName string
	// Header is the parsed header.
	Header section.FileHeader
	// RowsRead counts the body lines of a text file, or the complete sample
	// records of a binary file.
	RowsRead int
	// Truncated is set when a binary file ended inside its sample section.
	Truncated bool
}

// ReadFile reads the signal file at path.
//
// The format is chosen by the file extension after any compression suffix (".zst",
// ".s2", ".lz4") is stripped. Unsupported extensions fail before the file is opened.
// ctx is checked before opening the file and again before decoding.
//
// Returns:
//   - *errs.UnsupportedFormatError for an extension with no reader
//   - *errs.IOError if the file cannot be opened, read or decompressed
//   - *errs.CultureError, *errs.HeaderFormatError or *errs.NumberParseError from decoding
func ReadFile(ctx context.Context, path string, opts ...Option) (*Result, error) {
	cfg, err := buildConfig(opts)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	codec, compression, base := compress.ForPath(path)
	ext := filepath.Ext(base)
	f := format.FromExtension(ext)
	if f == format.Unsupported {
		return nil, &errs.UnsupportedFormatError{Extension: ext}
	}

	data, err := readAll(path)
	if err != nil {
		return nil, err
	}

	data, err = codec.Decompress(data)
	if err != nil {
		return nil, &errs.IOError{Op: "decompress", Path: path, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err := decode(data, f, path, cfg)
	if err != nil {
		return nil, err
	}
	res.Info.Compression = compression

	return res, nil
}

// Decode parses an in-memory file of format f.
//
// Decode accepts the same options as ReadFile; errors are the decoding errors of ReadFile.
func Decode(data []byte, f format.FileFormat, opts ...Option) (*Result, error) {
	cfg, err := buildConfig(opts)
	if err != nil {
		return nil, err
	}

	return decode(data, f, "", cfg)
}

func readAll(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &errs.IOError{Op: "open", Path: path, Err: err}
	}
	defer file.Close()

	buf := bytes.NewBuffer(nil)
	if info, err := file.Stat(); err == nil && info.Size() > 0 {
		buf.Grow(int(info.Size()))
	}
	if _, err := buf.ReadFrom(file); err != nil {
		return nil, &errs.IOError{Op: "read", Path: path, Err: err}
	}

	return buf.Bytes(), nil
}

func decode(data []byte, f format.FileFormat, path string, cfg *Config) (*Result, error) {
	var (
		res *Result
		err error
	)

	switch {
	case f == format.Binary:
		res, err = decodeBinary(data, path, cfg)
	case f.IsText():
		res, err = decodeText(data, f, path, cfg)
	default:
		return nil, &errs.UnsupportedFormatError{Extension: f.Extension()}
	}
	if err != nil {
		return nil, err
	}

	d := res.Dataset
	if dups, collide := d.Ambiguities(); len(dups) > 0 || collide {
		cfg.logger.Warn("signal file has ambiguous series labels",
			slog.String("path", path),
			slog.Any("duplicates", dups),
			slog.Bool("id_collision", collide),
		)
	}
	cfg.logger.Debug("signal file read",
		slog.String("path", path),
		slog.String("format", f.String()),
		slog.String("culture", res.Info.CultureName),
		slog.Int("series", d.SeriesCount),
		slog.Int("points", d.SampleCount),
		slog.Int("rows", res.Info.RowsRead),
		slog.Uint64("fingerprint", d.Fingerprint()),
	)

	return res, nil
}

func decodeText(data []byte, f format.FileFormat, path string, cfg *Config) (*Result, error) {
	lines := encoding.NewLineReader(bytes.NewReader(data))

	h, c, err := section.ParseTextHeader(lines, f, cfg.scanOptions()...)
	if err != nil {
		return nil, wrapReadError(path, err)
	}
	if err := cfg.checkShape(&h); err != nil {
		return nil, err
	}

	d, err := h.NewDataset()
	if err != nil {
		return nil, err
	}

	rows, err := encoding.NewBodyDecoder(lines, c, f == format.PlainText).Fill(d.Series)
	if err != nil {
		return nil, wrapReadError(path, err)
	}
	if rows < h.PointCount {
		cfg.logger.Warn("signal file body is shorter than declared",
			slog.String("path", path),
			slog.Int("rows", rows),
			slog.Int("points", h.PointCount),
		)
	}

	stats := cfg.stats
	if h.HasStats {
		stats = h.Stats
	}

	return &Result{
		Dataset: d,
		Stats:   stats,
		Info: ReadInfo{
			Path:        path,
			Format:      f,
			CultureName: h.CultureName,
			Header:      h,
			RowsRead:    rows,
		},
	}, nil
}

func decodeBinary(data []byte, path string, cfg *Config) (*Result, error) {
	r := encoding.NewBinaryReader(data, endian.GetLittleEndianEngine())

	var h section.BinaryHeader
	if err := h.Parse(r, cfg.scanOptions()...); err != nil {
		return nil, err
	}
	if err := cfg.checkShape(&h.FileHeader); err != nil {
		return nil, err
	}

	d, err := h.NewDataset()
	if err != nil {
		return nil, err
	}

	records, truncated := 0, false
read:
	for _, row := range d.Series {
		for j := range row {
			if _, err := r.ReadDateTime(); err != nil {
				if encoding.IsEndOfData(err) {
					truncated = true
					break read
				}

				return nil, &errs.IOError{Op: "decode", Path: path, Err: err}
			}
			v, err := r.ReadFloat64()
			if err != nil {
				if encoding.IsEndOfData(err) {
					truncated = true
					break read
				}

				return nil, &errs.IOError{Op: "decode", Path: path, Err: err}
			}
			row[j] = v
			records++
		}
	}

	if truncated {
		cfg.logger.Warn("binary signal file is truncated",
			slog.String("path", path),
			slog.Int("records", records),
			slog.Int("expected", d.SeriesCount*d.SampleCount),
		)
	}

	return &Result{
		Dataset: d,
		Stats:   h.Stats,
		Info: ReadInfo{
			Path:        path,
			Format:      format.Binary,
			CultureName: h.CultureName,
			Header:      h.FileHeader,
			RowsRead:    records,
			Truncated:   truncated,
		},
	}, nil
}

// wrapReadError passes taxonomy errors through and reports anything else as a
// failed read of path.
func wrapReadError(path string, err error) error {
	for _, target := range []error{errs.ErrCulture, errs.ErrHeaderFormat, errs.ErrNumberParse, errs.ErrIO} {
		if errors.Is(err, target) {
			return err
		}
	}

	return &errs.IOError{Op: "read", Path: path, Err: err}
}
