// Package luxsig reads and writes the signal files of light-sensor captures.
//
// A capture is a set of equally sampled series (one per sensor or channel) plus
// the timing metadata needed to timestamp every sample. Four on-disk formats are
// supported, three text formats and one binary, together with a write-only
// analysis report:
//
//   - ".elux": ErgoLux export, six fixed columns plus one per sensor
//   - ".sig": legacy export without timestamps
//   - ".txt": SignalAnalysis export with statistics and a time column
//   - ".bin": SignalAnalysis binary export
//   - ".results": statistics and frequency spectrum report
//
// Text files are culture-sensitive: the first line names the culture whose number
// and date grammar the rest of the file uses, and header labels may be localized.
//
// # Basic Usage
//
// Reading a file and converting it to another format:
//
//	import "github.com/arloliu/luxsig"
//
//	res, err := luxsig.ReadFile(ctx, "capture.elux")
//	if err != nil {
//	    fmt.Println(luxsig.Describe(err, nil, ""))
//	    return
//	}
//	err = luxsig.WriteFile(ctx, "capture.bin", res.Dataset, codec.WithStats(res.Stats))
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the codec package.
// For header-level access use the section package; for the numeric body and
// binary primitives use the encoding package.
package luxsig

import (
	"context"
	"errors"
	"strings"

	"github.com/arloliu/luxsig/codec"
	"github.com/arloliu/luxsig/errs"
	"github.com/arloliu/luxsig/labels"
	"github.com/arloliu/luxsig/signal"
)

// ReadFile reads the signal file at path. See codec.ReadFile.
//
// Example:
//
//	res, err := luxsig.ReadFile(ctx, "capture.txt",
//	    codec.WithLocalizer(labels.Spanish),
//	    codec.WithUICulture("es-ES"),
//	)
func ReadFile(ctx context.Context, path string, opts ...codec.Option) (*codec.Result, error) {
	return codec.ReadFile(ctx, path, opts...)
}

// WriteFile writes d to path in the format chosen by its extension. See codec.WriteFile.
func WriteFile(ctx context.Context, path string, d *signal.Dataset, opts ...codec.Option) error {
	return codec.WriteFile(ctx, path, d, opts...)
}

// WriteResults writes the statistics and frequency spectrum report to path.
//
// Parameters:
//   - ctx: checked before encoding and before writing
//   - path: destination file; a ".zst", ".s2" or ".lz4" suffix compresses it
//   - stats: statistics block of the report
//   - spectrum: frequency, magnitude and power columns, of equal length
//   - opts: culture and localizer options
//
// Returns an error wrapping errs.ErrInvalidSpectrum if the spectrum columns differ
// in length, or *errs.IOError if the file cannot be written.
func WriteResults(ctx context.Context, path string, stats signal.Stats, spectrum signal.Spectrum, opts ...codec.Option) error {
	opts = append(opts[:len(opts):len(opts)], codec.WithStats(stats), codec.WithSpectrum(spectrum))

	return codec.WriteResults(ctx, path, opts...)
}

// Describe renders err as the localized message shown to users for its error class.
//
// Errors outside the taxonomy of package errs are described as failures to open
// the data file. A nil error yields an empty string.
func Describe(err error, loc labels.Localizer, culture string) string {
	if err == nil {
		return ""
	}

	message := func(key labels.Key, arg string) string {
		return strings.ReplaceAll(labels.Lookup(loc, key, culture), "{0}", arg)
	}

	var (
		cultureErr     *errs.CultureError
		headerErr      *errs.HeaderFormatError
		numberErr      *errs.NumberParseError
		ioErr          *errs.IOError
		unsupportedErr *errs.UnsupportedFormatError
	)

	switch {
	case errors.As(err, &cultureErr):
		return message(labels.MsgCultureError, cultureErr.Error())
	case errors.As(err, &headerErr):
		return message(labels.MsgHeaderError, message(labels.MsgHeaderSection, headerErr.Field))
	case errors.As(err, &numberErr):
		return message(labels.MsgNumberError, numberErr.Error())
	case errors.As(err, &unsupportedErr):
		return message(labels.MsgNotImplemented, strings.TrimPrefix(unsupportedErr.Extension, "."))
	case errors.As(err, &ioErr) && isWriteOp(ioErr.Op):
		return message(labels.MsgSaveError, ioErr.Err.Error())
	case errors.As(err, &ioErr):
		return message(labels.MsgOpenError, ioErr.Err.Error())
	default:
		return message(labels.MsgOpenError, err.Error())
	}
}

func isWriteOp(op string) bool {
	switch op {
	case "create", "write", "close", "compress":
		return true
	default:
		return false
	}
}
