// Package errs defines the error taxonomy shared by all luxsig packages.
//
// Every failure is one of five classes, each with a sentinel that can be matched
// with errors.Is and a typed error carrying the diagnostic detail that can be
// extracted with errors.As:
//
//   - ErrCulture / *CultureError: the locale tag of a file is not recognized
//   - ErrHeaderFormat / *HeaderFormatError: a header line is missing, mislabelled or malformed
//   - ErrNumberParse / *NumberParseError: a body token is not a culture-formatted number
//   - ErrIO / *IOError: the file could not be opened, read or written
//   - ErrUnsupportedFormat / *UnsupportedFormatError: the file extension is not handled
//
// A truncated binary sample section is not an error and has no class here.
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrCulture           = errors.New("unrecognized culture")
	ErrHeaderFormat      = errors.New("invalid file header")
	ErrNumberParse       = errors.New("invalid numeric value")
	ErrIO                = errors.New("file i/o failure")
	ErrUnsupportedFormat = errors.New("unsupported file format")

	ErrInvalidDataset  = errors.New("invalid signal dataset")
	ErrInvalidSpectrum = errors.New("spectrum slices differ in length")
	ErrInvalidPattern  = errors.New("invalid format pattern")
	ErrSeriesIndex     = errors.New("series index out of range")
	ErrSampleRange     = errors.New("sample range out of bounds")
	ErrTooFewSeries    = errors.New("too few series for format")
	ErrDuplicateLabel  = errors.New("duplicate series label")
)

// CultureError reports a locale tag that cannot be resolved.
type CultureError struct {
	Tag string
	Err error
}

func (e *CultureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("culture %q is not supported: %v", e.Tag, e.Err)
	}

	return fmt.Sprintf("culture %q is not supported", e.Tag)
}

func (e *CultureError) Is(target error) bool { return target == ErrCulture }

func (e *CultureError) Unwrap() error { return e.Err }

// HeaderFormatError reports the first header violation found while scanning.
//
// Field is the English name of the offending header field (e.g. "Number of data points"),
// Line the 1-based line number (0 for binary files) and Detail an optional explanation.
type HeaderFormatError struct {
	Field  string
	Line   int
	Detail string
	Err    error
}

func (e *HeaderFormatError) Error() string {
	msg := fmt.Sprintf("header field %q", e.Field)
	if e.Line > 0 {
		msg += fmt.Sprintf(" (line %d)", e.Line)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *HeaderFormatError) Is(target error) bool { return target == ErrHeaderFormat }

func (e *HeaderFormatError) Unwrap() error { return e.Err }

// NumberParseError reports a body token that failed numeric parsing.
type NumberParseError struct {
	Token  string
	Line   int
	Column int
}

func (e *NumberParseError) Error() string {
	return fmt.Sprintf("cannot parse %q as a number (line %d, column %d)", e.Token, e.Line, e.Column+1)
}

func (e *NumberParseError) Is(target error) bool { return target == ErrNumberParse }

// IOError wraps an operating system failure with the path it happened on.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Is(target error) bool { return target == ErrIO }

func (e *IOError) Unwrap() error { return e.Err }

// UnsupportedFormatError reports a file extension with no reader or writer.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("no reader for %q files", e.Extension)
}

func (e *UnsupportedFormatError) Is(target error) bool { return target == ErrUnsupportedFormat }

// Header builds a HeaderFormatError for field at line.
func Header(field string, line int, detail string) error {
	return &HeaderFormatError{Field: field, Line: line, Detail: detail}
}

// HeaderWrap builds a HeaderFormatError for field at line caused by err.
func HeaderWrap(field string, line int, err error) error {
	return &HeaderFormatError{Field: field, Line: line, Err: err}
}
