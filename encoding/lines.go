package encoding

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

const byteOrderMark = "\uFEFF"

// LineReader reads text lines terminated by LF or CRLF.
//
// A UTF-8 byte-order mark at the start of the first line is dropped. A final line
// without a terminator is returned like any other line; an empty remainder after
// the last terminator is not a line.
type LineReader struct {
	r    *bufio.Reader
	line int
}

// NewLineReader wraps r. Readers that are already *bufio.Reader are used as-is.
func NewLineReader(r io.Reader) *LineReader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}

	return &LineReader{r: br}
}

// ReadLine returns the next line without its terminator.
//
// ok is false at end of input. err is non-nil only for failures of the underlying reader.
func (lr *LineReader) ReadLine() (text string, ok bool, err error) {
	s, err := lr.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false, err
	}
	if s == "" {
		return "", false, nil
	}

	lr.line++
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")
	if lr.line == 1 {
		s = strings.TrimPrefix(s, byteOrderMark)
	}

	return s, true, nil
}

// Line returns the 1-based number of the last line returned by ReadLine.
func (lr *LineReader) Line() int {
	return lr.line
}
