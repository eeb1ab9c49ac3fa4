package encoding

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/arloliu/luxsig/endian"
	"github.com/arloliu/luxsig/internal/pool"
)

const (
	// TicksPerSecond is the number of 100ns date-time ticks in one second.
	TicksPerSecond = 10_000_000

	// MaxTicks is the tick count of 9999-12-31 23:59:59.9999999.
	MaxTicks = 3_155_378_975_999_999_999

	// ticksMask drops the two date-time kind bits stored in the high end of a tick value.
	ticksMask = 0x3FFF_FFFF_FFFF_FFFF

	// unixEpochSeconds is the offset in seconds between 0001-01-01 and 1970-01-01.
	unixEpochSeconds = 62_135_596_800

	maxStringLength = math.MaxInt32
)

var (
	ErrInvalidLength = errors.New("invalid 7-bit encoded string length")
	ErrDateTimeRange = errors.New("date-time ticks out of range")
)

// TimeToTicks converts the wall clock of t to 100ns ticks since 0001-01-01.
//
// The location of t is ignored: 09:00 in any zone encodes as 09:00.
func TimeToTicks(t time.Time) int64 {
	wall := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)

	return (wall.Unix()+unixEpochSeconds)*TicksPerSecond + int64(wall.Nanosecond()/100)
}

// TicksToTime converts a stored date-time value to a UTC time.
//
// The kind bits are masked off before conversion.
func TicksToTime(v int64) (time.Time, error) {
	ticks := v & ticksMask
	if ticks > MaxTicks {
		return time.Time{}, fmt.Errorf("%w: %d", ErrDateTimeRange, ticks)
	}

	return time.Unix(ticks/TicksPerSecond-unixEpochSeconds, (ticks%TicksPerSecond)*100).UTC(), nil
}

// BinaryWriter appends little-endian fields in the layout of a .NET BinaryWriter.
//
// Strings are UTF-8 with a 7-bit encoded length prefix, date-times are int64 ticks
// and numbers are fixed-width. The writer uses a pooled buffer; call Finish to
// return it once Bytes is no longer needed.
type BinaryWriter struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
}

// NewBinaryWriter creates a writer using the specified endian engine.
func NewBinaryWriter(engine endian.EndianEngine) *BinaryWriter {
	return &BinaryWriter{
		engine: engine,
		buf:    pool.GetFileBuffer(),
	}
}

// WriteString writes s with a 7-bit encoded byte length prefix.
// Invalid UTF-8 sequences are replaced with U+FFFD.
func (w *BinaryWriter) WriteString(s string) {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "\uFFFD")
	}

	w.buf.Grow(5 + len(s))
	n := uint32(len(s)) //nolint:gosec
	for n >= 0x80 {
		w.buf.B = append(w.buf.B, byte(n)|0x80)
		n >>= 7
	}
	w.buf.B = append(w.buf.B, byte(n))
	w.buf.B = append(w.buf.B, s...)
}

// WriteInt32 writes v as 4 bytes.
func (w *BinaryWriter) WriteInt32(v int32) {
	w.buf.Grow(4)
	w.buf.B = w.engine.AppendUint32(w.buf.B, uint32(v)) //nolint:gosec
}

// WriteInt64 writes v as 8 bytes.
func (w *BinaryWriter) WriteInt64(v int64) {
	w.buf.Grow(8)
	w.buf.B = w.engine.AppendUint64(w.buf.B, uint64(v)) //nolint:gosec
}

// WriteFloat64 writes the IEEE-754 bits of v as 8 bytes.
func (w *BinaryWriter) WriteFloat64(v float64) {
	w.buf.Grow(8)
	w.buf.B = w.engine.AppendUint64(w.buf.B, math.Float64bits(v))
}

// WriteDateTime writes the wall clock of t as 8-byte ticks with no kind bits.
func (w *BinaryWriter) WriteDateTime(t time.Time) {
	w.WriteInt64(TimeToTicks(t))
}

// Bytes returns the encoded data. The slice is valid until Finish.
func (w *BinaryWriter) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written.
func (w *BinaryWriter) Len() int {
	return w.buf.Len()
}

// WriteTo writes the encoded data to dst.
func (w *BinaryWriter) WriteTo(dst io.Writer) (int64, error) {
	return w.buf.WriteTo(dst)
}

// Finish returns the internal buffer to the pool. The writer must not be used afterwards.
func (w *BinaryWriter) Finish() {
	if w.buf != nil {
		pool.PutFileBuffer(w.buf)
		w.buf = nil
	}
}

// BinaryReader decodes the fields written by BinaryWriter from an in-memory file.
//
// A read at the end of the data returns io.EOF; a read that finds only part of its
// field returns io.ErrUnexpectedEOF. In both cases the read position is unchanged.
type BinaryReader struct {
	data   []byte
	off    int
	engine endian.EndianEngine
}

// NewBinaryReader creates a reader over data using the specified endian engine.
func NewBinaryReader(data []byte, engine endian.EndianEngine) *BinaryReader {
	return &BinaryReader{data: data, engine: engine}
}

// Offset returns the current read position.
func (r *BinaryReader) Offset() int {
	return r.off
}

// Remaining returns the number of unread bytes.
func (r *BinaryReader) Remaining() int {
	return len(r.data) - r.off
}

func (r *BinaryReader) take(n int) ([]byte, error) {
	switch rem := r.Remaining(); {
	case rem == 0:
		return nil, io.EOF
	case rem < n:
		return nil, io.ErrUnexpectedEOF
	}

	b := r.data[r.off : r.off+n]
	r.off += n

	return b, nil
}

// ReadString reads a string with a 7-bit encoded byte length prefix.
func (r *BinaryReader) ReadString() (string, error) {
	if r.Remaining() == 0 {
		return "", io.EOF
	}

	var length uint64
	off := r.off
	for shift := 0; ; shift += 7 {
		if shift > 28 {
			return "", ErrInvalidLength
		}
		if off >= len(r.data) {
			return "", io.ErrUnexpectedEOF
		}
		b := r.data[off]
		off++
		length |= uint64(b&0x7F) << shift
		if b < 0x80 {
			break
		}
	}
	if length > maxStringLength {
		return "", fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}
	if uint64(len(r.data)-off) < length {
		return "", io.ErrUnexpectedEOF
	}

	s := string(r.data[off : off+int(length)])
	r.off = off + int(length)
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "\uFFFD")
	}

	return s, nil
}

// ReadInt32 reads a 4-byte signed integer.
func (r *BinaryReader) ReadInt32() (int32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}

	return int32(r.engine.Uint32(b)), nil //nolint:gosec
}

// ReadInt64 reads an 8-byte signed integer.
func (r *BinaryReader) ReadInt64() (int64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}

	return int64(r.engine.Uint64(b)), nil //nolint:gosec
}

// ReadFloat64 reads an 8-byte IEEE-754 value.
func (r *BinaryReader) ReadFloat64() (float64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(r.engine.Uint64(b)), nil
}

// ReadDateTime reads an 8-byte tick value and converts it to UTC.
func (r *BinaryReader) ReadDateTime() (time.Time, error) {
	v, err := r.ReadInt64()
	if err != nil {
		return time.Time{}, err
	}

	return TicksToTime(v)
}

// IsEndOfData reports whether err signals that the data ended inside or before a field.
func IsEndOfData(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
