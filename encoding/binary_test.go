package encoding

import (
	"bytes"
	"io"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/luxsig/endian"
)

func TestTicks(t *testing.T) {
	t.Run("epoch", func(t *testing.T) {
		require.Equal(t, int64(0), TimeToTicks(time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("unix epoch", func(t *testing.T) {
		require.Equal(t, int64(621355968000000000), TimeToTicks(time.Unix(0, 0).UTC()))
	})

	t.Run("round trip keeps 100ns precision", func(t *testing.T) {
		ts := time.Date(2024, time.June, 3, 9, 15, 2, 123456700, time.UTC)
		got, err := TicksToTime(TimeToTicks(ts))
		require.NoError(t, err)
		require.True(t, ts.Equal(got))
	})

	t.Run("wall clock ignores location", func(t *testing.T) {
		zone := time.FixedZone("CET", 3600)
		local := time.Date(2024, time.June, 3, 9, 0, 0, 0, zone)
		utc := time.Date(2024, time.June, 3, 9, 0, 0, 0, time.UTC)
		require.Equal(t, TimeToTicks(utc), TimeToTicks(local))
	})

	t.Run("kind bits are masked", func(t *testing.T) {
		ts := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
		utcKind := TimeToTicks(ts) | 1<<62
		got, err := TicksToTime(utcKind)
		require.NoError(t, err)
		require.True(t, ts.Equal(got))
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := TicksToTime(MaxTicks + 1)
		require.ErrorIs(t, err, ErrDateTimeRange)
	})
}

func TestBinaryWriter_Layout(t *testing.T) {
	w := NewBinaryWriter(endian.GetLittleEndianEngine())
	defer w.Finish()

	w.WriteString("ab")
	w.WriteInt32(-2)
	w.WriteFloat64(1.5)

	want := []byte{
		0x02, 'a', 'b',
		0xFE, 0xFF, 0xFF, 0xFF,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xF8, 0x3F,
	}
	require.Equal(t, want, w.Bytes())
	require.Equal(t, len(want), w.Len())

	var out bytes.Buffer
	n, err := w.WriteTo(&out)
	require.NoError(t, err)
	require.EqualValues(t, len(want), n)
}

func TestBinaryWriter_LongStringPrefix(t *testing.T) {
	w := NewBinaryWriter(endian.GetLittleEndianEngine())
	defer w.Finish()

	w.WriteString(strings.Repeat("x", 300))
	require.Equal(t, []byte{0xAC, 0x02}, w.Bytes()[:2])
	require.Equal(t, 302, w.Len())
}

func TestBinary_RoundTrip(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	ts := time.Date(2023, time.March, 14, 15, 9, 26, 535_000_000, time.UTC)

	w := NewBinaryWriter(engine)
	defer w.Finish()
	w.WriteString("SignalAnalysis data (es-ES)")
	w.WriteString("")
	w.WriteString("Día\tSensor ñ")
	w.WriteDateTime(ts)
	w.WriteInt32(math.MaxInt32)
	w.WriteInt64(math.MinInt64)
	w.WriteFloat64(math.Inf(-1))

	r := NewBinaryReader(w.Bytes(), engine)

	s, err := r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "SignalAnalysis data (es-ES)", s)

	s, err = r.ReadString()
	require.NoError(t, err)
	require.Empty(t, s)

	s, err = r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "Día\tSensor ñ", s)

	got, err := r.ReadDateTime()
	require.NoError(t, err)
	require.True(t, ts.Equal(got))

	i32, err := r.ReadInt32()
	require.NoError(t, err)
	require.Equal(t, int32(math.MaxInt32), i32)

	i64, err := r.ReadInt64()
	require.NoError(t, err)
	require.Equal(t, int64(math.MinInt64), i64)

	f, err := r.ReadFloat64()
	require.NoError(t, err)
	require.True(t, math.IsInf(f, -1))

	require.Zero(t, r.Remaining())
	_, err = r.ReadFloat64()
	require.ErrorIs(t, err, io.EOF)
}

func TestBinaryReader_Truncation(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	t.Run("partial field", func(t *testing.T) {
		r := NewBinaryReader([]byte{1, 2, 3}, engine)
		_, err := r.ReadInt32()
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
		require.True(t, IsEndOfData(err))
		require.Equal(t, 0, r.Offset())
	})

	t.Run("empty input", func(t *testing.T) {
		r := NewBinaryReader(nil, engine)
		_, err := r.ReadString()
		require.ErrorIs(t, err, io.EOF)
		require.True(t, IsEndOfData(err))
	})

	t.Run("string shorter than prefix", func(t *testing.T) {
		r := NewBinaryReader([]byte{5, 'a', 'b'}, engine)
		_, err := r.ReadString()
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("unterminated length", func(t *testing.T) {
		r := NewBinaryReader([]byte{0x80, 0x80}, engine)
		_, err := r.ReadString()
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("overlong length", func(t *testing.T) {
		r := NewBinaryReader([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01}, engine)
		_, err := r.ReadString()
		require.ErrorIs(t, err, ErrInvalidLength)
		require.False(t, IsEndOfData(err))
	})
}
