package encoding

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/luxsig/culture"
	"github.com/arloliu/luxsig/errs"
	"github.com/arloliu/luxsig/internal/pool"
)

func TestLineReader(t *testing.T) {
	lr := NewLineReader(strings.NewReader("\uFEFFfirst\r\nsecond\n\r\nlast"))

	var got []string
	for {
		s, ok, err := lr.ReadLine()
		require.NoError(t, err)
		if !ok {
			break
		}
		got = append(got, s)
	}

	require.Equal(t, []string{"first", "second", "", "last"}, got)
	require.Equal(t, 4, lr.Line())
}

func TestLineReader_TrailingTerminator(t *testing.T) {
	lr := NewLineReader(strings.NewReader("a\r\n"))

	s, ok, err := lr.ReadLine()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "a", s)

	_, ok, err = lr.ReadLine()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestBodyDecoder_Fill(t *testing.T) {
	t.Run("without time column", func(t *testing.T) {
		lr := NewLineReader(strings.NewReader("1\t2\r\n3,5\t4\r\n"))
		dec := NewBodyDecoder(lr, culture.MustResolve("es-ES"), false)

		series := [][]float64{make([]float64, 2), make([]float64, 2)}
		rows, err := dec.Fill(series)
		require.NoError(t, err)
		require.Equal(t, 2, rows)
		require.Equal(t, [][]float64{{1, 3.5}, {2, 4}}, series)
	})

	t.Run("time column skipped", func(t *testing.T) {
		body := "Monday, June 3, 2024 9:15:02.000 AM\t1,000.5\n" +
			"Monday, June 3, 2024 9:15:02.100 AM\t2\n"
		dec := NewBodyDecoder(NewLineReader(strings.NewReader(body)), culture.MustResolve("en-US"), true)

		series := [][]float64{make([]float64, 3)}
		rows, err := dec.Fill(series)
		require.NoError(t, err)
		require.Equal(t, 2, rows)
		require.Equal(t, []float64{1000.5, 2, 0}, series[0])
	})

	t.Run("short rows keep zeros", func(t *testing.T) {
		dec := NewBodyDecoder(NewLineReader(strings.NewReader("7\n")), culture.Invariant(), false)

		series := [][]float64{make([]float64, 2), make([]float64, 2)}
		rows, err := dec.Fill(series)
		require.NoError(t, err)
		require.Equal(t, 1, rows)
		require.Equal(t, [][]float64{{7, 0}, {0, 0}}, series)
	})

	t.Run("too many rows", func(t *testing.T) {
		dec := NewBodyDecoder(NewLineReader(strings.NewReader("1\n2\n3\n")), culture.Invariant(), false)

		series := [][]float64{make([]float64, 2)}
		rows, err := dec.Fill(series)
		require.ErrorIs(t, err, errs.ErrHeaderFormat)
		require.Equal(t, 2, rows)

		var herr *errs.HeaderFormatError
		require.ErrorAs(t, err, &herr)
		require.Equal(t, 3, herr.Line)
		require.Equal(t, "Number of data points", herr.Field)
	})

	t.Run("too many columns", func(t *testing.T) {
		dec := NewBodyDecoder(NewLineReader(strings.NewReader("1\t2\t3\n")), culture.Invariant(), false)

		series := [][]float64{make([]float64, 2), make([]float64, 2)}
		_, err := dec.Fill(series)

		var herr *errs.HeaderFormatError
		require.ErrorAs(t, err, &herr)
		require.Equal(t, "Number of data series", herr.Field)
	})

	t.Run("bad token", func(t *testing.T) {
		dec := NewBodyDecoder(NewLineReader(strings.NewReader("1\t2\n3\tabc\n5\t6\n")), culture.Invariant(), false)

		series := [][]float64{make([]float64, 3), make([]float64, 3)}
		rows, err := dec.Fill(series)
		require.ErrorIs(t, err, errs.ErrNumberParse)
		require.Equal(t, 1, rows)

		var nerr *errs.NumberParseError
		require.ErrorAs(t, err, &nerr)
		require.Equal(t, "abc", nerr.Token)
		require.Equal(t, 2, nerr.Line)
		require.Equal(t, 1, nerr.Column)

		// rows before the failing line stay populated
		require.Equal(t, []float64{1, 0, 0}, series[0])
		require.Equal(t, []float64{2, 0, 0}, series[1])
	})

	t.Run("empty line is a bad token", func(t *testing.T) {
		dec := NewBodyDecoder(NewLineReader(strings.NewReader("1\n\n")), culture.Invariant(), false)
		_, err := dec.Fill([][]float64{make([]float64, 3)})
		require.ErrorIs(t, err, errs.ErrNumberParse)
	})
}

func TestBodyDecoder_All(t *testing.T) {
	lr := NewLineReader(strings.NewReader("1\n2\n3\n4\n"))
	dec := NewBodyDecoder(lr, culture.Invariant(), false)

	var first []BodyRow
	for row, err := range dec.All() {
		require.NoError(t, err)
		first = append(first, row)
		if len(first) == 2 {
			break
		}
	}
	require.Len(t, first, 2)
	require.Equal(t, BodyRow{Index: 1, Line: 2, Values: []float64{2}}, first[1])

	// a new call continues from the reader position with indices from zero
	var rest []BodyRow
	for row, err := range dec.All() {
		require.NoError(t, err)
		rest = append(rest, row)
	}
	require.Len(t, rest, 2)
	require.Equal(t, BodyRow{Index: 0, Line: 3, Values: []float64{3}}, rest[0])
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestBodyDecoder_ReaderError(t *testing.T) {
	dec := NewBodyDecoder(NewLineReader(failingReader{}), culture.Invariant(), false)
	_, err := dec.Fill([][]float64{make([]float64, 1)})
	require.EqualError(t, err, "disk gone")
}

func TestBodyEncoder(t *testing.T) {
	start := time.Date(2024, time.June, 3, 9, 15, 2, 0, time.UTC)

	t.Run("three samples at 10 Hz", func(t *testing.T) {
		c := culture.MustResolve("en-GB")
		enc, err := NewBodyEncoder(c, "0.##", WithTimestamps(start, 10, c.FullDateTimePattern()))
		require.NoError(t, err)

		buf := pool.NewByteBuffer(64)
		require.NoError(t, enc.Encode(buf, [][]float64{{1, 2.556, 3}}))

		lines := strings.Split(strings.TrimSuffix(string(buf.Bytes()), "\r\n"), "\r\n")
		require.Equal(t, []string{
			"Monday, 3 June 2024 09:15:02.000\t1",
			"Monday, 3 June 2024 09:15:02.100\t2.56",
			"Monday, 3 June 2024 09:15:02.200\t3",
		}, lines)
	})

	t.Run("values only", func(t *testing.T) {
		enc, err := NewBodyEncoder(culture.MustResolve("de-DE"), "0.0", WithLineEnding("\n"))
		require.NoError(t, err)

		var sb strings.Builder
		require.NoError(t, enc.Encode(&sb, [][]float64{{1.26, 2}, {-3, 4.74}}))
		require.Equal(t, "1,3\t-3,0\n2,0\t4,7\n", sb.String())
	})

	t.Run("ragged rows", func(t *testing.T) {
		enc, err := NewBodyEncoder(culture.Invariant(), "")
		require.NoError(t, err)

		var sb strings.Builder
		require.ErrorIs(t, enc.Encode(&sb, [][]float64{{1, 2}, {3}}), errs.ErrInvalidDataset)
	})

	t.Run("invalid options", func(t *testing.T) {
		_, err := NewBodyEncoder(culture.Invariant(), "0.#0")
		require.ErrorIs(t, err, errs.ErrInvalidPattern)

		_, err = NewBodyEncoder(culture.Invariant(), "", WithTimestamps(start, 0, "HH:mm"))
		require.ErrorIs(t, err, errs.ErrInvalidDataset)

		_, err = NewBodyEncoder(culture.Invariant(), "", WithTimestamps(start, 1, "'bad"))
		require.ErrorIs(t, err, errs.ErrInvalidPattern)
	})
}

func TestBody_RoundTrip(t *testing.T) {
	c := culture.MustResolve("fr-FR")
	start := time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC)
	series := [][]float64{{1234.5, -0.25, 3}, {0, 1e-3, 98765.4321}}

	enc, err := NewBodyEncoder(c, "#,##0.########", WithTimestamps(start, 4, c.FullDateTimePattern()))
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, enc.Encode(&sb, series))

	got := [][]float64{make([]float64, 3), make([]float64, 3)}
	rows, err := NewBodyDecoder(NewLineReader(strings.NewReader(sb.String())), c, true).Fill(got)
	require.NoError(t, err)
	require.Equal(t, 3, rows)
	for i := range series {
		require.InDeltaSlice(t, series[i], got[i], 1e-9)
	}
}
