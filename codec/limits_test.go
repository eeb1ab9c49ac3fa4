package codec

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/luxsig/encoding"
	"github.com/arloliu/luxsig/endian"
	"github.com/arloliu/luxsig/errs"
	"github.com/arloliu/luxsig/format"
	"github.com/arloliu/luxsig/section"
)

func requireHeaderField(t *testing.T, err error, field string) {
	t.Helper()

	require.ErrorIs(t, err, errs.ErrHeaderFormat)

	var herr *errs.HeaderFormatError
	require.ErrorAs(t, err, &herr)
	require.Equal(t, field, herr.Field)
}

// binaryFile encodes the header of h with no sample records.
func binaryFile(t *testing.T, mutate func(h *section.FileHeader)) []byte {
	t.Helper()

	h, err := section.NewFileHeader(format.Binary, newDataset(t, 1, 2), testStats(), "en-US")
	require.NoError(t, err)
	mutate(&h)

	bh, err := section.NewBinaryHeader(h)
	require.NoError(t, err)

	w := encoding.NewBinaryWriter(endian.GetLittleEndianEngine())
	defer w.Finish()
	bh.AppendTo(w, nil)

	return append([]byte(nil), w.Bytes()...)
}

func TestDecode_TextPointLimits(t *testing.T) {
	valid := encodeText(t, format.Legacy, newDataset(t, 4, 3), WithCulture("en-US"))

	tests := []struct {
		name   string
		points string
		opts   []Option
	}{
		{"beyond int32", "4611686018427387905", nil},
		{"beyond int64", "99999999999999999999", nil},
		{"beyond default limit", strconv.Itoa(math.MaxInt32), nil},
		{"beyond configured limit", "3", []Option{WithMaxSamples(11)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := strings.Replace(valid, "Number of data points: 3", "Number of data points: "+tt.points, 1)
			require.NotEqual(t, valid, text)

			var (
				res *Result
				err error
			)
			require.NotPanics(t, func() {
				res, err = Decode([]byte(text), format.Legacy, tt.opts...)
			})
			require.Nil(t, res)
			requireHeaderField(t, err, "Number of data points")
		})
	}

	res, err := Decode([]byte(valid), format.Legacy, WithMaxSamples(12))
	require.NoError(t, err)
	require.Equal(t, 3, res.Dataset.SampleCount)
}

func TestDecode_BinaryPointLimits(t *testing.T) {
	t.Run("huge matrix", func(t *testing.T) {
		data := binaryFile(t, func(h *section.FileHeader) {
			h.PointCount = math.MaxInt32
			h.Labels = make([]string, 20000)
			h.SeriesCount = len(h.Labels)
		})

		var (
			res *Result
			err error
		)
		require.NotPanics(t, func() {
			res, err = Decode(data, format.Binary)
		})
		require.Nil(t, res)
		requireHeaderField(t, err, "Number of data points")
	})

	t.Run("configured limit", func(t *testing.T) {
		data := binaryFile(t, func(h *section.FileHeader) { h.PointCount = 100 })

		_, err := Decode(data, format.Binary, WithMaxSamples(99))
		requireHeaderField(t, err, "Number of data points")

		// within the limit the missing records read as a truncated file
		res, err := Decode(data, format.Binary, WithMaxSamples(100))
		require.NoError(t, err)
		require.True(t, res.Info.Truncated)
		require.Zero(t, res.Info.RowsRead)
	})

	t.Run("span beyond date range", func(t *testing.T) {
		data := binaryFile(t, func(h *section.FileHeader) { h.SampleFrequency = 1e-12 })

		_, err := Decode(data, format.Binary)
		requireHeaderField(t, err, "Sampling frequency")
	})
}

func TestWithMaxSamples_Invalid(t *testing.T) {
	_, err := Decode(nil, format.Legacy, WithMaxSamples(0))
	require.ErrorIs(t, err, errs.ErrSampleRange)
}
