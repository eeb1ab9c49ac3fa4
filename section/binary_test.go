package section

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/luxsig/encoding"
	"github.com/arloliu/luxsig/endian"
	"github.com/arloliu/luxsig/errs"
	"github.com/arloliu/luxsig/format"
	"github.com/arloliu/luxsig/labels"
	"github.com/arloliu/luxsig/signal"
)

func encodeBinaryHeader(t *testing.T, h FileHeader, loc labels.Localizer) []byte {
	t.Helper()

	bh, err := NewBinaryHeader(h)
	require.NoError(t, err)

	w := encoding.NewBinaryWriter(endian.GetLittleEndianEngine())
	defer w.Finish()
	bh.AppendTo(w, loc)

	return append([]byte(nil), w.Bytes()...)
}

func TestBinaryHeader_RoundTrip(t *testing.T) {
	d := newTestDataset(t, "S1", "S2")
	stats := signal.Stats{Average: 1.5, Maximum: 3, Minimum: -1, SampleEntropy: 0.5, IdealEntropy: 7}

	want, err := NewFileHeader(format.Binary, d, stats, "es-ES")
	require.NoError(t, err)

	data := encodeBinaryHeader(t, want, nil)
	r := encoding.NewBinaryReader(data, endian.GetLittleEndianEngine())

	var got BinaryHeader
	require.NoError(t, got.Parse(r))
	require.Zero(t, r.Remaining())

	require.Equal(t, "SignalAnalysis data (es-ES)", got.Tag)
	require.Equal(t, "es-ES", got.CultureName)
	require.Equal(t, int32(2), got.DeclaredSeries)
	require.True(t, want.Start.Equal(got.Start))
	require.True(t, want.End.Equal(got.End))
	require.Equal(t, want.Elapsed, got.Elapsed)
	require.Equal(t, 2, got.SeriesCount)
	require.Equal(t, 3, got.PointCount)
	require.InDelta(t, 10.0, got.SampleFrequency, 0)
	require.Equal(t, stats, got.Stats)
	require.True(t, got.HasStats)
	require.Equal(t, []string{"S1", "S2"}, got.Labels)
}

func TestBinaryHeader_Layout(t *testing.T) {
	d := newTestDataset(t, "S")
	h, err := NewFileHeader(format.Binary, d, signal.Stats{}, "en-US")
	require.NoError(t, err)

	data := encodeBinaryHeader(t, h, nil)

	tag := "SignalAnalysis data (en-US)"
	require.Equal(t, byte(len(tag)), data[0])
	require.Equal(t, tag, string(data[1:1+len(tag)]))

	// tag, 2 date-times, 7 int32, frequency, 10 stats, "Time\tS"
	require.Len(t, data, 1+len(tag)+2*8+7*4+8+10*8+1+len("Time\tS"))
}

func TestBinaryHeader_SeriesFromLabels(t *testing.T) {
	d := newTestDataset(t, "A", "B", "C")
	h, err := NewFileHeader(format.Binary, d, signal.Stats{}, "en-US")
	require.NoError(t, err)

	bh, err := NewBinaryHeader(h)
	require.NoError(t, err)
	bh.DeclaredSeries = 1 // written value is ignored

	w := encoding.NewBinaryWriter(endian.GetLittleEndianEngine())
	defer w.Finish()
	bh.AppendTo(w, nil)

	var got BinaryHeader
	require.NoError(t, got.Parse(encoding.NewBinaryReader(w.Bytes(), endian.GetLittleEndianEngine())))
	require.Equal(t, 3, got.SeriesCount)
	require.Equal(t, int32(1), got.DeclaredSeries)
}

func TestBinaryHeader_Truncated(t *testing.T) {
	d := newTestDataset(t, "S")
	h, err := NewFileHeader(format.Binary, d, signal.Stats{}, "en-US")
	require.NoError(t, err)
	data := encodeBinaryHeader(t, h, nil)

	tagLen := 1 + len("SignalAnalysis data (en-US)")

	tests := []struct {
		name  string
		size  int
		field string
	}{
		{"empty", 0, "SignalAnalysis data"},
		{"inside tag", 5, "SignalAnalysis data"},
		{"inside start", tagLen + 3, "Start time"},
		{"before points", tagLen + 16 + 6*4, "Number of data points"},
		{"inside stats", tagLen + 16 + 7*4 + 8 + 4*8 + 2, "Fractal variance"},
		{"before labels", len(data) - len("Time\tS") - 1, "Missing column labels"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got BinaryHeader
			err := got.Parse(encoding.NewBinaryReader(data[:tt.size], endian.GetLittleEndianEngine()))
			requireHeaderField(t, err, tt.field, 0)
			require.ErrorIs(t, err, io.ErrUnexpectedEOF)
		})
	}
}

func TestBinaryHeader_Invalid(t *testing.T) {
	w := encoding.NewBinaryWriter(endian.GetLittleEndianEngine())
	defer w.Finish()
	w.WriteString("ErgoLux data (en-US)")

	var got BinaryHeader
	err := got.Parse(encoding.NewBinaryReader(w.Bytes(), endian.GetLittleEndianEngine()))
	requireHeaderField(t, err, "SignalAnalysis data", 0)

	d := newTestDataset(t, "S")
	h, err := NewFileHeader(format.Binary, d, signal.Stats{}, "en-US")
	require.NoError(t, err)

	h.PointCount = 0
	err = got.Parse(encoding.NewBinaryReader(encodeBinaryHeader(t, h, nil), endian.GetLittleEndianEngine()))
	requireHeaderField(t, err, "Number of data points", 0)

	h.PointCount = 3
	h.SampleFrequency = -1
	err = got.Parse(encoding.NewBinaryReader(encodeBinaryHeader(t, h, nil), endian.GetLittleEndianEngine()))
	requireHeaderField(t, err, "Sampling frequency", 0)

	h.SampleFrequency = 10
	h.Labels = nil
	data := encodeBinaryHeader(t, h, nil)
	// "Time\t" with no labels: rewrite the row as "Time"
	data = append(data[:len(data)-len("Time\t")-1], byte(len("Time")))
	data = append(data, "Time"...)
	err = got.Parse(encoding.NewBinaryReader(data, endian.GetLittleEndianEngine()))
	requireHeaderField(t, err, "Missing column labels", 0)
}

func TestBinaryHeader_LocalizedTag(t *testing.T) {
	d := newTestDataset(t, "S")
	h, err := NewFileHeader(format.Binary, d, signal.Stats{}, "es-ES")
	require.NoError(t, err)

	data := encodeBinaryHeader(t, h, labels.Spanish)

	var got BinaryHeader
	err = got.Parse(encoding.NewBinaryReader(data, endian.GetLittleEndianEngine()))
	require.ErrorIs(t, err, errs.ErrHeaderFormat)

	require.NoError(t, got.Parse(encoding.NewBinaryReader(data, endian.GetLittleEndianEngine()),
		WithLocalizer(labels.Spanish), WithUICulture("es-ES")))
	require.Equal(t, "Datos SignalAnalysis (es-ES)", got.Tag)
	require.Equal(t, []string{"S"}, got.Labels)
}

func TestNewBinaryHeader_WrongFormat(t *testing.T) {
	_, err := NewBinaryHeader(FileHeader{Format: format.PlainText})
	require.ErrorIs(t, err, errs.ErrUnsupportedFormat)
}
