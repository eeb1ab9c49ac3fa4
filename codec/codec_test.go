package codec

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/luxsig/culture"
	"github.com/arloliu/luxsig/errs"
	"github.com/arloliu/luxsig/format"
	"github.com/arloliu/luxsig/labels"
	"github.com/arloliu/luxsig/signal"
)

var testStart = time.Date(2024, time.March, 5, 14, 7, 9, 250_000_000, time.UTC)

func newDataset(t *testing.T, series, samples int) *signal.Dataset {
	t.Helper()

	names := make([]string, series)
	for i := range names {
		names[i] = "Sensor " + string(rune('A'+i))
	}

	d, err := signal.NewDataset(names, samples, 10, testStart)
	require.NoError(t, err)

	for i, row := range d.Series {
		for j := range row {
			row[j] = float64(i*100+j) + 0.25
		}
	}

	return d
}

func testStats() signal.Stats {
	return signal.Stats{
		Average:          1.5,
		Maximum:          3.25,
		Minimum:          -0.75,
		FractalDimension: 1.125,
		IdealEntropy:     6,
	}
}

func requireSameDataset(t *testing.T, want, got *signal.Dataset) {
	t.Helper()

	require.Equal(t, want.SeriesCount, got.SeriesCount)
	require.Equal(t, want.SampleCount, got.SampleCount)
	require.InDelta(t, want.SampleFrequency, got.SampleFrequency, 0)
	require.Equal(t, want.Labels, got.Labels)
	require.Equal(t, want.Series, got.Series)
}

func TestReadWrite_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		culture string
		series  int
	}{
		{"plain text en-US", "data.txt", "en-US", 2},
		{"plain text es-ES", "data.txt", "es-ES", 3},
		{"legacy de-DE", "data.sig", "de-DE", 1},
		{"elux en-GB", "data.elux", "en-GB", 8},
		{"binary fr-FR", "data.bin", "fr-FR", 2},
		{"zstd plain text", "data.txt.zst", "en-US", 2},
		{"s2 legacy", "data.sig.s2", "es-ES", 2},
		{"lz4 binary", "data.bin.lz4", "en-US", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			path := filepath.Join(t.TempDir(), tt.file)
			d := newDataset(t, tt.series, 5)

			require.NoError(t, WriteFile(ctx, path, d, WithCulture(tt.culture), WithStats(testStats())))

			res, err := ReadFile(ctx, path, WithCulture(tt.culture))
			require.NoError(t, err)
			requireSameDataset(t, d, res.Dataset)
			require.Equal(t, tt.culture, res.Info.CultureName)
			require.Equal(t, path, res.Info.Path)
			require.False(t, res.Info.Truncated)

			f, _, compression := format.Detect(path)
			require.Equal(t, f, res.Info.Format)
			require.Equal(t, compression, res.Info.Compression)

			if f.HasTimestamps() {
				require.True(t, d.Start.Equal(res.Dataset.Start), "start %v", res.Dataset.Start)
			}
			if f.HasStats() {
				require.Equal(t, testStats(), res.Stats)
			}
		})
	}
}

func TestReadFile_StatsFromOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.sig")
	require.NoError(t, WriteFile(context.Background(), path, newDataset(t, 1, 3), WithStats(testStats())))

	res, err := ReadFile(context.Background(), path)
	require.NoError(t, err)
	require.Zero(t, res.Stats)

	res, err = ReadFile(context.Background(), path, WithStats(signal.Stats{Average: 9}))
	require.NoError(t, err)
	require.InDelta(t, 9.0, res.Stats.Average, 0)
}

func encodeText(t *testing.T, f format.FileFormat, d *signal.Dataset, opts ...Option) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, f, d, opts...))

	return buf.String()
}

func TestEncode_PlainTextLayout(t *testing.T) {
	c := culture.MustResolve("en-US")
	d := newDataset(t, 1, 3)

	text := encodeText(t, format.PlainText, d, WithCulture("en-US"))
	require.True(t, strings.HasPrefix(text, "\uFEFFSignalAnalysis data (en-US)\r\n"))
	require.True(t, strings.HasSuffix(text, "\r\n"))

	lines := strings.Split(strings.TrimSuffix(text, "\r\n"), "\r\n")
	require.Contains(t, lines, "Number of data points: 3")
	require.Contains(t, lines, "Sampling frequency: 10")

	body := lines[len(lines)-3:]
	require.Equal(t, "Time\tSensor A", lines[len(lines)-4])
	for k, line := range body {
		ts := c.MustFormatTime(testStart.Add(time.Duration(k)*100*time.Millisecond), c.FullDateTimePattern())
		require.Equal(t, ts+"\t"+[]string{"0.25", "1.25", "2.25"}[k], line)
	}
}

func TestEncode_DataFormat(t *testing.T) {
	d, err := signal.NewDataset([]string{"S"}, 2, 1, testStart)
	require.NoError(t, err)
	d.Series[0][0] = 1234.5678
	d.Series[0][1] = 0.1

	text := encodeText(t, format.Legacy, d, WithCulture("es-ES"), WithDataFormat("0.00"))
	require.True(t, strings.HasSuffix(text, "S\r\n1234,57\r\n0,10\r\n"))
}

func TestEncode_ELux(t *testing.T) {
	d := newDataset(t, 8, 2)
	text := encodeText(t, format.ELux, d, WithCulture("en-US"))
	require.Contains(t, text, "\r\nNumber of sensors: 2\r\n")
	require.True(t, strings.HasPrefix(text, "\uFEFFErgoLux data (en-US)\r\n"))

	res, err := Decode([]byte(text), format.ELux, WithCulture("en-US"))
	require.NoError(t, err)
	require.Equal(t, 8, res.Dataset.SeriesCount)
	require.Len(t, res.Dataset.Labels, 8)
	require.Equal(t, 2, res.Info.RowsRead)

	var buf bytes.Buffer
	err = Encode(&buf, format.ELux, newDataset(t, 6, 2))
	require.ErrorIs(t, err, errs.ErrTooFewSeries)
}

func TestEncode_Localized(t *testing.T) {
	d := newDataset(t, 1, 2)
	text := encodeText(t, format.Legacy, d, WithCulture("es-ES"), WithLocalizer(labels.Spanish))
	require.True(t, strings.HasPrefix(text, "\uFEFF"+labels.Lookup(labels.Spanish, labels.SignalData, "es-ES")+" (es-ES)\r\n"))

	_, err := Decode([]byte(text), format.Legacy)
	require.ErrorIs(t, err, errs.ErrHeaderFormat)

	res, err := Decode([]byte(text), format.Legacy, WithLocalizer(labels.Spanish), WithUICulture("es-ES"))
	require.NoError(t, err)
	require.Equal(t, d.Series, res.Dataset.Series)
}

func TestDecode_HeaderViolations(t *testing.T) {
	valid := encodeText(t, format.PlainText, newDataset(t, 2, 3), WithCulture("en-US"))

	tests := []struct {
		name  string
		from  string
		to    string
		field string
	}{
		{"zero points", "Number of data points: 3", "Number of data points: 0", "Number of data points"},
		{"negative series", "Number of data series: 2", "Number of data series: -2", "Number of data series"},
		{"zero frequency", "Sampling frequency: 10", "Sampling frequency: 0", "Sampling frequency"},
		{"label count", "Time\tSensor A\tSensor B", "Time\tSensor A", "Number of data series"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := strings.Replace(valid, tt.from, tt.to, 1)
			require.NotEqual(t, valid, text)

			res, err := Decode([]byte(text), format.PlainText)
			require.Nil(t, res)
			require.ErrorIs(t, err, errs.ErrHeaderFormat)

			var herr *errs.HeaderFormatError
			require.ErrorAs(t, err, &herr)
			require.Equal(t, tt.field, herr.Field)
		})
	}
}

func TestDecode_BadToken(t *testing.T) {
	text := encodeText(t, format.Legacy, newDataset(t, 2, 3), WithCulture("en-US"))
	text = strings.Replace(text, "\t101.25\r\n", "\t1x1.25\r\n", 1)

	_, err := Decode([]byte(text), format.Legacy)
	require.ErrorIs(t, err, errs.ErrNumberParse)

	var perr *errs.NumberParseError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, "1x1.25", perr.Token)
	require.Equal(t, 1, perr.Column)
}

func TestDecode_ShortBody(t *testing.T) {
	text := encodeText(t, format.Legacy, newDataset(t, 1, 3), WithCulture("en-US"))
	text = strings.TrimSuffix(text, "2.25\r\n")

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	res, err := Decode([]byte(text), format.Legacy, WithLogger(logger))
	require.NoError(t, err)
	require.Equal(t, 2, res.Info.RowsRead)
	require.Equal(t, []float64{0.25, 1.25, 0}, res.Dataset.Series[0])
	require.Contains(t, logs.String(), "shorter than declared")
}

func TestDecode_DuplicateLabels(t *testing.T) {
	d := newDataset(t, 2, 2)
	d.Labels[1] = d.Labels[0]
	text := encodeText(t, format.Legacy, d, WithCulture("en-US"))

	var logs bytes.Buffer
	res, err := Decode([]byte(text), format.Legacy, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	require.NoError(t, err)
	require.Equal(t, []string{"Sensor A", "Sensor A"}, res.Dataset.Labels)
	require.Contains(t, logs.String(), "ambiguous series labels")
}

func TestDecode_UnknownCulture(t *testing.T) {
	text := encodeText(t, format.Legacy, newDataset(t, 1, 3), WithCulture("en-US"))
	text = strings.Replace(text, "(en-US)", "(xx-??)", 1)

	_, err := Decode([]byte(text), format.Legacy)
	require.ErrorIs(t, err, errs.ErrCulture)
}

func TestReadFile_TruncatedBinary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	d := newDataset(t, 2, 4)
	require.NoError(t, WriteFile(context.Background(), path, d, WithCulture("en-US")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// drop the value of the last record and half of its date-time
	require.NoError(t, os.WriteFile(path, data[:len(data)-12], 0o600))

	var logs bytes.Buffer
	res, err := ReadFile(context.Background(), path, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	require.NoError(t, err)
	require.True(t, res.Info.Truncated)
	require.Equal(t, 7, res.Info.RowsRead)
	require.Equal(t, d.Series[0], res.Dataset.Series[0])
	require.Equal(t, d.Series[1][:3], res.Dataset.Series[1][:3])
	require.Zero(t, res.Dataset.Series[1][3])
	require.Contains(t, logs.String(), "truncated")
}

func TestReadFile_TruncatedBinaryHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, WriteFile(context.Background(), path, newDataset(t, 1, 2), WithCulture("en-US")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data[:40], 0o600))

	_, err = ReadFile(context.Background(), path)
	require.ErrorIs(t, err, errs.ErrHeaderFormat)
}

func TestReadFile_Unsupported(t *testing.T) {
	// the directory does not exist, so any I/O attempt would fail with ErrIO
	path := filepath.Join(t.TempDir(), "missing", "data.csv")

	for _, p := range []string{path, path + ".zst", filepath.Join(filepath.Dir(path), "report.results")} {
		res, err := ReadFile(context.Background(), p)
		require.Nil(t, res)
		require.ErrorIs(t, err, errs.ErrUnsupportedFormat)
		require.NotErrorIs(t, err, errs.ErrIO)
	}
}

func TestReadFile_IOErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadFile(context.Background(), filepath.Join(dir, "missing.txt"))
	require.ErrorIs(t, err, errs.ErrIO)

	var ioErr *errs.IOError
	require.ErrorAs(t, err, &ioErr)
	require.Equal(t, "open", ioErr.Op)

	path := filepath.Join(dir, "corrupt.txt.zst")
	require.NoError(t, os.WriteFile(path, []byte("not zstd"), 0o600))
	_, err = ReadFile(context.Background(), path)
	require.ErrorIs(t, err, errs.ErrIO)

	err = WriteFile(context.Background(), filepath.Join(dir, "missing", "out.txt"), newDataset(t, 1, 2))
	require.ErrorIs(t, err, errs.ErrIO)
}

func TestReadWrite_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "data.txt")
	require.ErrorIs(t, WriteFile(ctx, path, newDataset(t, 1, 2)), context.Canceled)
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))

	_, err = ReadFile(ctx, path)
	require.ErrorIs(t, err, context.Canceled)
}

func TestWriteFile_Selection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	d := newDataset(t, 3, 5)

	require.NoError(t, WriteFile(context.Background(), path, d, WithCulture("en-US"), WithSeries(2, 0), WithRange(1, 4)))

	res, err := ReadFile(context.Background(), path, WithCulture("en-US"))
	require.NoError(t, err)
	require.Equal(t, []string{"Sensor C", "Sensor A"}, res.Dataset.Labels)
	require.Equal(t, [][]float64{{201.25, 202.25, 203.25}, {1.25, 2.25, 3.25}}, res.Dataset.Series)
	require.True(t, testStart.Add(100*time.Millisecond).Equal(res.Dataset.Start))

	err = WriteFile(context.Background(), path, d, WithSeries(3))
	require.ErrorIs(t, err, errs.ErrSeriesIndex)

	err = WriteFile(context.Background(), path, d, WithRange(2, 9))
	require.ErrorIs(t, err, errs.ErrSampleRange)
}

func TestWriteFile_UnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, WriteFile(context.Background(), path, newDataset(t, 1, 2), WithCulture("en-US")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	res, err := Decode(data, format.PlainText)
	require.NoError(t, err)
	require.Equal(t, 2, res.Dataset.SampleCount)
}

func TestOptions_Invalid(t *testing.T) {
	var buf bytes.Buffer
	d := newDataset(t, 1, 2)

	require.ErrorIs(t, Encode(&buf, format.PlainText, d, WithCulture("xx-??")), errs.ErrCulture)
	require.ErrorIs(t, Encode(&buf, format.PlainText, d, WithMillisecondsFormat("ss")), errs.ErrInvalidPattern)
	require.ErrorIs(t, Encode(&buf, format.PlainText, d, WithRange(3, 1)), errs.ErrSampleRange)
	require.ErrorIs(t, Encode(&buf, format.PlainText, d, WithSpectrum(signal.Spectrum{Frequencies: []float64{1}})),
		errs.ErrInvalidSpectrum)
	require.ErrorIs(t, Encode(&buf, format.Results, d), errs.ErrUnsupportedFormat)
	require.Zero(t, buf.Len())
}

func TestMillisecondsFormat(t *testing.T) {
	d := newDataset(t, 1, 2)
	text := encodeText(t, format.PlainText, d, WithCulture("en-GB"), WithMillisecondsFormat(":ss.ff"))
	require.Contains(t, text, ":09.25\t0.25\r\n")

	res, err := Decode([]byte(text), format.PlainText, WithMillisecondsFormat(":ss.ff"))
	require.NoError(t, err)
	require.True(t, testStart.Equal(res.Dataset.Start))
}
