// Package section defines the header sections of luxsig files.
//
// Every format starts with a header describing the capture: the culture the file was
// written with, start and end timestamps, the series and point counts, the sampling
// frequency, optionally the ten statistics scalars, and the row of series labels.
// FileHeader is the format-independent record of that header.
//
// # Text Headers
//
// The ELux, Legacy and PlainText formats use a line-oriented header. Each line is
// "<label>: <value>", where the label is localized in the culture named on the first
// line and the value is formatted with that culture:
//
//	SignalAnalysis data (en-US)
//	Start time: Monday, June 3, 2024 9:15:02.000 AM
//	End time: Monday, June 3, 2024 9:15:02.200 AM
//	Total measuring time: 0 days, 0 hours, 0 minutes, 0 seconds and 200 milliseconds
//	Number of data series: 1
//	Number of data points: 3
//	Sampling frequency: 10
//	Average: 2
//	...
//	Ideal entropy: 0
//
//	Time	Sensor 1
//
// The line sequence per format:
//
//	ELux       tag, start, end, duration, sensors (+6 series), points, frequency, blank, labels
//	Legacy     tag, series, points, frequency, blank, labels
//	PlainText  tag, start, end, duration, series, points, frequency, 10 stats, blank, labels
//
// ParseTextHeader scans these lines with a HeaderScanner and reports the first
// violation as *errs.HeaderFormatError (or *errs.CultureError for an unknown
// culture). TextHeaderWriter renders them back with the active culture.
//
// # Binary Header
//
// The ".bin" header is a fixed field sequence written with .NET BinaryWriter
// primitives (see the encoding package):
//
//	string   tag, e.g. "SignalAnalysis data (en-US)"
//	int64    start time (DateTime.ToBinary ticks)
//	int64    end time
//	int32×5  days, hours, minutes, seconds, milliseconds
//	int32    series count (ignored on read)
//	int32    point count
//	float64  sampling frequency
//	float64×10 statistics
//	string   "Time\t<label>\t<label>..."
//
// BinaryHeader.Parse and BinaryHeader.AppendTo read and write this sequence.
package section
