// Package labels provides the localized header labels written to and expected in luxsig files.
//
// Label lookup is an injected dependency: a Localizer maps a Key and a culture name to
// the localized text. Lookup always falls back to the built-in English table, so a nil
// Localizer (or one without an entry) yields the English label.
package labels

// Key identifies one localizable label.
type Key string

const (
	ELuxData           Key = "strFileHeader00"
	SignalData         Key = "strFileHeader01"
	StartTime          Key = "strFileHeader02"
	EndTime            Key = "strFileHeader03"
	TotalTime          Key = "strFileHeader04"
	DataPoints         Key = "strFileHeader05"
	SamplingFrequency  Key = "strFileHeader06"
	Average            Key = "strFileHeader07"
	Maximum            Key = "strFileHeader08"
	Minimum            Key = "strFileHeader09"
	FractalDimension   Key = "strFileHeader10"
	FractalVariance    Key = "strFileHeader11"
	ApproximateEntropy Key = "strFileHeader12"
	SampleEntropy      Key = "strFileHeader13"
	ShannonEntropy     Key = "strFileHeader14"
	EntropyBit         Key = "strFileHeader15"
	IdealEntropy       Key = "strFileHeader16"
	DataSeries         Key = "strFileHeader17"
	Sensors            Key = "strFileHeader18"
	BlankLine          Key = "strFileHeader19"
	LabelRow           Key = "strFileHeader20"
	Time               Key = "strFileHeader21"
	Days               Key = "strFileHeader22"
	Hours              Key = "strFileHeader23"
	Minutes            Key = "strFileHeader24"
	Seconds            Key = "strFileHeader25"
	And                Key = "strFileHeader26"
	Milliseconds       Key = "strFileHeader27"
	FrequencyAxis      Key = "strPlotFFTXLabel"
	MagnitudeAxis      Key = "strPlotFFTYLabelMag"
	PowerAxis          Key = "strPlotFFTYLabelPow"
	AverageIlluminance Key = "strStatsAverage"
	MaximumIlluminance Key = "strStatsMaximum"
	MinimumIlluminance Key = "strStatsMinimum"
	MsgCultureError    Key = "strReadDataErrorCulture"
	MsgHeaderError     Key = "strReadDataError"
	MsgNumberError     Key = "strReadDataErrorNumber"
	MsgOpenError       Key = "strMsgBoxErrorOpenData"
	MsgSaveError       Key = "strMsgBoxErrorSaveData"
	MsgNotImplemented  Key = "strReadNotimplementedError"
	MsgHeaderSection   Key = "strFileHeaderSection"
)

// Localizer returns the localized text of key for the named culture.
// The second result is false when no localized text exists.
type Localizer interface {
	Label(key Key, culture string) (string, bool)
}

// LocalizerFunc adapts a function to the Localizer interface.
type LocalizerFunc func(key Key, culture string) (string, bool)

// Label implements Localizer.
func (f LocalizerFunc) Label(key Key, culture string) (string, bool) {
	return f(key, culture)
}

// Table is a static Localizer keyed by culture name, then by label key.
type Table map[string]map[Key]string

// Label implements Localizer.
func (t Table) Label(key Key, culture string) (string, bool) {
	entries, ok := t[culture]
	if !ok {
		return "", false
	}
	s, ok := entries[key]

	return s, ok && s != ""
}

// English returns the built-in English text of key, or the key itself when unknown.
func English(key Key) string {
	if s, ok := english[key]; ok {
		return s
	}

	return string(key)
}

// Lookup returns the localized text of key for culture, falling back to English.
func Lookup(loc Localizer, key Key, culture string) string {
	if loc != nil {
		if s, ok := loc.Label(key, culture); ok {
			return s
		}
	}

	return English(key)
}

// Candidates returns the texts a reader accepts for key in a file written with culture:
// the localized text first (when it exists and differs), then the English fallback.
func Candidates(loc Localizer, key Key, culture string) []string {
	fallback := English(key)
	if loc != nil {
		if s, ok := loc.Label(key, culture); ok && s != fallback {
			return []string{s, fallback}
		}
	}

	return []string{fallback}
}

var english = map[Key]string{
	ELuxData:           "ErgoLux data",
	SignalData:         "SignalAnalysis data",
	StartTime:          "Start time",
	EndTime:            "End time",
	TotalTime:          "Total measuring time",
	DataPoints:         "Number of data points",
	SamplingFrequency:  "Sampling frequency",
	Average:            "Average",
	Maximum:            "Maximum",
	Minimum:            "Minimum",
	FractalDimension:   "Fractal dimension",
	FractalVariance:    "Fractal variance",
	ApproximateEntropy: "Approximate entropy",
	SampleEntropy:      "Sample entropy",
	ShannonEntropy:     "Shannon entropy",
	EntropyBit:         "Entropy bit",
	IdealEntropy:       "Ideal entropy",
	DataSeries:         "Number of data series",
	Sensors:            "Number of sensors",
	BlankLine:          "Missing blank line",
	LabelRow:           "Missing column labels",
	Time:               "Time",
	Days:               "days",
	Hours:              "hours",
	Minutes:            "minutes",
	Seconds:            "seconds",
	And:                "and",
	Milliseconds:       "milliseconds",
	FrequencyAxis:      "Frequency (Hz)",
	MagnitudeAxis:      "Magnitude (RMS²)",
	PowerAxis:          "Power (dB)",
	AverageIlluminance: "Average illuminance",
	MaximumIlluminance: "Maximum illuminance",
	MinimumIlluminance: "Minimum illuminance",
	MsgCultureError:    "Unable to find the culture of the data file.\n{0}",
	MsgHeaderError:     "Unable to read the data file header.\n{0}",
	MsgNumberError:     "Unable to parse a numeric value in the data file.\n{0}",
	MsgOpenError:       "An unexpected error happened while opening the data file.\n{0}",
	MsgSaveError:       "An unexpected error happened while saving file data.\n{0}",
	MsgNotImplemented:  "Reading {0} files is not implemented.",
	MsgHeaderSection:   "Wrong format in the \"{0}\" header section.",
}
