// Package culture resolves locale tags into the formatting conventions used by luxsig files.
//
// A Culture is an explicit locale descriptor: decimal and group separators, the full
// date-time pattern in .NET custom-format syntax, localized day and month names and the
// AM/PM designators. Resolution never consults the process locale; a file names its
// culture in the first header line and the descriptor is looked up from a static table.
//
// # Basic Usage
//
//	c, err := culture.Resolve("es-ES")
//	if err != nil {
//	    return err // *errs.CultureError
//	}
//
//	pattern := c.FullDateTimePattern() // "dddd, d' de 'MMMM' de 'yyyy H:mm:ss,fff"
//	ts, err := c.ParseTime("lunes, 3 de junio de 2024 9:15:02,250", pattern)
//	v, err := c.ParseFloat("1.234,5") // 1234.5
//
// # Thread Safety
//
// Culture is an immutable value; all methods are safe for concurrent use.
package culture

import (
	"regexp"
	"strings"

	"golang.org/x/text/language"

	"github.com/arloliu/luxsig/errs"
)

// InvariantName is the name of the invariant culture.
const InvariantName = ""

// Culture describes the number and date-time conventions of one locale.
type Culture struct {
	// Name is the locale tag as written in files (e.g. "en-US").
	Name string
	// DecimalSeparator separates the integer and fractional digits.
	DecimalSeparator string
	// GroupSeparator separates thousands groups in the integer digits.
	GroupSeparator string
	// DateTimePattern is the base full date-time pattern, seconds precision.
	DateTimePattern string
	// MillisecondsFormat replaces the seconds token of DateTimePattern.
	MillisecondsFormat string

	DayNames     [7]string  // Sunday first
	MonthNames   [12]string // January first
	AMDesignator string
	PMDesignator string
}

var secondsToken = regexp.MustCompile(`(:ss|:s)`)

// FullDateTimePattern returns the full date-time pattern widened to millisecond precision.
//
// Every ":ss" or ":s" token of the base pattern is replaced with MillisecondsFormat so
// that start and end timestamps keep their sub-second part when written and read back.
func (c Culture) FullDateTimePattern() string {
	return secondsToken.ReplaceAllLiteralString(c.DateTimePattern, c.MillisecondsFormat)
}

// WithMillisecondsFormat returns a copy of c using format as the seconds replacement.
// An empty format keeps the culture default.
func (c Culture) WithMillisecondsFormat(format string) Culture {
	if format != "" {
		c.MillisecondsFormat = format
	}

	return c
}

// IsInvariant reports whether c is the invariant culture.
func (c Culture) IsInvariant() bool {
	return c.Name == InvariantName
}

// Resolve returns the culture named by tag.
//
// The tag is parsed as a BCP 47 language tag and matched against the built-in table.
// An exact entry wins; otherwise the closest entry with at least high confidence is
// used, keeping tag as the culture name. The empty tag resolves to the invariant culture.
//
// Returns *errs.CultureError if the tag is malformed or no table entry matches.
func Resolve(tag string) (Culture, error) {
	tag = strings.TrimSpace(tag)
	if tag == InvariantName {
		return Invariant(), nil
	}

	parsed, err := language.Parse(tag)
	if err != nil {
		return Culture{}, &errs.CultureError{Tag: tag, Err: err}
	}

	if c, ok := byName[strings.ToLower(parsed.String())]; ok {
		c.Name = tag
		return c, nil
	}

	_, idx, conf := matcher.Match(parsed)
	if conf < language.High {
		return Culture{}, &errs.CultureError{Tag: tag}
	}

	c := table[idx]
	c.Name = tag

	return c, nil
}

// MustResolve is like Resolve but panics on error. Use only with known tags.
func MustResolve(tag string) Culture {
	c, err := Resolve(tag)
	if err != nil {
		panic(err)
	}

	return c
}

// Invariant returns the invariant culture.
func Invariant() Culture {
	return invariant
}

// Supported returns the names of the built-in cultures.
func Supported() []string {
	names := make([]string, 0, len(table))
	for _, c := range table {
		names = append(names, c.Name)
	}

	return names
}
