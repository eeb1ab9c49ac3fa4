package culture

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/arloliu/luxsig/errs"
)

// token is one element of a tokenized .NET custom date-time pattern.
// kind is the pattern letter ('d', 'M', 'y', 'h', 'H', 'm', 's', 'f', 'F', 't'),
// or 0 for a literal run stored in lit.
type token struct {
	kind byte
	n    int
	lit  string
}

func isPatternLetter(b byte) bool {
	switch b {
	case 'd', 'M', 'y', 'h', 'H', 'm', 's', 'f', 'F', 't':
		return true
	default:
		return false
	}
}

// tokenize splits a .NET custom date-time pattern into tokens.
//
// Quoted runes ('...' or "...") and backslash escapes become literals; every other
// rune that is not a pattern letter is a literal too.
func tokenize(pattern string) ([]token, error) {
	var tokens []token
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			tokens = append(tokens, token{lit: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(pattern); {
		ch := pattern[i]
		switch {
		case ch == '\'' || ch == '"':
			end := strings.IndexByte(pattern[i+1:], ch)
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated quote in %q", errs.ErrInvalidPattern, pattern)
			}
			lit.WriteString(pattern[i+1 : i+1+end])
			i += end + 2
		case ch == '\\':
			if i+1 >= len(pattern) {
				return nil, fmt.Errorf("%w: trailing escape in %q", errs.ErrInvalidPattern, pattern)
			}
			_, size := utf8.DecodeRuneInString(pattern[i+1:])
			lit.WriteString(pattern[i+1 : i+1+size])
			i += 1 + size
		case isPatternLetter(ch):
			flush()
			n := 1
			for i+n < len(pattern) && pattern[i+n] == ch {
				n++
			}
			if (ch == 'f' || ch == 'F') && n > 7 {
				return nil, fmt.Errorf("%w: fraction wider than 7 digits in %q", errs.ErrInvalidPattern, pattern)
			}
			tokens = append(tokens, token{kind: ch, n: n})
			i += n
		default:
			_, size := utf8.DecodeRuneInString(pattern[i:])
			lit.WriteString(pattern[i : i+size])
			i += size
		}
	}
	flush()

	return tokens, nil
}

func abbreviate(name string) string {
	n := 0
	for i := range name {
		if n == 3 {
			return name[:i]
		}
		n++
	}

	return name
}

func pad(v, width int) string {
	s := strconv.Itoa(v)
	for len(s) < width {
		s = "0" + s
	}

	return s
}

// FormatTime renders t with a .NET custom date-time pattern using c's names.
func (c Culture) FormatTime(t time.Time, pattern string) (string, error) {
	tokens, err := tokenize(pattern)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, tk := range tokens {
		switch tk.kind {
		case 0:
			sb.WriteString(tk.lit)
		case 'd':
			switch {
			case tk.n <= 2:
				sb.WriteString(pad(t.Day(), tk.n))
			case tk.n == 3:
				sb.WriteString(abbreviate(c.DayNames[t.Weekday()]))
			default:
				sb.WriteString(c.DayNames[t.Weekday()])
			}
		case 'M':
			switch {
			case tk.n <= 2:
				sb.WriteString(pad(int(t.Month()), tk.n))
			case tk.n == 3:
				sb.WriteString(abbreviate(c.MonthNames[t.Month()-1]))
			default:
				sb.WriteString(c.MonthNames[t.Month()-1])
			}
		case 'y':
			if tk.n <= 2 {
				sb.WriteString(pad(t.Year()%100, tk.n))
			} else {
				sb.WriteString(pad(t.Year(), tk.n))
			}
		case 'h':
			h := t.Hour() % 12
			if h == 0 {
				h = 12
			}
			sb.WriteString(pad(h, min(tk.n, 2)))
		case 'H':
			sb.WriteString(pad(t.Hour(), min(tk.n, 2)))
		case 'm':
			sb.WriteString(pad(t.Minute(), min(tk.n, 2)))
		case 's':
			sb.WriteString(pad(t.Second(), min(tk.n, 2)))
		case 'f', 'F':
			frac := pad(t.Nanosecond()/100, 7)[:tk.n]
			if tk.kind == 'F' {
				frac = strings.TrimRight(frac, "0")
			}
			sb.WriteString(frac)
		case 't':
			designator := c.AMDesignator
			if t.Hour() >= 12 {
				designator = c.PMDesignator
			}
			if tk.n == 1 && designator != "" {
				_, size := utf8.DecodeRuneInString(designator)
				designator = designator[:size]
			}
			sb.WriteString(designator)
		}
	}

	return sb.String(), nil
}

// MustFormatTime is like FormatTime but panics on an invalid pattern.
func (c Culture) MustFormatTime(t time.Time, pattern string) string {
	s, err := c.FormatTime(t, pattern)
	if err != nil {
		panic(err)
	}

	return s
}

// timeFields accumulates the components consumed by ParseTime.
type timeFields struct {
	year, month, day  int
	hour, minute, sec int
	nanos             int
	weekday           int
	hasWeekday, is12h bool
	pm, hasDesignator bool
}

// ParseTime parses s exactly against a .NET custom date-time pattern.
//
// Day and month names and AM/PM designators match case-insensitively. The whole
// input must be consumed and a day name, when present, must agree with the date.
// The result is in UTC.
func (c Culture) ParseTime(s, pattern string) (time.Time, error) {
	tokens, err := tokenize(pattern)
	if err != nil {
		return time.Time{}, err
	}

	f := timeFields{year: 1, month: 1, day: 1}
	rest := s
	for _, tk := range tokens {
		if rest, err = c.consume(tk, rest, &f); err != nil {
			return time.Time{}, fmt.Errorf("parse %q as %q: %w", s, pattern, err)
		}
	}
	if rest != "" {
		return time.Time{}, fmt.Errorf("parse %q as %q: unexpected trailing text %q", s, pattern, rest)
	}

	hour := f.hour
	if f.is12h {
		if hour < 1 || hour > 12 {
			return time.Time{}, fmt.Errorf("parse %q: hour %d out of range", s, hour)
		}
		hour %= 12
		if f.pm {
			hour += 12
		}
	} else if f.hasDesignator && f.pm && hour < 12 {
		hour += 12
	}

	t := time.Date(f.year, time.Month(f.month), f.day, hour, f.minute, f.sec, f.nanos, time.UTC)
	if t.Year() != f.year || int(t.Month()) != f.month || t.Day() != f.day ||
		t.Hour() != hour || t.Minute() != f.minute || t.Second() != f.sec {
		return time.Time{}, fmt.Errorf("parse %q: date-time components out of range", s)
	}
	if f.hasWeekday && int(t.Weekday()) != f.weekday {
		return time.Time{}, fmt.Errorf("parse %q: day name does not match the date", s)
	}

	return t, nil
}

func (c Culture) consume(tk token, s string, f *timeFields) (string, error) {
	var err error
	var v int

	switch tk.kind {
	case 0:
		if !strings.HasPrefix(s, tk.lit) {
			return s, fmt.Errorf("expected %q", tk.lit)
		}
		return s[len(tk.lit):], nil
	case 'd':
		if tk.n >= 3 {
			idx, rest, ok := matchName(s, c.DayNames[:], tk.n == 3)
			if !ok {
				return s, fmt.Errorf("expected day name")
			}
			f.weekday, f.hasWeekday = idx, true
			return rest, nil
		}
		v, s, err = digits(s, tk.n, 2)
		f.day = v
	case 'M':
		if tk.n >= 3 {
			idx, rest, ok := matchName(s, c.MonthNames[:], tk.n == 3)
			if !ok {
				return s, fmt.Errorf("expected month name")
			}
			f.month = idx + 1
			return rest, nil
		}
		v, s, err = digits(s, tk.n, 2)
		f.month = v
	case 'y':
		switch {
		case tk.n <= 2:
			v, s, err = digits(s, tk.n, 2)
			if v < 50 {
				v += 2000
			} else {
				v += 1900
			}
		default:
			v, s, err = digits(s, max(tk.n, 4), max(tk.n, 4))
		}
		f.year = v
	case 'h', 'H':
		v, s, err = digits(s, min(tk.n, 2), 2)
		f.hour, f.is12h = v, f.is12h || tk.kind == 'h'
	case 'm':
		v, s, err = digits(s, min(tk.n, 2), 2)
		f.minute = v
	case 's':
		v, s, err = digits(s, min(tk.n, 2), 2)
		f.sec = v
	case 'f', 'F':
		lo := tk.n
		if tk.kind == 'F' {
			lo = 0
		}
		start := s
		v, s, err = digits(s, lo, tk.n)
		width := len(start) - len(s)
		for ; width < 9; width++ {
			v *= 10
		}
		f.nanos = v
	case 't':
		candidates := []string{c.AMDesignator, c.PMDesignator}
		idx, rest, ok := matchName(s, candidates, tk.n == 1)
		if !ok {
			return s, fmt.Errorf("expected AM/PM designator")
		}
		f.pm, f.hasDesignator = idx == 1, true
		return rest, nil
	}

	return s, err
}

// digits consumes between lo and hi ASCII digits from s.
func digits(s string, lo, hi int) (int, string, error) {
	n := 0
	for n < hi && n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	if n < lo {
		return 0, s, fmt.Errorf("expected %d digits", lo)
	}
	if n == 0 {
		return 0, s, nil
	}
	v, err := strconv.Atoi(s[:n])
	if err != nil {
		return 0, s, err
	}

	return v, s[n:], nil
}

// matchName matches the longest name (or its 3-rune abbreviation) at the start of s.
func matchName(s string, names []string, abbreviated bool) (int, string, bool) {
	best, bestLen := -1, 0
	for i, name := range names {
		if abbreviated {
			name = abbreviate(name)
		}
		if name == "" || len(name) > len(s) || len(name) <= bestLen {
			continue
		}
		if strings.EqualFold(s[:len(name)], name) {
			best, bestLen = i, len(name)
		}
	}
	if best < 0 {
		return 0, s, false
	}

	return best, s[bestLen:], true
}
