package culture

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/arloliu/luxsig/errs"
)

const (
	nanSymbol      = "NaN"
	infinitySymbol = "Infinity"
)

// ParseFloat parses a culture-formatted floating-point number.
//
// Accepted input: surrounding white space, a leading sign, integer digits optionally
// grouped with GroupSeparator, one DecimalSeparator with fractional digits, and an
// exponent ('e' or 'E', optional sign, digits). Group separators may only appear in
// the integer digits. "NaN", "Infinity" and "-Infinity" are accepted.
func (c Culture) ParseFloat(s string) (float64, error) {
	s = strings.TrimFunc(s, unicode.IsSpace)
	switch s {
	case nanSymbol:
		return math.NaN(), nil
	case infinitySymbol, "+" + infinitySymbol:
		return math.Inf(1), nil
	case "-" + infinitySymbol:
		return math.Inf(-1), nil
	}

	var sb strings.Builder
	sb.Grow(len(s))

	rest := s
	if rest != "" && (rest[0] == '+' || rest[0] == '-') {
		sb.WriteByte(rest[0])
		rest = rest[1:]
	}

	intDigits, fracDigits := 0, 0
	seenDecimal := false
	for rest != "" {
		ch := rest[0]
		switch {
		case ch >= '0' && ch <= '9':
			sb.WriteByte(ch)
			if seenDecimal {
				fracDigits++
			} else {
				intDigits++
			}
			rest = rest[1:]
		case !seenDecimal && c.GroupSeparator != "" && strings.HasPrefix(rest, c.GroupSeparator):
			if intDigits == 0 {
				return 0, fmt.Errorf("invalid number %q: group separator before digits", s)
			}
			rest = rest[len(c.GroupSeparator):]
		case !seenDecimal && strings.HasPrefix(rest, c.DecimalSeparator):
			seenDecimal = true
			sb.WriteByte('.')
			rest = rest[len(c.DecimalSeparator):]
		case ch == 'e' || ch == 'E':
			if intDigits+fracDigits == 0 {
				return 0, fmt.Errorf("invalid number %q: exponent without mantissa", s)
			}
			sb.WriteByte('e')
			rest = rest[1:]
			if rest != "" && (rest[0] == '+' || rest[0] == '-') {
				sb.WriteByte(rest[0])
				rest = rest[1:]
			}
			if rest == "" {
				return 0, fmt.Errorf("invalid number %q: empty exponent", s)
			}
			for _, r := range rest {
				if r < '0' || r > '9' {
					return 0, fmt.Errorf("invalid number %q: bad exponent", s)
				}
			}
			sb.WriteString(rest)
			rest = ""
		default:
			return 0, fmt.Errorf("invalid number %q", s)
		}
	}

	if intDigits+fracDigits == 0 {
		return 0, fmt.Errorf("invalid number %q: no digits", s)
	}

	v, err := strconv.ParseFloat(sb.String(), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}

	return v, nil
}

// ParseCount parses a non-negative 32-bit integer count.
// Surrounding white space and a leading '+' are accepted; group separators are not.
func (c Culture) ParseCount(s string) (int, error) {
	s = strings.TrimFunc(s, unicode.IsSpace)
	v, err := strconv.ParseInt(s, 10, 32)
	if errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("count %q out of range", s)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid count %q", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative count %d", v)
	}

	return int(v), nil
}

// NumberPattern is a compiled custom numeric format pattern.
//
// Supported syntax is the subset of .NET custom numeric formats used by luxsig files:
// '0' (required digit), '#' (optional digit), ',' in the integer part (enable grouping)
// and '.' (decimal point), e.g. "0.########" or "#,##0.00". The standard formats
// "F<n>", "N<n>" and "G" (or the empty pattern) are accepted as well.
type NumberPattern struct {
	minInt   int
	minFrac  int
	maxFrac  int
	group    bool
	shortest bool
}

// CompileNumberPattern compiles pattern into a NumberPattern.
func CompileNumberPattern(pattern string) (NumberPattern, error) {
	if pattern == "" || pattern == "G" || pattern == "g" || pattern == "R" || pattern == "r" {
		return NumberPattern{minInt: 1, shortest: true}, nil
	}

	if p, ok := compileStandard(pattern); ok {
		return p, nil
	}

	var p NumberPattern
	intPart, fracPart, hasDot := strings.Cut(pattern, ".")
	for _, r := range intPart {
		switch r {
		case '0':
			p.minInt++
		case '#':
		case ',':
			p.group = true
		default:
			return NumberPattern{}, fmt.Errorf("%w: unsupported numeric pattern %q", errs.ErrInvalidPattern, pattern)
		}
	}
	if hasDot {
		for _, r := range fracPart {
			switch r {
			case '0':
				if p.maxFrac != p.minFrac {
					return NumberPattern{}, fmt.Errorf("%w: '0' after '#' in %q", errs.ErrInvalidPattern, pattern)
				}
				p.minFrac++
				p.maxFrac++
			case '#':
				p.maxFrac++
			default:
				return NumberPattern{}, fmt.Errorf("%w: unsupported numeric pattern %q", errs.ErrInvalidPattern, pattern)
			}
		}
	}
	if p.maxFrac > 15 {
		return NumberPattern{}, fmt.Errorf("%w: more than 15 fractional digits in %q", errs.ErrInvalidPattern, pattern)
	}

	return p, nil
}

func compileStandard(pattern string) (NumberPattern, bool) {
	kind := pattern[0]
	if kind != 'F' && kind != 'f' && kind != 'N' && kind != 'n' {
		return NumberPattern{}, false
	}
	digits := 2
	if len(pattern) > 1 {
		n, err := strconv.Atoi(pattern[1:])
		if err != nil || n < 0 || n > 15 {
			return NumberPattern{}, false
		}
		digits = n
	}

	return NumberPattern{
		minInt:  1,
		minFrac: digits,
		maxFrac: digits,
		group:   kind == 'N' || kind == 'n',
	}, true
}

// FormatNumber renders v with a custom numeric pattern using c's separators.
func (c Culture) FormatNumber(v float64, pattern string) (string, error) {
	p, err := CompileNumberPattern(pattern)
	if err != nil {
		return "", err
	}

	return c.Format(v, p), nil
}

// Format renders v with a compiled pattern using c's separators.
func (c Culture) Format(v float64, p NumberPattern) string {
	switch {
	case math.IsNaN(v):
		return nanSymbol
	case math.IsInf(v, 1):
		return infinitySymbol
	case math.IsInf(v, -1):
		return "-" + infinitySymbol
	}

	neg := math.Signbit(v)
	abs := math.Abs(v)

	var digits string
	if p.shortest {
		digits = strconv.FormatFloat(abs, 'f', -1, 64)
	} else {
		digits = strconv.FormatFloat(abs, 'f', p.maxFrac, 64)
	}

	intPart, fracPart, _ := strings.Cut(digits, ".")
	if !p.shortest {
		for len(fracPart) > p.minFrac && fracPart[len(fracPart)-1] == '0' {
			fracPart = fracPart[:len(fracPart)-1]
		}
	}
	if intPart == "0" && p.minInt == 0 {
		intPart = ""
	}
	for len(intPart) < p.minInt {
		intPart = "0" + intPart
	}
	if p.group && len(intPart) > 3 {
		intPart = groupDigits(intPart, c.GroupSeparator)
	}

	out := intPart
	if fracPart != "" {
		out += c.DecimalSeparator + fracPart
	}
	if out == "" {
		out = "0"
	}
	if neg && strings.Trim(intPart+fracPart, "0") != "" {
		out = "-" + out
	}

	return out
}

func groupDigits(digits, sep string) string {
	var sb strings.Builder
	head := len(digits) % 3
	if head > 0 {
		sb.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(digits[i : i+3])
	}

	return sb.String()
}
