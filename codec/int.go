package codec

import (
	"errors"
	"math"
	"strconv"

	"github.com/cockroachdb/apd/v3"
)

var (
	// ErrSyntax reports text that is not a decimal number.
	ErrSyntax = errors.New("not a decimal integer")
	// ErrFraction reports a number with a non-zero fractional part.
	ErrFraction = errors.New("number has a fractional part")
	// ErrRange reports an integer outside the target width.
	ErrRange = errors.New("integer out of range")
)

// maxIntDigits bounds the integral digits accepted before range checks; no
// 64-bit integer has more than 20 decimal digits.
const maxIntDigits = 20

// ParseInt64 parses a JSON number or decimal string into an int64. Exponent
// and fraction forms are accepted when their value is integral ("1e3", "2.0").
func ParseInt64(text string) (int64, error) { return parseSigned(text, 64) }

// ParseInt32 is ParseInt64 restricted to 32 bits.
func ParseInt32(text string) (int32, error) {
	v, err := parseSigned(text, 32)
	return int32(v), err
}

// ParseUint64 parses a JSON number or decimal string into a uint64.
func ParseUint64(text string) (uint64, error) { return parseUnsigned(text, 64) }

// ParseUint32 is ParseUint64 restricted to 32 bits.
func ParseUint32(text string) (uint32, error) {
	v, err := parseUnsigned(text, 32)
	return uint32(v), err
}

func parseSigned(text string, bits int) (int64, error) {
	if !plausible(text) {
		return 0, ErrSyntax
	}
	v, err := strconv.ParseInt(text, 10, bits)
	if err == nil {
		return v, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return 0, ErrRange
	}
	digits, err := integralDigits(text)
	if err != nil {
		return 0, err
	}
	v, err = strconv.ParseInt(digits, 10, bits)
	if err != nil {
		return 0, ErrRange
	}
	return v, nil
}

func parseUnsigned(text string, bits int) (uint64, error) {
	if !plausible(text) {
		return 0, ErrSyntax
	}
	v, err := strconv.ParseUint(text, 10, bits)
	if err == nil {
		return v, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return 0, ErrRange
	}
	digits, err := integralDigits(text)
	if err != nil {
		return 0, err
	}
	// Unsigned kinds take no sign at all, "-0" included.
	if text[0] == '-' || digits[0] == '-' {
		return 0, ErrRange
	}
	v, err = strconv.ParseUint(digits, 10, bits)
	if err != nil {
		return 0, ErrRange
	}
	return v, nil
}

// plausible rejects text that strconv would accept but JSON numbers never
// spell: leading '+', surrounding space, underscores, empty input.
func plausible(text string) bool {
	if text == "" || text[0] == '+' {
		return false
	}
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case '0' <= c && c <= '9', c == '-', c == '.', c == 'e', c == 'E', c == '+':
		default:
			return false
		}
	}
	return true
}

// integralDigits converts exponent or fraction forms to plain digits using
// exact decimal arithmetic.
func integralDigits(text string) (string, error) {
	d, _, err := apd.NewFromString(text)
	if err != nil || d.Form != apd.Finite {
		return "", ErrSyntax
	}
	if d.IsZero() {
		return "0", nil
	}
	d.Reduce(d)
	if d.Exponent < 0 {
		return "", ErrFraction
	}
	if int64(d.Exponent)+d.NumDigits() > maxIntDigits {
		return "", ErrRange
	}
	return d.Text('f'), nil
}

// FormatInt64 renders an int64 as decimal digits without leading zeros.
func FormatInt64(v int64) string { return strconv.FormatInt(v, 10) }

// FormatUint64 renders a uint64 as decimal digits without leading zeros.
func FormatUint64(v uint64) string { return strconv.FormatUint(v, 10) }

// FitsInt32 reports whether v can be held by an int32.
func FitsInt32(v int64) bool { return v >= math.MinInt32 && v <= math.MaxInt32 }
