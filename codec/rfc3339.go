package codec

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrTimestamp reports text that is not an RFC 3339 timestamp, or an instant
// outside the years 0001 to 9999.
var ErrTimestamp = errors.New("invalid RFC 3339 timestamp")

var (
	minTimestamp = time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)
	maxTimestamp = time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC)
)

// ParseTimestamp accepts RFC 3339 with a 'Z' or numeric offset and up to nine
// fractional digits.
func ParseTimestamp(s string) (time.Time, error) {
	if len(s) < len("2006-01-02T15:04:05Z") || (s[10] != 'T' && s[10] != 't') {
		return time.Time{}, ErrTimestamp
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, ErrTimestamp
	}
	if frac := fractionDigits(s); frac > 9 {
		return time.Time{}, ErrTimestamp
	}
	t = t.UTC()
	if !inRange(t) {
		return time.Time{}, ErrTimestamp
	}
	return t, nil
}

// FormatTimestamp renders t in UTC with a 'Z' suffix and 0, 3, 6 or 9
// fractional digits, whichever is the shortest exact form.
func FormatTimestamp(t time.Time) (string, error) {
	t = t.UTC()
	if !inRange(t) {
		return "", ErrTimestamp
	}
	out := t.Format("2006-01-02T15:04:05")
	nanos := t.Nanosecond()
	switch {
	case nanos == 0:
	case nanos%1e6 == 0:
		out += "." + pad(nanos/1e6, 3)
	case nanos%1e3 == 0:
		out += "." + pad(nanos/1e3, 6)
	default:
		out += "." + pad(nanos, 9)
	}
	return out + "Z", nil
}

func inRange(t time.Time) bool { return !t.Before(minTimestamp) && !t.After(maxTimestamp) }

func fractionDigits(s string) int {
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return 0
	}
	n := 0
	for i := dot + 1; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n++
	}
	return n
}

func pad(v, width int) string {
	s := strconv.Itoa(v)
	for len(s) < width {
		s = "0" + s
	}
	return s
}
