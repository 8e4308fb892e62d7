package codec_test

import (
	"errors"
	"testing"
	"time"

	"github.com/reoring/pbjson/codec"
)

func TestTimestamp_Roundtrip(t *testing.T) {
	cases := []struct {
		in, canonical string
	}{
		{"2025-01-01T00:00:00Z", "2025-01-01T00:00:00Z"},
		{"2025-01-01T00:00:00.500Z", "2025-01-01T00:00:00.500Z"},
		{"2025-01-01T00:00:00.5Z", "2025-01-01T00:00:00.500Z"},
		{"2025-01-01T00:00:00.000001Z", "2025-01-01T00:00:00.000001Z"},
		{"2025-01-01T00:00:00.123456789Z", "2025-01-01T00:00:00.123456789Z"},
		{"2025-01-01T09:00:00+09:00", "2025-01-01T00:00:00Z"},
		{"0001-01-01T00:00:00Z", "0001-01-01T00:00:00Z"},
	}
	for _, tc := range cases {
		got, err := codec.ParseTimestamp(tc.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.in, err)
		}
		out, err := codec.FormatTimestamp(got)
		if err != nil {
			t.Fatalf("format %q: %v", tc.in, err)
		}
		if out != tc.canonical {
			t.Fatalf("canonical form of %q: got %q want %q", tc.in, out, tc.canonical)
		}
	}
}

func TestTimestamp_Rejects(t *testing.T) {
	for _, in := range []string{
		"",
		"2025-01-01",
		"2025-01-01 00:00:00Z",
		"2025-01-01T00:00:00",
		"2025-13-01T00:00:00Z",
		"2025-01-01T00:00:00.1234567891Z",
		"not a time",
	} {
		if _, err := codec.ParseTimestamp(in); !errors.Is(err, codec.ErrTimestamp) {
			t.Fatalf("expected ErrTimestamp for %q, got %v", in, err)
		}
	}
}

func TestTimestamp_FormatOutOfRange(t *testing.T) {
	if _, err := codec.FormatTimestamp(time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC)); !errors.Is(err, codec.ErrTimestamp) {
		t.Fatalf("expected ErrTimestamp, got %v", err)
	}
	if _, err := codec.FormatTimestamp(time.Time{}.Add(-time.Second)); !errors.Is(err, codec.ErrTimestamp) {
		t.Fatalf("expected ErrTimestamp, got %v", err)
	}
}
