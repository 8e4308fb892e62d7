package gojson_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	eng "github.com/reoring/pbjson/internal/engine"
	"github.com/reoring/pbjson/source/gojson"
	jsonsrc "github.com/reoring/pbjson/source/json"
)

func drain(t *testing.T, s eng.TokenSource) []eng.Token {
	t.Helper()
	var out []eng.Token
	for {
		tok, err := s.NextToken()
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("NextToken: %v", err)
		}
		out = append(out, tok)
	}
}

// Both drivers must produce the same token stream; offsets may differ.
func TestDriverParity(t *testing.T) {
	inputs := []string{
		`{}`,
		`{"epochNum":"12","bitmap":"AQID","lifecycle":[{"state":1,"blockTime":"2024-05-01T00:00:00Z"}]}`,
		`{"a":[1,-2.5e3,true,false,null,"xé"],"b":{"c":{}}}`,
		`{"big":18446744073709551616,"neg":-0}`,
	}
	for _, in := range inputs {
		want := drain(t, jsonsrc.NewBytes([]byte(in)))
		got := drain(t, gojson.NewBytes([]byte(in)))
		if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(eng.Token{}, "Offset")); diff != "" {
			t.Fatalf("%s: token mismatch (-encoding/json +go-json):\n%s", in, diff)
		}
	}
}

func TestNumbersKeepLiteralText(t *testing.T) {
	toks := drain(t, gojson.NewBytes([]byte(`[18446744073709551615, 1e3]`)))
	if toks[1].Number != "18446744073709551615" || toks[2].Number != "1e3" {
		t.Fatalf("unexpected number tokens: %+v", toks)
	}
}

func TestMalformed(t *testing.T) {
	inputs := []string{`{"a":}`, `{"a":1,}`, `{"a" 1}`, `{"a":1 "b":2}`, `[1 2]`, `{} {}`, ``}
	for _, in := range inputs {
		for name, s := range map[string]eng.TokenSource{
			"bytes":  gojson.NewBytes([]byte(in)),
			"reader": gojson.NewReader(strings.NewReader(in)),
		} {
			var err error
			for err == nil {
				_, err = s.NextToken()
			}
			if errors.Is(err, io.EOF) {
				t.Fatalf("%s %q: expected a syntax error, got EOF", name, in)
			}
		}
	}
}

func TestDriverName(t *testing.T) {
	if got := gojson.Driver().Name(); got != gojson.Name {
		t.Fatalf("Name() = %q", got)
	}
}
