// Package json is the encoding/json tokenizer driver.
package json

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"

	eng "github.com/reoring/pbjson/internal/engine"
)

type jsonSource struct {
	dec        *json.Decoder
	framer     eng.Framer
	lastOffset int64
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON.
func NewReader(r io.Reader) eng.TokenSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &jsonSource{dec: dec, lastOffset: -1}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *jsonSource) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return eng.Token{}, io.EOF
		}
		return eng.Token{}, err
	}
	s.lastOffset = s.dec.InputOffset()
	t := eng.Token{Offset: s.lastOffset}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			t.Kind = s.framer.Open(true)
		case '[':
			t.Kind = s.framer.Open(false)
		case '}':
			t.Kind = s.framer.Close(true)
		case ']':
			t.Kind = s.framer.Close(false)
		}
	case string:
		t.Kind = s.framer.Text()
		t.String = v
	case json.Number:
		t.Kind = s.framer.Scalar(eng.KindNumber)
		t.Number = string(v)
	case float64:
		t.Kind = s.framer.Scalar(eng.KindNumber)
		t.Number = strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		t.Kind = s.framer.Scalar(eng.KindBool)
		t.Bool = v
	default:
		t.Kind = s.framer.Scalar(eng.KindNull)
	}
	return t, nil
}

func (s *jsonSource) Location() int64 { return s.lastOffset }
