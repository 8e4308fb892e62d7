// Package gojson is the goccy/go-json tokenizer driver.
package gojson

import (
	"bytes"
	"errors"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	"github.com/reoring/pbjson"
	eng "github.com/reoring/pbjson/internal/engine"
)

// Name is the driver name reported by Driver().Name().
const Name = "go-json"

// Driver returns a pbjson.JSONDriver backed by goccy/go-json.
func Driver() pbjson.JSONDriver { return driverGoJSON{} }

type driverGoJSON struct{}

func (driverGoJSON) NewReader(r io.Reader) pbjson.Source { return pbjson.SourceFromEngine(NewReader(r)) }
func (driverGoJSON) NewBytes(b []byte) pbjson.Source     { return pbjson.SourceFromEngine(NewBytes(b)) }
func (driverGoJSON) Name() string                        { return Name }

// ---- engine.TokenSource implementation using go-json Decoder ----

// errMalformed is returned for input that go-json's tokenizer would accept
// but that is not a single well-formed JSON value.
var errMalformed = errors.New("go-json: malformed JSON input")

// source checks the whole document with j.Valid before the first token:
// Decoder.Token does not verify ':' and ',' placement.
type source struct {
	r      io.Reader
	data   []byte
	dec    *j.Decoder
	err    error
	framer eng.Framer
	offset int64
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON using go-json.
// The reader is drained on the first NextToken so the document can be
// validated before any token is handed out.
func NewReader(r io.Reader) eng.TokenSource { return &source{r: r, offset: -1} }

// NewBytes wraps a byte slice into an engine.TokenSource for JSON using go-json.
func NewBytes(b []byte) eng.TokenSource { return &source{data: b, offset: -1} }

func (s *source) init() {
	if s.r != nil {
		data, err := io.ReadAll(s.r)
		if err != nil {
			s.err = err
			return
		}
		s.data, s.r = data, nil
	}
	if len(bytes.TrimSpace(s.data)) == 0 {
		s.err = io.ErrUnexpectedEOF
		return
	}
	if !j.Valid(s.data) {
		s.err = errMalformed
		return
	}
	s.dec = j.NewDecoder(bytes.NewReader(s.data))
	s.dec.UseNumber()
}

func (s *source) NextToken() (eng.Token, error) {
	if s.dec == nil && s.err == nil {
		s.init()
	}
	if s.err != nil {
		return eng.Token{}, s.err
	}
	tok, err := s.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return eng.Token{}, io.EOF
		}
		return eng.Token{}, err
	}
	s.offset = s.dec.InputOffset()
	t := eng.Token{Offset: s.offset}

	switch v := tok.(type) {
	case j.Delim:
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
	case j.Number:
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

func (s *source) Location() int64 { return s.offset }
