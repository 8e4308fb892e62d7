package stream_test

import (
	"errors"
	"io"
	"testing"

	eng "github.com/reoring/pbjson/internal/engine"
	"github.com/reoring/pbjson/internal/stream"
)

type sliceSource struct {
	toks []eng.Token
	i    int
}

func (s *sliceSource) NextToken() (eng.Token, error) {
	if s.i >= len(s.toks) {
		return eng.Token{}, io.EOF
	}
	t := s.toks[s.i]
	s.i++
	return t, nil
}

func (s *sliceSource) Location() int64 { return int64(s.i) }

func tk(k eng.Kind) eng.Token { return eng.Token{Kind: k} }

func TestSkip_NestedContainer(t *testing.T) {
	// {"a":[1,{"b":null}]} "after"
	src := &sliceSource{toks: []eng.Token{
		tk(eng.KindKey), tk(eng.KindBeginArray), tk(eng.KindNumber), tk(eng.KindBeginObject),
		tk(eng.KindKey), tk(eng.KindNull), tk(eng.KindEndObject), tk(eng.KindEndArray),
		tk(eng.KindEndObject), {Kind: eng.KindString, String: "after"},
	}}
	first := tk(eng.KindBeginObject)
	if err := stream.Skip(src, first); err != nil {
		t.Fatalf("skip: %v", err)
	}
	next, err := src.NextToken()
	if err != nil || next.String != "after" {
		t.Fatalf("expected to resume after the subtree, got %+v, %v", next, err)
	}
}

func TestSkip_Primitive(t *testing.T) {
	src := &sliceSource{toks: []eng.Token{{Kind: eng.KindString, String: "next"}}}
	if err := stream.Skip(src, tk(eng.KindNumber)); err != nil {
		t.Fatalf("skip: %v", err)
	}
	if src.i != 0 {
		t.Fatalf("primitive skip must not consume more tokens, consumed %d", src.i)
	}
}

func TestSkip_Truncated(t *testing.T) {
	src := &sliceSource{toks: []eng.Token{tk(eng.KindNumber)}}
	err := stream.Skip(src, tk(eng.KindBeginArray))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected io.ErrUnexpectedEOF, got %v", err)
	}
}
