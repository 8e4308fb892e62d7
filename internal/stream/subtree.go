package stream

import (
	"errors"
	"io"

	eng "github.com/reoring/pbjson/internal/engine"
)

// PreloadedSource is a subtree source that first returns a preloaded token
// (typically the first token of a value) and then continues to stream the
// remaining tokens of the same subtree from the underlying source. It returns
// io.EOF once the subtree is complete.
type PreloadedSource struct {
	inner  eng.TokenSource
	first  eng.Token
	served bool
	depth  int
	done   bool
}

// NewPreloadedSource constructs a subtree source that returns first before
// consuming further tokens from inner.
func NewPreloadedSource(inner eng.TokenSource, first eng.Token) *PreloadedSource {
	return &PreloadedSource{inner: inner, first: first}
}

func (p *PreloadedSource) NextToken() (eng.Token, error) {
	if p.done {
		return eng.Token{}, io.EOF
	}
	tok := p.first
	if p.served {
		var err error
		tok, err = p.inner.NextToken()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return eng.Token{}, io.ErrUnexpectedEOF
			}
			return eng.Token{}, err
		}
	}
	p.served = true
	switch tok.Kind {
	case eng.KindBeginObject, eng.KindBeginArray:
		p.depth++
	case eng.KindEndObject, eng.KindEndArray:
		p.depth--
	}
	// Keys never end a subtree; primitives end it only at depth zero.
	if p.depth <= 0 && tok.Kind != eng.KindKey {
		p.done = true
	}
	return tok, nil
}

func (p *PreloadedSource) Location() int64 { return p.inner.Location() }

// Skip consumes the rest of the value whose first token is first. Every
// token still flows through inner, so enforcement wrappers see it.
func Skip(inner eng.TokenSource, first eng.Token) error {
	sub := NewPreloadedSource(inner, first)
	for {
		_, err := sub.NextToken()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
