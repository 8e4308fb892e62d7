package engine

import (
	"strconv"
	"strings"
)

// Enforcement wrapper for TokenSource: raw duplicate keys, max depth and max
// bytes, applied while streaming. It sees every key, including keys inside
// subtrees the decoder skips.

// DuplicateStrictness controls raw duplicate key handling.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupError
)

// EnforceOptions controls runtime enforcement behavior. Zero values disable
// the corresponding check.
type EnforceOptions struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int
	MaxBytes    int64
}

// Disabled reports whether wrapping would be a no-op.
func (o EnforceOptions) Disabled() bool {
	return o.OnDuplicate == DupIgnore && o.MaxDepth <= 0 && o.MaxBytes <= 0
}

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind       containerKind
	keys       map[string]struct{}
	path       string
	nextIndex  int
	pendingKey string
}

// WrapWithEnforcement returns a TokenSource that enforces opt over inner.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	if opt.Disabled() {
		return inner
	}
	return &enforcingTokenSource{inner: inner, opt: opt}
}

type enforcingTokenSource struct {
	inner TokenSource
	opt   EnforceOptions
	stack []frame
}

func (e *enforcingTokenSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	path := e.pathFor(tok)

	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		fr := frame{kind: kindArray, path: path}
		if tok.Kind == KindBeginObject {
			fr.kind = kindObject
			if e.opt.OnDuplicate == DupError {
				fr.keys = make(map[string]struct{})
			}
		}
		e.stack = append(e.stack, fr)
		if e.opt.MaxDepth > 0 && len(e.stack) > e.opt.MaxDepth {
			return Token{}, IssueError{SimpleIssue{Code: CodeParseError, Path: normalizeIssuePath(path), Message: "max depth exceeded", Offset: e.Location()}}
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
	case KindKey:
		if n := len(e.stack); n > 0 {
			top := &e.stack[n-1]
			if top.keys != nil {
				if _, ok := top.keys[tok.String]; ok {
					return Token{}, IssueError{SimpleIssue{
						Code:    CodeDuplicateKey,
						Path:    normalizeIssuePath(path),
						Message: "key '" + tok.String + "' duplicated",
						Offset:  tok.Offset,
					}}
				}
				top.keys[tok.String] = struct{}{}
			}
		}
	}

	if e.opt.MaxBytes > 0 {
		if off := e.Location(); off >= 0 && off > e.opt.MaxBytes {
			return Token{}, IssueError{SimpleIssue{Code: CodeTruncated, Path: normalizeIssuePath(path), Message: "max bytes exceeded", Offset: off}}
		}
	}
	return tok, nil
}

// pathFor returns the JSON Pointer of the value a token belongs to.
func (e *enforcingTokenSource) pathFor(tok Token) string {
	if len(e.stack) == 0 {
		return ""
	}
	top := &e.stack[len(e.stack)-1]
	switch tok.Kind {
	case KindKey:
		top.pendingKey = tok.String
		return JoinPointer(top.path, tok.String)
	case KindEndObject, KindEndArray:
		return top.path
	}
	if top.kind == kindArray {
		p := JoinPointer(top.path, strconv.Itoa(top.nextIndex))
		top.nextIndex++
		return p
	}
	return JoinPointer(top.path, top.pendingKey)
}

func (e *enforcingTokenSource) Location() int64 { return e.inner.Location() }

func normalizeIssuePath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

var jsonPointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// JoinPointer appends one RFC 6901 reference token to a JSON Pointer.
func JoinPointer(base, token string) string {
	return base + "/" + jsonPointerEscaper.Replace(token)
}
