package pbjson

import (
	"strconv"
	"strings"
)

// PathRef builds JSON Pointer paths in a chain-safe way.
type PathRef interface {
	Field(name string) PathRef
	Index(i int) PathRef
	Pointer() string
	Dotted() string
}

// RootPath returns the PathRef of the top-level message.
func RootPath() PathRef { return &pathRef{} }

// PathAt parses a JSON Pointer ("/a/0/b", "" or "/") into a PathRef.
func PathAt(pointer string) PathRef {
	if pointer == "" || pointer == "/" {
		return RootPath()
	}
	var parts []string
	for _, p := range strings.Split(strings.TrimPrefix(pointer, "/"), "/") {
		parts = append(parts, pointerUnescaper.Replace(p))
	}
	return &pathRef{parts: parts}
}

// DottedPath renders a JSON Pointer in the field-path form used in messages:
// array indexes and integer map keys in brackets, everything else dotted.
func DottedPath(pointer string) string { return PathAt(pointer).Dotted() }

var (
	pointerEscaper   = strings.NewReplacer("~", "~0", "/", "~1")
	pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

type pathRef struct {
	parts []string // unescaped reference tokens
}

func (p *pathRef) Field(name string) PathRef {
	return &pathRef{parts: append(append([]string{}, p.parts...), name)}
}

func (p *pathRef) Index(i int) PathRef {
	return &pathRef{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

func (p *pathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, part := range p.parts {
		b.WriteByte('/')
		b.WriteString(pointerEscaper.Replace(part))
	}
	return b.String()
}

func (p *pathRef) Dotted() string {
	var b strings.Builder
	for i, part := range p.parts {
		if isIndex(part) {
			b.WriteByte('[')
			b.WriteString(part)
			b.WriteByte(']')
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" || len(s) > 20 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
