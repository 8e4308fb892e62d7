package schema

import (
	"fmt"
	"strings"
)

// resolver maps both accepted spellings of every field to its descriptor.
// Lookup is exact and case-sensitive.
type resolver map[string]*Field

func (r resolver) add(f *Field) error {
	for _, name := range [2]string{f.Name, f.JSONName} {
		if prev, ok := r[name]; ok && prev != f {
			return fmt.Errorf("key %q of field %q collides with field %q", name, f.Name, prev.Name)
		}
		r[name] = f
	}
	return nil
}

func (r resolver) lookup(name string) *Field { return r[name] }

// JSONName derives the canonical JSON name from a wire name the way protoc
// does: underscores are dropped and the following character is upper-cased.
func JSONName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	upper := false
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_':
			upper = true
		case upper && 'a' <= c && c <= 'z':
			b.WriteByte(c - 'a' + 'A')
			upper = false
		default:
			b.WriteByte(c)
			upper = false
		}
	}
	return b.String()
}
