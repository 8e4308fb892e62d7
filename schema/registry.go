package schema

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/zeebo/blake3"
)

// Registry is an immutable, linked set of message and enum descriptors.
// It is safe for concurrent use once built.
type Registry struct {
	messages map[string]*Message
	enums    map[string]*Enum
	fp       string
}

// NewRegistry links named references between the given descriptors and
// freezes them. Messages and enums reachable through bound types are
// registered as well. Unresolved references and duplicate full names are errors.
func NewRegistry(msgs []*Message, enums []*Enum) (*Registry, error) {
	r := &Registry{messages: map[string]*Message{}, enums: map[string]*Enum{}}
	for _, e := range enums {
		if err := r.addEnum(e); err != nil {
			return nil, err
		}
	}
	for _, m := range msgs {
		if err := r.addMessage(m); err != nil {
			return nil, err
		}
	}
	for _, name := range r.messageNames() {
		m := r.messages[name]
		for _, f := range m.Fields {
			if err := r.link(&f.Type); err != nil {
				return nil, fmt.Errorf("%w: message %s: field %q: %v", ErrInvalidSchema, m.FullName, f.Name, err)
			}
		}
	}
	r.fp = r.fingerprint()
	return r, nil
}

// MustRegistry is like NewRegistry but panics on error.
func MustRegistry(msgs []*Message, enums []*Enum) *Registry {
	r, err := NewRegistry(msgs, enums)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) addEnum(e *Enum) error {
	if e == nil {
		return fmt.Errorf("%w: nil enum", ErrInvalidSchema)
	}
	if prev, ok := r.enums[e.FullName]; ok {
		if prev == e {
			return nil
		}
		return fmt.Errorf("%w: duplicate enum %s", ErrInvalidSchema, e.FullName)
	}
	if _, ok := r.messages[e.FullName]; ok {
		return fmt.Errorf("%w: enum %s collides with a message", ErrInvalidSchema, e.FullName)
	}
	r.enums[e.FullName] = e
	return nil
}

func (r *Registry) addMessage(m *Message) error {
	if m == nil {
		return fmt.Errorf("%w: nil message", ErrInvalidSchema)
	}
	if prev, ok := r.messages[m.FullName]; ok {
		if prev == m {
			return nil
		}
		return fmt.Errorf("%w: duplicate message %s", ErrInvalidSchema, m.FullName)
	}
	if _, ok := r.enums[m.FullName]; ok {
		return fmt.Errorf("%w: message %s collides with an enum", ErrInvalidSchema, m.FullName)
	}
	r.messages[m.FullName] = m
	for _, f := range m.Fields {
		if err := r.addReachable(f.Type); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) addReachable(t Type) error {
	switch t.Kind {
	case KindEnum:
		if t.Enum != nil {
			return r.addEnum(t.Enum)
		}
	case KindMessage:
		if t.Message != nil {
			return r.addMessage(t.Message)
		}
	case KindMap:
		if t.Elem != nil {
			return r.addReachable(*t.Elem)
		}
	}
	return nil
}

func (r *Registry) link(t *Type) error {
	switch t.Kind {
	case KindEnum:
		if t.Enum == nil {
			e, ok := r.enums[t.ref]
			if !ok {
				return fmt.Errorf("unresolved enum %q", t.ref)
			}
			t.Enum = e
		}
	case KindMessage:
		if t.Message == nil {
			m, ok := r.messages[t.ref]
			if !ok {
				return fmt.Errorf("unresolved message %q", t.ref)
			}
			t.Message = m
		}
	case KindMap:
		return r.link(t.Elem)
	}
	return nil
}

// Describe returns the message descriptor registered under fullName.
func (r *Registry) Describe(fullName string) (*Message, bool) {
	m, ok := r.messages[fullName]
	return m, ok
}

// MustDescribe is like Describe but panics when the message is unknown.
func (r *Registry) MustDescribe(fullName string) *Message {
	m, ok := r.messages[fullName]
	if !ok {
		panic("schema: unknown message " + fullName)
	}
	return m
}

// Enum returns the enum descriptor registered under fullName.
func (r *Registry) Enum(fullName string) (*Enum, bool) {
	e, ok := r.enums[fullName]
	return e, ok
}

// Messages returns every registered message sorted by full name.
func (r *Registry) Messages() []*Message {
	out := make([]*Message, 0, len(r.messages))
	for _, name := range r.messageNames() {
		out = append(out, r.messages[name])
	}
	return out
}

// Enums returns every registered enum sorted by full name.
func (r *Registry) Enums() []*Enum {
	names := make([]string, 0, len(r.enums))
	for name := range r.enums {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]*Enum, 0, len(names))
	for _, name := range names {
		out = append(out, r.enums[name])
	}
	return out
}

// Fingerprint is a BLAKE3-256 digest (hex) of the canonical descriptor text.
// Two registries describing the same JSON mapping share a fingerprint.
func (r *Registry) Fingerprint() string { return r.fp }

func (r *Registry) messageNames() []string {
	names := make([]string, 0, len(r.messages))
	for name := range r.messages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) fingerprint() string {
	var b strings.Builder
	for _, e := range r.Enums() {
		b.WriteString("enum ")
		b.WriteString(e.FullName)
		b.WriteByte('\n')
		for _, v := range e.Values {
			b.WriteString("  ")
			b.WriteString(v.Name)
			b.WriteByte('=')
			b.WriteString(strconv.FormatInt(int64(v.Number), 10))
			b.WriteByte('\n')
		}
	}
	for _, m := range r.Messages() {
		b.WriteString("message ")
		b.WriteString(m.FullName)
		b.WriteByte('\n')
		for _, f := range m.Fields {
			fmt.Fprintf(&b, "  %s %s %s %s", f.Presence, f.Type, f.Name, f.JSONName)
			if f.Oneof != nil {
				b.WriteString(" oneof=")
				b.WriteString(f.Oneof.Name)
			}
			b.WriteByte('\n')
		}
	}
	sum := blake3.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
