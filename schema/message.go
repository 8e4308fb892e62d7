package schema

import (
	"errors"
	"fmt"
)

// ErrInvalidSchema wraps every descriptor construction failure.
var ErrInvalidSchema = errors.New("schema: invalid descriptor")

// Field describes one declared field of a message.
type Field struct {
	Name     string // wire name (snake_case)
	JSONName string // canonical JSON name (lowerCamelCase)
	Type     Type
	Presence Presence
	Oneof    *Oneof // nil unless the field is a oneof member
	Index    int    // declaration index within Parent.Fields
	Parent   *Message
}

// IsList reports whether the field is repeated.
func (f *Field) IsList() bool { return f.Presence == Repeated }

// IsMap reports whether the field is a map.
func (f *Field) IsMap() bool { return f.Type.Kind == KindMap }

// HasPresence reports whether the field tracks explicit presence: optional
// fields, singular message and timestamp fields, and oneof members.
func (f *Field) HasPresence() bool {
	if f.Presence == Repeated || f.Type.Kind == KindMap {
		return false
	}
	if f.Presence == Optional || f.Oneof != nil {
		return true
	}
	return f.Type.Kind == KindMessage || f.Type.Kind == KindTimestamp
}

func (f *Field) String() string {
	if f.Parent == nil {
		return f.Name
	}
	return f.Parent.FullName + "." + f.Name
}

// Oneof is a group of mutually exclusive fields.
type Oneof struct {
	Name   string
	Index  int
	Fields []*Field
}

// Message describes a message type. Fields keep declaration order, which is
// the order the encoder emits keys in.
type Message struct {
	FullName string
	Fields   []*Field
	Oneofs   []*Oneof

	names resolver
}

// FieldDef is the input to NewMessage. JSONName defaults to the protoc
// derivation of Name; Oneof names the group the field belongs to.
type FieldDef struct {
	Name     string
	JSONName string
	Type     Type
	Presence Presence
	Oneof    string
}

// NewMessage validates and builds a message descriptor. Named references
// (MessageRef, EnumRef) stay unresolved until the message is added to a Registry.
func NewMessage(fullName string, defs ...FieldDef) (*Message, error) {
	if fullName == "" {
		return nil, fmt.Errorf("%w: message without a name", ErrInvalidSchema)
	}
	m := &Message{FullName: fullName, names: make(resolver, 2*len(defs))}
	groups := map[string]*Oneof{}
	for i, d := range defs {
		if d.Name == "" {
			return nil, fmt.Errorf("%w: message %s: field %d has no name", ErrInvalidSchema, fullName, i)
		}
		f := &Field{
			Name:     d.Name,
			JSONName: d.JSONName,
			Type:     d.Type,
			Presence: d.Presence,
			Index:    i,
			Parent:   m,
		}
		if f.JSONName == "" {
			f.JSONName = JSONName(d.Name)
		}
		if err := checkFieldType(f); err != nil {
			return nil, fmt.Errorf("%w: message %s: field %q: %v", ErrInvalidSchema, fullName, d.Name, err)
		}
		if d.Oneof != "" {
			if f.Presence != Singular {
				return nil, fmt.Errorf("%w: message %s: oneof member %q must be singular", ErrInvalidSchema, fullName, d.Name)
			}
			if f.Type.Kind == KindMap {
				return nil, fmt.Errorf("%w: message %s: oneof member %q cannot be a map", ErrInvalidSchema, fullName, d.Name)
			}
			o, ok := groups[d.Oneof]
			if !ok {
				o = &Oneof{Name: d.Oneof, Index: len(m.Oneofs)}
				groups[d.Oneof] = o
				m.Oneofs = append(m.Oneofs, o)
			}
			o.Fields = append(o.Fields, f)
			f.Oneof = o
		}
		if err := m.names.add(f); err != nil {
			return nil, fmt.Errorf("%w: message %s: %v", ErrInvalidSchema, fullName, err)
		}
		m.Fields = append(m.Fields, f)
	}
	for _, o := range m.Oneofs {
		if f := m.names.lookup(o.Name); f != nil && f.Oneof != o {
			return nil, fmt.Errorf("%w: message %s: oneof %q collides with field %q", ErrInvalidSchema, fullName, o.Name, f.Name)
		}
	}
	return m, nil
}

// MustMessage is like NewMessage but panics on error.
func MustMessage(fullName string, defs ...FieldDef) *Message {
	m, err := NewMessage(fullName, defs...)
	if err != nil {
		panic(err)
	}
	return m
}

func checkFieldType(f *Field) error {
	t := f.Type
	switch t.Kind {
	case KindInt32, KindInt64, KindUint32, KindUint64, KindBool, KindString, KindBytes, KindTimestamp:
	case KindEnum:
		if t.Enum == nil && t.ref == "" {
			return errors.New("enum type without descriptor")
		}
	case KindMessage:
		if t.Message == nil && t.ref == "" {
			return errors.New("message type without descriptor")
		}
	case KindMap:
		if f.Presence != Singular {
			return fmt.Errorf("map fields cannot be %s", f.Presence)
		}
		if t.Key == nil || t.Elem == nil {
			return errors.New("map type without key or value")
		}
		if !t.Key.Kind.validMapKey() {
			return fmt.Errorf("invalid map key kind %s", t.Key.Kind)
		}
		switch t.Elem.Kind {
		case KindMap, KindInvalid:
			return fmt.Errorf("invalid map value kind %s", t.Elem.Kind)
		case KindEnum:
			if t.Elem.Enum == nil && t.Elem.ref == "" {
				return errors.New("map value enum without descriptor")
			}
		case KindMessage:
			if t.Elem.Message == nil && t.Elem.ref == "" {
				return errors.New("map value message without descriptor")
			}
		}
	default:
		return fmt.Errorf("invalid kind %s", t.Kind)
	}
	return nil
}

// Lookup resolves a JSON object key against the field's wire name or JSON
// name. It returns nil for unknown keys.
func (m *Message) Lookup(name string) *Field { return m.names.lookup(name) }

// FieldByName returns the field with the given wire name.
func (m *Message) FieldByName(name string) *Field {
	for _, f := range m.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// OneofByName returns the oneof group with the given name.
func (m *Message) OneofByName(name string) *Oneof {
	for _, o := range m.Oneofs {
		if o.Name == name {
			return o
		}
	}
	return nil
}
