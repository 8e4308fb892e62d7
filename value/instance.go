package value

import (
	"errors"
	"fmt"

	"github.com/reoring/pbjson/schema"
)

var (
	// ErrForeignField is returned when a field does not belong to the instance's message.
	ErrForeignField = errors.New("value: field belongs to another message")
	// ErrKindMismatch is returned when a value's kind does not match the field's type.
	ErrKindMismatch = errors.New("value: kind mismatch")
	// ErrUnknownEnumValue is returned when an enum number has no symbolic name.
	ErrUnknownEnumValue = errors.New("value: unknown enum value")
	// ErrUnknownField is returned by the name-based setters.
	ErrUnknownField = errors.New("value: unknown field")
	// ErrDuplicateMapKey is returned when two map entries spell the same key.
	ErrDuplicateMapKey = errors.New("value: duplicate map key")
)

type slot struct {
	v   Value
	set bool
}

// oneofSlot is the single tagged slot of a oneof group: the member that holds
// the value, or nil.
type oneofSlot struct {
	field *schema.Field
	v     Value
}

// Instance holds the field values of one message. Oneof members share one
// slot per group, so at most one of them is ever populated.
type Instance struct {
	desc   *schema.Message
	slots  []slot
	oneofs []oneofSlot
}

// New returns an empty instance of md.
func New(md *schema.Message) *Instance {
	return &Instance{
		desc:   md,
		slots:  make([]slot, len(md.Fields)),
		oneofs: make([]oneofSlot, len(md.Oneofs)),
	}
}

// Descriptor returns the message descriptor of m.
func (m *Instance) Descriptor() *schema.Message { return m.desc }

// Set stores v in field f. Enum numbers must be declared by the field's enum.
// Setting a oneof member replaces whichever sibling was populated.
func (m *Instance) Set(f *schema.Field, v Value) error {
	return m.set(f, v, true)
}

// SetUnchecked is like Set but accepts enum numbers that have no symbolic
// name. It exists for values produced by binary decoding, where enums are
// open; such values fail to encode.
func (m *Instance) SetUnchecked(f *schema.Field, v Value) error {
	return m.set(f, v, false)
}

// SetByName resolves name (either spelling) and calls Set.
func (m *Instance) SetByName(name string, v Value) error {
	f := m.desc.Lookup(name)
	if f == nil {
		return fmt.Errorf("%w: %s.%s", ErrUnknownField, m.desc.FullName, name)
	}
	return m.Set(f, v)
}

// MustSet is like SetByName but panics on error. It is meant for building
// fixtures.
func (m *Instance) MustSet(name string, v Value) *Instance {
	if err := m.SetByName(name, v); err != nil {
		panic(err)
	}
	return m
}

func (m *Instance) set(f *schema.Field, v Value, strictEnum bool) error {
	if err := m.owns(f); err != nil {
		return err
	}
	if err := check(f, v, strictEnum); err != nil {
		return fmt.Errorf("%s: %w", f, err)
	}
	v = fillMessages(f, v)
	if f.Oneof != nil {
		m.oneofs[f.Oneof.Index] = oneofSlot{field: f, v: v}
		return nil
	}
	m.slots[f.Index] = slot{v: v, set: true}
	return nil
}

func (m *Instance) owns(f *schema.Field) error {
	if f == nil || f.Parent != m.desc {
		return ErrForeignField
	}
	return nil
}

// Get returns the value of f, or its default when unpopulated.
func (m *Instance) Get(f *schema.Field) Value {
	if m.owns(f) != nil {
		return Value{}
	}
	if f.Oneof != nil {
		if s := m.oneofs[f.Oneof.Index]; s.field == f {
			return s.v
		}
	} else if s := m.slots[f.Index]; s.set {
		return s.v
	}
	if f.IsList() {
		return List()
	}
	return Zero(f.Type)
}

// GetByName resolves name (either spelling) and calls Get.
func (m *Instance) GetByName(name string) Value {
	f := m.desc.Lookup(name)
	if f == nil {
		return Value{}
	}
	return m.Get(f)
}

// Has reports whether f is populated. Fields with explicit presence are
// populated once set, even to a zero value; other fields are populated when
// they hold a non-zero value.
func (m *Instance) Has(f *schema.Field) bool {
	if m.owns(f) != nil {
		return false
	}
	if f.Oneof != nil {
		return m.oneofs[f.Oneof.Index].field == f
	}
	s := m.slots[f.Index]
	if !s.set {
		return false
	}
	if f.HasPresence() {
		return true
	}
	return !s.v.IsZero()
}

// Clear resets f to its unpopulated state.
func (m *Instance) Clear(f *schema.Field) {
	if m.owns(f) != nil {
		return
	}
	if f.Oneof != nil {
		if m.oneofs[f.Oneof.Index].field == f {
			m.oneofs[f.Oneof.Index] = oneofSlot{}
		}
		return
	}
	m.slots[f.Index] = slot{}
}

// WhichOneof returns the populated member of o, or nil.
func (m *Instance) WhichOneof(o *schema.Oneof) *schema.Field {
	if o == nil || o.Index >= len(m.oneofs) {
		return nil
	}
	return m.oneofs[o.Index].field
}

// Range calls fn for every populated field in declaration order until fn
// returns false.
func (m *Instance) Range(fn func(f *schema.Field, v Value) bool) {
	for _, f := range m.desc.Fields {
		if !m.Has(f) {
			continue
		}
		if !fn(f, m.Get(f)) {
			return
		}
	}
}

// Equal reports whether m and o describe the same message with the same
// populated fields and values.
func (m *Instance) Equal(o *Instance) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.desc != o.desc {
		return false
	}
	for _, f := range m.desc.Fields {
		if m.Has(f) != o.Has(f) {
			return false
		}
		if m.Has(f) && !m.Get(f).Equal(o.Get(f)) {
			return false
		}
	}
	return true
}

func check(f *schema.Field, v Value, strictEnum bool) error {
	if f.IsList() {
		if !v.list {
			return fmt.Errorf("%w: repeated field needs a list", ErrKindMismatch)
		}
		for i, it := range v.items {
			if it.list {
				return fmt.Errorf("%w: element %d is a list", ErrKindMismatch, i)
			}
			if err := checkType(f.Type, it, strictEnum); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
		return nil
	}
	if v.list {
		return fmt.Errorf("%w: list for singular field", ErrKindMismatch)
	}
	return checkType(f.Type, v, strictEnum)
}

func checkType(t schema.Type, v Value, strictEnum bool) error {
	if v.kind != t.Kind {
		return fmt.Errorf("%w: have %s, want %s", ErrKindMismatch, v.kind, t.Kind)
	}
	switch t.Kind {
	case schema.KindEnum:
		if strictEnum && t.Enum != nil {
			if _, ok := t.Enum.ByNumber(v.EnumNumber()); !ok {
				return fmt.Errorf("%w: %d in %s", ErrUnknownEnumValue, v.EnumNumber(), t.Enum.FullName)
			}
		}
	case schema.KindMessage:
		if v.msg != nil && t.Message != nil && v.msg.desc != t.Message {
			return fmt.Errorf("%w: have message %s, want %s", ErrKindMismatch, v.msg.desc.FullName, t.Message.FullName)
		}
	case schema.KindMap:
		seen := make(map[string]struct{}, len(v.entries))
		for i, e := range v.entries {
			if err := checkType(*t.Key, e.Key, strictEnum); err != nil {
				return fmt.Errorf("entry %d key: %w", i, err)
			}
			k := e.Key.MapKey()
			if _, dup := seen[k]; dup {
				return fmt.Errorf("entry %d: %w %q", i, ErrDuplicateMapKey, k)
			}
			seen[k] = struct{}{}
			if err := checkType(*t.Elem, e.Value, strictEnum); err != nil {
				return fmt.Errorf("entry %d value: %w", i, err)
			}
		}
	}
	return nil
}

// fillMessages replaces nil message values with empty instances, so a
// populated message field encodes and decodes back to an equal value.
func fillMessages(f *schema.Field, v Value) Value {
	if f.IsList() {
		if f.Type.Kind != schema.KindMessage {
			return v
		}
		var items []Value
		for i, it := range v.items {
			if it.msg != nil {
				continue
			}
			if items == nil {
				items = append([]Value(nil), v.items...)
			}
			items[i] = fillMessage(f.Type, it)
		}
		if items != nil {
			v.items = items
		}
		return v
	}
	switch f.Type.Kind {
	case schema.KindMessage:
		return fillMessage(f.Type, v)
	case schema.KindMap:
		if f.Type.Elem.Kind != schema.KindMessage {
			return v
		}
		var entries []Entry
		for i, e := range v.entries {
			if e.Value.msg != nil {
				continue
			}
			if entries == nil {
				entries = append([]Entry(nil), v.entries...)
			}
			entries[i].Value = fillMessage(*f.Type.Elem, e.Value)
		}
		if entries != nil {
			v.entries = entries
		}
	}
	return v
}

func fillMessage(t schema.Type, v Value) Value {
	if v.msg == nil && t.Message != nil {
		v.msg = New(t.Message)
	}
	return v
}
