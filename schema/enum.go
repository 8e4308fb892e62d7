package schema

import "fmt"

// EnumValue is one symbolic name of an enum.
type EnumValue struct {
	Name   string
	Number int32
}

// Enum describes an enum type. Values keep declaration order.
type Enum struct {
	FullName string
	Values   []EnumValue

	byName   map[string]int
	byNumber map[int32]int
}

// NewEnum validates and builds an enum descriptor. The zero number must be
// declared; names and numbers must be unique.
func NewEnum(fullName string, values ...EnumValue) (*Enum, error) {
	if fullName == "" {
		return nil, fmt.Errorf("%w: enum without a name", ErrInvalidSchema)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: enum %s: no values", ErrInvalidSchema, fullName)
	}
	e := &Enum{
		FullName: fullName,
		Values:   append([]EnumValue(nil), values...),
		byName:   make(map[string]int, len(values)),
		byNumber: make(map[int32]int, len(values)),
	}
	for i, v := range e.Values {
		if v.Name == "" {
			return nil, fmt.Errorf("%w: enum %s: value %d has no name", ErrInvalidSchema, fullName, v.Number)
		}
		if _, dup := e.byName[v.Name]; dup {
			return nil, fmt.Errorf("%w: enum %s: duplicate name %q", ErrInvalidSchema, fullName, v.Name)
		}
		if prev, dup := e.byNumber[v.Number]; dup {
			return nil, fmt.Errorf("%w: enum %s: %q and %q share number %d", ErrInvalidSchema, fullName, e.Values[prev].Name, v.Name, v.Number)
		}
		e.byName[v.Name] = i
		e.byNumber[v.Number] = i
	}
	if _, ok := e.byNumber[0]; !ok {
		return nil, fmt.Errorf("%w: enum %s: number 0 has no name", ErrInvalidSchema, fullName)
	}
	return e, nil
}

// MustEnum is like NewEnum but panics on error.
func MustEnum(fullName string, values ...EnumValue) *Enum {
	e, err := NewEnum(fullName, values...)
	if err != nil {
		panic(err)
	}
	return e
}

// ByName looks up a value by its symbolic name (case-sensitive).
func (e *Enum) ByName(name string) (EnumValue, bool) {
	i, ok := e.byName[name]
	if !ok {
		return EnumValue{}, false
	}
	return e.Values[i], true
}

// ByNumber looks up a value by number.
func (e *Enum) ByNumber(n int32) (EnumValue, bool) {
	i, ok := e.byNumber[n]
	if !ok {
		return EnumValue{}, false
	}
	return e.Values[i], true
}

// Default returns the value with number 0.
func (e *Enum) Default() EnumValue {
	v, _ := e.ByNumber(0)
	return v
}
