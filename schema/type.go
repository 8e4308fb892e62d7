package schema

import "strings"

// Type is the tagged FieldKind variant. Enum and Message are set for their
// respective kinds; Key and Elem are set for maps.
type Type struct {
	Kind    Kind
	Enum    *Enum
	Message *Message
	Key     *Type
	Elem    *Type

	// ref names an enum or message that is linked by NewRegistry.
	ref string
}

// Scalar returns the Type for a scalar kind (integers, bool, string, bytes, timestamp).
func Scalar(k Kind) Type { return Type{Kind: k} }

// EnumOf returns an enum Type bound to e.
func EnumOf(e *Enum) Type { return Type{Kind: KindEnum, Enum: e} }

// MessageOf returns a message Type bound to m.
func MessageOf(m *Message) Type { return Type{Kind: KindMessage, Message: m} }

// MapOf returns a map Type with the given key and value types.
func MapOf(key, elem Type) Type {
	k, e := key, elem
	return Type{Kind: KindMap, Key: &k, Elem: &e}
}

// EnumRef returns an enum Type resolved by full name when the registry is built.
func EnumRef(fullName string) Type { return Type{Kind: KindEnum, ref: fullName} }

// MessageRef returns a message Type resolved by full name when the registry is
// built. It is how recursive and forward references are declared.
func MessageRef(fullName string) Type { return Type{Kind: KindMessage, ref: fullName} }

// Ref returns the unresolved reference name, if any.
func (t Type) Ref() string { return t.ref }

// Resolved reports whether every named type reachable from t is bound.
func (t Type) Resolved() bool {
	switch t.Kind {
	case KindEnum:
		return t.Enum != nil
	case KindMessage:
		return t.Message != nil
	case KindMap:
		return t.Key != nil && t.Elem != nil && t.Elem.Resolved()
	}
	return true
}

// String renders the type the way schema files spell it.
func (t Type) String() string {
	switch t.Kind {
	case KindEnum:
		if t.Enum != nil {
			return t.Enum.FullName
		}
		return t.ref
	case KindMessage:
		if t.Message != nil {
			return t.Message.FullName
		}
		return t.ref
	case KindMap:
		var b strings.Builder
		b.WriteString("map<")
		if t.Key != nil {
			b.WriteString(t.Key.String())
		}
		b.WriteString(",")
		if t.Elem != nil {
			b.WriteString(t.Elem.String())
		}
		b.WriteString(">")
		return b.String()
	}
	return t.Kind.String()
}
