package schema

// Kind enumerates the field kinds understood by the codec.
type Kind int

const (
	KindInvalid Kind = iota
	KindInt32
	KindInt64
	KindUint32
	KindUint64
	KindBool
	KindString
	KindBytes
	KindEnum
	KindMessage
	KindMap
	// KindTimestamp is the google.protobuf.Timestamp well-known type. It is
	// carried as a first-class kind because its JSON form is an RFC 3339 string.
	KindTimestamp
)

var kindNames = [...]string{
	KindInvalid:   "invalid",
	KindInt32:     "int32",
	KindInt64:     "int64",
	KindUint32:    "uint32",
	KindUint64:    "uint64",
	KindBool:      "bool",
	KindString:    "string",
	KindBytes:     "bytes",
	KindEnum:      "enum",
	KindMessage:   "message",
	KindMap:       "map",
	KindTimestamp: "timestamp",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "invalid"
	}
	return kindNames[k]
}

// ParseKind maps a scalar kind name ("uint64", "bytes", ...) back to its Kind.
// Composite kinds (enum, message, map) are not returned.
func ParseKind(name string) (Kind, bool) {
	switch name {
	case "int32", "sint32", "sfixed32":
		return KindInt32, true
	case "int64", "sint64", "sfixed64":
		return KindInt64, true
	case "uint32", "fixed32":
		return KindUint32, true
	case "uint64", "fixed64":
		return KindUint64, true
	case "bool":
		return KindBool, true
	case "string":
		return KindString, true
	case "bytes":
		return KindBytes, true
	case "timestamp", "google.protobuf.Timestamp":
		return KindTimestamp, true
	}
	return KindInvalid, false
}

// IsInteger reports whether k is one of the four integer kinds.
func (k Kind) IsInteger() bool {
	switch k {
	case KindInt32, KindInt64, KindUint32, KindUint64:
		return true
	}
	return false
}

// Is64 reports whether k is rendered as a decimal string in JSON.
func (k Kind) Is64() bool { return k == KindInt64 || k == KindUint64 }

// validMapKey reports whether k can be used as a map key kind.
func (k Kind) validMapKey() bool {
	return k.IsInteger() || k == KindBool || k == KindString
}

// Presence is the cardinality of a field.
type Presence int

const (
	// Singular fields have implicit presence: a zero value is indistinguishable from absence.
	Singular Presence = iota
	// Optional fields track explicit presence.
	Optional
	// Repeated fields hold an ordered list.
	Repeated
)

func (p Presence) String() string {
	switch p {
	case Singular:
		return "singular"
	case Optional:
		return "optional"
	case Repeated:
		return "repeated"
	}
	return "invalid"
}
