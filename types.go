package pbjson

// UnknownPolicy controls how object keys that match no field are handled.
type UnknownPolicy int

const (
	UnknownStrip  UnknownPolicy = iota // Skip unknown keys and their values.
	UnknownStrict                      // Reject unknown keys with unknown_field.
)

func (p UnknownPolicy) String() string {
	if p == UnknownStrict {
		return "strict"
	}
	return "strip"
}

// Strictness configures enforcement applied to the raw token stream.
type Strictness struct {
	// OnDuplicateKey applies to every object in the input, including unknown
	// subtrees that the decoder skips. Duplicate keys of known fields are
	// always rejected as duplicate_field regardless of this setting.
	OnDuplicateKey Severity
}

// Severity expresses the severity level for raw stream checks.
type Severity int

const (
	Ignore Severity = iota
	Error
)

// PresenceOpt configures presence collection for DecodeWithMeta.
type PresenceOpt struct {
	Collect bool
	Include []string // pointer prefixes to keep; empty keeps everything
	Exclude []string // pointer prefixes to drop
}

// PathRenderOpt controls how presence paths are stored.
type PathRenderOpt struct {
	Intern bool
}

// DecodeOpt bundles decoding options. When several are passed, the last one
// wins.
type DecodeOpt struct {
	Unknown    UnknownPolicy
	Strictness Strictness
	MaxDepth   int   // 0 means unlimited
	MaxBytes   int64 // 0 means unlimited
	Presence   PresenceOpt
	PathRender PathRenderOpt
}

// EncodeOpt bundles encoding options. When several are passed, the last one
// wins.
type EncodeOpt struct {
	// EmitUnpopulated writes zero-valued fields that have no explicit
	// presence. Unset optional, message, timestamp and oneof fields stay
	// omitted.
	EmitUnpopulated bool
	// UseProtoNames writes wire names (snake_case) instead of JSON names.
	UseProtoNames bool
	// Indent, when non-empty, pretty-prints the output with this indent.
	Indent string
}

// EncodeMode selects canonical output or output guided by presence metadata.
type EncodeMode int

const (
	EncodeCanonical EncodeMode = iota
	EncodePreserve
)

func lastDecodeOpt(opts []DecodeOpt) DecodeOpt {
	if len(opts) == 0 {
		return DecodeOpt{}
	}
	return opts[len(opts)-1]
}

func lastEncodeOpt(opts []EncodeOpt) EncodeOpt {
	if len(opts) == 0 {
		return EncodeOpt{}
	}
	return opts[len(opts)-1]
}
