// Package schema holds the static descriptors the codec is driven by:
// messages, fields, enums and oneof groups, plus a Registry that links named
// references between them.
//
// Descriptors are validated when they are built and are read-only afterwards,
// so a Registry can be shared by any number of concurrent encoders and
// decoders. Construction errors wrap ErrInvalidSchema and are meant to be
// treated as startup faults (see the Must* helpers).
package schema
