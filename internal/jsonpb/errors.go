package jsonpb

import (
	"fmt"

	eng "github.com/reoring/pbjson/internal/engine"
)

// Issue codes raised by the codec. The root package re-exports them.
const (
	CodeUnknownField     = "unknown_field"
	CodeDuplicateField   = "duplicate_field"
	CodeInvalidNumber    = "invalid_number"
	CodeInvalidBytes     = "invalid_bytes"
	CodeUnknownEnumValue = "unknown_enum_value"
	CodeTypeMismatch     = "type_mismatch"
	CodeInvalidTimestamp = "invalid_timestamp"
)

func pointer(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

func issue(code, path, field string, cause error, format string, args ...any) error {
	return eng.IssueError{SimpleIssue: eng.SimpleIssue{
		Code:    code,
		Path:    pointer(path),
		Field:   field,
		Message: fmt.Sprintf(format, args...),
		Offset:  -1,
		Cause:   cause,
	}}
}
