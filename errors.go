package pbjson

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/pbjson/i18n"
	eng "github.com/reoring/pbjson/internal/engine"
	"github.com/reoring/pbjson/internal/jsonpb"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeUnknownField     = jsonpb.CodeUnknownField
	CodeDuplicateField   = jsonpb.CodeDuplicateField
	CodeInvalidNumber    = jsonpb.CodeInvalidNumber
	CodeInvalidBytes     = jsonpb.CodeInvalidBytes
	CodeUnknownEnumValue = jsonpb.CodeUnknownEnumValue
	CodeTypeMismatch     = jsonpb.CodeTypeMismatch
	CodeInvalidTimestamp = jsonpb.CodeInvalidTimestamp
	// Raised below the schema layer: malformed JSON, enforcement limits.
	CodeParseError   = eng.CodeParseError
	CodeTruncated    = eng.CodeTruncated
	CodeDuplicateKey = eng.CodeDuplicateKey
)

// Sentinel errors, one per code. errors.Is(err, ErrDuplicateField) holds for
// any Issues error whose first issue has that code.
var (
	ErrUnknownField     = errors.New(CodeUnknownField)
	ErrDuplicateField   = errors.New(CodeDuplicateField)
	ErrInvalidNumber    = errors.New(CodeInvalidNumber)
	ErrInvalidBytes     = errors.New(CodeInvalidBytes)
	ErrUnknownEnumValue = errors.New(CodeUnknownEnumValue)
	ErrTypeMismatch     = errors.New(CodeTypeMismatch)
	ErrInvalidTimestamp = errors.New(CodeInvalidTimestamp)
	ErrParse            = errors.New(CodeParseError)
	ErrTruncated        = errors.New(CodeTruncated)
	ErrDuplicateKey     = errors.New(CodeDuplicateKey)
)

var sentinels = map[string]error{
	CodeUnknownField:     ErrUnknownField,
	CodeDuplicateField:   ErrDuplicateField,
	CodeInvalidNumber:    ErrInvalidNumber,
	CodeInvalidBytes:     ErrInvalidBytes,
	CodeUnknownEnumValue: ErrUnknownEnumValue,
	CodeTypeMismatch:     ErrTypeMismatch,
	CodeInvalidTimestamp: ErrInvalidTimestamp,
	CodeParseError:       ErrParse,
	CodeTruncated:        ErrTruncated,
	CodeDuplicateKey:     ErrDuplicateKey,
}

// Issue represents a single codec error.
type Issue struct {
	Path    string // JSON Pointer of the offending input location (for example: /msgs/2/txId).
	Code    string // One of the codes listed above.
	Message string
	Field   string // JSON name of the field, or the oneof group name, when known.
	Cause   error  // Optional: underlying error.
	Offset  int64  // Byte offset in the input source (-1 when unknown).
}

// FieldPath renders Path in dotted form: /msgs/2/txId becomes msgs[2].txId.
func (it Issue) FieldPath() string { return DottedPath(it.Path) }

// Localized renders the issue through the current i18n translator.
func (it Issue) Localized() string {
	return i18n.T(it.Code, map[string]string{"field": it.Field, "path": it.FieldPath()})
}

func (it Issue) String() string {
	return fmt.Sprintf("%s at %s: %s", it.Code, it.Path, it.Message)
}

// Issues is a collection of codec errors that implements error. Decoding is
// fail-fast, so a decode error carries exactly one issue.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Message != "" {
			fmt.Fprintf(b, " (%s)", it.Message)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Is matches the sentinel of the first issue's code.
func (iss Issues) Is(target error) bool {
	if len(iss) == 0 {
		return false
	}
	s, ok := sentinels[iss[0].Code]
	return ok && s == target
}

// Unwrap exposes the first issue's cause.
func (iss Issues) Unwrap() error {
	if len(iss) == 0 {
		return nil
	}
	return iss[0].Cause
}

// First returns the first issue, or the zero Issue.
func (iss Issues) First() Issue {
	if len(iss) == 0 {
		return Issue{}
	}
	return iss[0]
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

func toIssues(err error) Issues {
	if err == nil {
		return nil
	}
	if ii, ok := AsIssues(err); ok {
		return ii
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return AppendIssues(nil, Issue{
			Code:    ie.Code,
			Path:    ie.Path,
			Message: ie.Message,
			Field:   ie.Field,
			Cause:   ie.Cause,
			Offset:  ie.Offset,
		})
	}
	return singleIssue(CodeParseError, err.Error())
}

func singleIssue(code, msg string) Issues {
	return AppendIssues(nil, Issue{Code: code, Path: "/", Message: msg, Offset: -1})
}
