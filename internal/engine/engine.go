package engine

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindBeginObject, KindEndObject:
		return "object"
	case KindBeginArray, KindEndArray:
		return "array"
	case KindKey:
		return "key"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindNull:
		return "null"
	}
	return "unknown"
}

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string // literal text, never converted to float64
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// Issue codes produced below the codec layer.
const (
	CodeParseError   = "parse_error"
	CodeTruncated    = "truncated"
	CodeDuplicateKey = "duplicate_key"
)

// SimpleIssue is a minimal issue representation used by internal helpers.
// Field names the schema field or oneof group involved, when there is one.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
	Field   string
	Offset  int64
	Cause   error
}

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.SimpleIssue.Message }

func (e IssueError) Unwrap() error { return e.Cause }
