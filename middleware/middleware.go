// Package middleware decodes HTTP request bodies through a pbjson.Codec and
// hands the decoded value to the next handler via the request context.
package middleware

import (
	"context"
	"net/http"
	"reflect"

	j "github.com/goccy/go-json"

	"github.com/reoring/pbjson"
	"github.com/reoring/pbjson/value"
)

// ctxKeyDecoded is a typed context key for storing Decoded[T].
// Using a generic struct type ensures uniqueness per T.
type ctxKeyDecoded[T any] struct{}

// ContextWithDecoded attaches a Decoded[T] to the context.
func ContextWithDecoded[T any](ctx context.Context, d pbjson.Decoded[T]) context.Context {
	return context.WithValue(ctx, ctxKeyDecoded[T]{}, d)
}

// DecodedFromContext retrieves a Decoded[T] from context.
func DecodedFromContext[T any](ctx context.Context) (pbjson.Decoded[T], bool) {
	v, ok := ctx.Value(ctxKeyDecoded[T]{}).(pbjson.Decoded[T])
	return v, ok
}

// DefaultMaxBytes caps request bodies under DefaultDecodeOpt.
const DefaultMaxBytes = 1 << 20

// DefaultDecodeOpt returns a recommended default for HTTP JSON boundaries.
// - Duplicate keys are errors, including inside skipped unknown fields
// - Presence is collected for preserve-mode responses
// - Bodies are capped at DefaultMaxBytes
func DefaultDecodeOpt() pbjson.DecodeOpt {
	return pbjson.DecodeOpt{
		Strictness: pbjson.Strictness{OnDuplicateKey: pbjson.Error},
		Presence:   pbjson.PresenceOpt{Collect: true},
		MaxBytes:   DefaultMaxBytes,
	}
}

// IssuePayload is the wire shape of one issue in an error response.
type IssuePayload struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Offset  *int64 `json:"offset,omitempty"`
}

// ErrorResponse is the body written for rejected requests.
type ErrorResponse struct {
	Issues []IssuePayload `json:"issues,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// ErrorPayload shapes Issues for JSON responses. Messages are localized
// through the i18n translator.
func ErrorPayload(issues pbjson.Issues) ErrorResponse {
	out := ErrorResponse{Issues: make([]IssuePayload, 0, len(issues))}
	for _, it := range issues {
		p := IssuePayload{Path: it.Path, Code: it.Code, Message: it.Localized(), Field: it.Field}
		if it.Offset >= 0 {
			off := it.Offset
			p.Offset = &off
		}
		out.Issues = append(out.Issues, p)
	}
	return out
}

// DecodeJSON parses the request body through c with opt (or DefaultDecodeOpt
// when opt is the zero value; any set field means opt is used as given), stores Decoded[T] in the request context, and on failure
// writes 400 with an ErrorResponse.
func DecodeJSON[T any](c pbjson.Codec[T], opt pbjson.DecodeOpt) func(http.Handler) http.Handler {
	if reflect.DeepEqual(opt, pbjson.DecodeOpt{}) {
		opt = DefaultDecodeOpt()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d, err := decodeBody(r, c, opt)
			if err != nil {
				if iss, ok := pbjson.AsIssues(err); ok {
					WriteJSON(w, http.StatusBadRequest, ErrorPayload(iss))
					return
				}
				WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithDecoded(r.Context(), d)))
		})
	}
}

func decodeBody[T any](r *http.Request, c pbjson.Codec[T], opt pbjson.DecodeOpt) (pbjson.Decoded[T], error) {
	defer r.Body.Close()
	d, err := pbjson.DecodeWithMeta(r.Context(), c.Descriptor(), pbjson.JSONReader(r.Body), opt)
	if err != nil {
		return pbjson.Decoded[T]{}, err
	}
	v, err := c.FromInstance(d.Value)
	if err != nil {
		return pbjson.Decoded[T]{}, err
	}
	return pbjson.Decoded[T]{Value: v, Presence: d.Presence}, nil
}

// Respond encodes v through c and writes it with status. When the request
// carried presence metadata for T, fields the client sent are echoed in
// preserve mode.
func Respond[T any](w http.ResponseWriter, r *http.Request, c pbjson.Codec[T], status int, v T, opts ...pbjson.EncodeOpt) {
	inst, err := c.ToInstance(v)
	if err != nil {
		WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	var out []byte
	if d, ok := DecodedFromContext[T](r.Context()); ok && d.Presence != nil {
		out, err = pbjson.EncodeWithDecoded(r.Context(), pbjson.Decoded[*value.Instance]{Value: inst, Presence: d.Presence}, pbjson.EncodePreserve, opts...)
	} else {
		out, err = pbjson.Encode(r.Context(), inst, opts...)
	}
	if err != nil {
		WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(out)
}

// WriteJSON writes v as JSON with status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	b, err := j.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}
