package codec

import (
	"encoding/base64"
	"errors"
	"strings"
)

// ErrBase64 reports text that no base64 alphabet accepts.
var ErrBase64 = errors.New("invalid base64")

// EncodeBytes renders b in the standard, padded base64 alphabet.
func EncodeBytes(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

// DecodeBytes accepts the standard or URL-safe alphabet, padded or not.
// Line breaks are rejected even though encoding/base64 would skip them.
func DecodeBytes(s string) ([]byte, error) {
	if strings.ContainsAny(s, "\r\n") {
		return nil, ErrBase64
	}
	enc := base64.StdEncoding
	if strings.ContainsAny(s, "-_") {
		enc = base64.URLEncoding
	}
	if len(s)%4 != 0 {
		enc = enc.WithPadding(base64.NoPadding)
	}
	b, err := enc.DecodeString(s)
	if err != nil {
		return nil, ErrBase64
	}
	return b, nil
}
