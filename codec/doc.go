// Package codec converts the scalar kinds whose JSON form is text: 64-bit
// integers (decimal strings), bytes (base64) and timestamps (RFC 3339).
// Integer parsing also accepts integral exponent and fraction forms using exact
// decimal arithmetic.
package codec
