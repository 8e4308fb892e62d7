// Package value is the in-memory form of a message: a Value tagged union and
// an Instance that owns one slot per field and one tagged slot per oneof group.
package value
