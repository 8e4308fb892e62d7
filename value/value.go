package value

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/reoring/pbjson/schema"
)

// Value is a tagged union mirroring schema.Kind. The zero Value is invalid.
// Lists and maps are ordered; map entries keep insertion order.
type Value struct {
	kind    schema.Kind
	list    bool
	num     uint64
	str     string
	raw     []byte
	msg     *Instance
	items   []Value
	entries []Entry
	ts      time.Time
}

// Entry is one key/value pair of a map value.
type Entry struct {
	Key   Value
	Value Value
}

func Int32(v int32) Value   { return Value{kind: schema.KindInt32, num: uint64(int64(v))} }
func Int64(v int64) Value   { return Value{kind: schema.KindInt64, num: uint64(v)} }
func Uint32(v uint32) Value { return Value{kind: schema.KindUint32, num: uint64(v)} }
func Uint64(v uint64) Value { return Value{kind: schema.KindUint64, num: v} }
func String(v string) Value { return Value{kind: schema.KindString, str: v} }
func Bytes(v []byte) Value  { return Value{kind: schema.KindBytes, raw: v} }

func Bool(v bool) Value {
	if v {
		return Value{kind: schema.KindBool, num: 1}
	}
	return Value{kind: schema.KindBool}
}

// Enum holds an enum number. Membership is checked when the value is stored
// in an Instance.
func Enum(n int32) Value { return Value{kind: schema.KindEnum, num: uint64(int64(n))} }

// Message wraps a nested instance.
func Message(m *Instance) Value { return Value{kind: schema.KindMessage, msg: m} }

// Timestamp holds a point in time, normalized to UTC.
func Timestamp(t time.Time) Value { return Value{kind: schema.KindTimestamp, ts: t.UTC()} }

// List builds a repeated value. Elements must share one kind.
func List(items ...Value) Value {
	v := Value{list: true, items: items}
	if len(items) > 0 {
		v.kind = items[0].kind
	}
	return v
}

// Map builds a map value from ordered entries.
func Map(entries ...Entry) Value { return Value{kind: schema.KindMap, entries: entries} }

// Kind reports the kind of a scalar value, or the element kind of a list.
func (v Value) Kind() schema.Kind { return v.kind }

// IsList reports whether v is a repeated value.
func (v Value) IsList() bool { return v.list }

// IsValid reports whether v was built by one of the constructors.
func (v Value) IsValid() bool { return v.kind != schema.KindInvalid || v.list }

func (v Value) Int32() int32   { return int32(int64(v.num)) }
func (v Value) Int64() int64   { return int64(v.num) }
func (v Value) Uint32() uint32 { return uint32(v.num) }
func (v Value) Uint64() uint64 { return v.num }
func (v Value) Bool() bool     { return v.num != 0 }
func (v Value) Bytes() []byte  { return v.raw }

// EnumNumber returns the number of an enum value.
func (v Value) EnumNumber() int32 { return int32(int64(v.num)) }

// Message returns the nested instance of a message value, or nil.
func (v Value) Message() *Instance { return v.msg }

// Time returns the instant of a timestamp value.
func (v Value) Time() time.Time { return v.ts }

// List returns the elements of a repeated value.
func (v Value) List() []Value { return v.items }

// Map returns the entries of a map value.
func (v Value) Map() []Entry { return v.entries }

// String returns the content of a string value. For other kinds it returns a
// readable rendering, so Value satisfies fmt.Stringer.
func (v Value) String() string {
	if v.list {
		return fmt.Sprint(v.items)
	}
	switch v.kind {
	case schema.KindString:
		return v.str
	case schema.KindInt32, schema.KindInt64, schema.KindEnum:
		return strconv.FormatInt(int64(v.num), 10)
	case schema.KindUint32, schema.KindUint64:
		return strconv.FormatUint(v.num, 10)
	case schema.KindBool:
		return strconv.FormatBool(v.num != 0)
	case schema.KindBytes:
		return fmt.Sprintf("%x", v.raw)
	case schema.KindTimestamp:
		return v.ts.Format(time.RFC3339Nano)
	case schema.KindMessage:
		if v.msg == nil {
			return "<nil>"
		}
		return "{" + v.msg.Descriptor().FullName + "}"
	case schema.KindMap:
		return fmt.Sprint(v.entries)
	}
	return "<invalid>"
}

// IsZero reports whether v equals the zero value of its kind: 0, false, "",
// empty bytes, enum number 0, an empty list or an empty map. Message and
// timestamp values are never zero; their presence is tracked explicitly.
func (v Value) IsZero() bool {
	if v.list {
		return len(v.items) == 0
	}
	switch v.kind {
	case schema.KindInt32, schema.KindInt64, schema.KindUint32, schema.KindUint64, schema.KindBool, schema.KindEnum:
		return v.num == 0
	case schema.KindString:
		return v.str == ""
	case schema.KindBytes:
		return len(v.raw) == 0
	case schema.KindMap:
		return len(v.entries) == 0
	case schema.KindMessage:
		return v.msg == nil
	case schema.KindInvalid:
		return true
	}
	return false
}

// Equal reports deep equality. Nil and empty bytes, lists and maps are equal.
func (v Value) Equal(w Value) bool {
	if v.list != w.list {
		return false
	}
	if v.list {
		if len(v.items) != len(w.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(w.items[i]) {
				return false
			}
		}
		return true
	}
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case schema.KindString:
		return v.str == w.str
	case schema.KindBytes:
		return bytes.Equal(v.raw, w.raw)
	case schema.KindTimestamp:
		return v.ts.Equal(w.ts)
	case schema.KindMessage:
		return v.msg.Equal(w.msg)
	case schema.KindMap:
		if len(v.entries) != len(w.entries) {
			return false
		}
		for i := range v.entries {
			if !v.entries[i].Key.Equal(w.entries[i].Key) || !v.entries[i].Value.Equal(w.entries[i].Value) {
				return false
			}
		}
		return true
	}
	return v.num == w.num
}

// MapKey renders a map key the way JSON object keys spell it.
func (v Value) MapKey() string {
	if v.kind == schema.KindString {
		return v.str
	}
	return v.String()
}

// Zero returns the default value for t. Message fields default to a nil
// instance; timestamps default to the Unix epoch.
func Zero(t schema.Type) Value {
	switch t.Kind {
	case schema.KindInt32:
		return Int32(0)
	case schema.KindInt64:
		return Int64(0)
	case schema.KindUint32:
		return Uint32(0)
	case schema.KindUint64:
		return Uint64(0)
	case schema.KindBool:
		return Bool(false)
	case schema.KindString:
		return String("")
	case schema.KindBytes:
		return Bytes(nil)
	case schema.KindEnum:
		return Enum(0)
	case schema.KindMessage:
		return Value{kind: schema.KindMessage}
	case schema.KindMap:
		return Map()
	case schema.KindTimestamp:
		return Timestamp(time.Unix(0, 0))
	}
	return Value{}
}
