package jsonpb

import (
	"errors"
	"io"
	"strconv"

	"github.com/reoring/pbjson/codec"
	eng "github.com/reoring/pbjson/internal/engine"
	"github.com/reoring/pbjson/internal/stream"
	"github.com/reoring/pbjson/schema"
	"github.com/reoring/pbjson/value"
)

// DecodeOptions controls a single decode.
type DecodeOptions struct {
	// RejectUnknown turns unknown keys into unknown_field errors instead of
	// skipping them.
	RejectUnknown bool
	// Observe, when set, is called for every resolved key with the canonical
	// JSON Pointer of the field (JSON names), whether the value was null and
	// whether the key used the wire-name spelling.
	Observe func(pointer string, null, wireName bool)
}

// Decode reads one JSON object from src and builds an instance of md. The
// first error aborts the decode; no partial instance is returned.
func Decode(src eng.TokenSource, md *schema.Message, opt DecodeOptions) (*value.Instance, error) {
	d := &decoder{src: src, opt: opt}
	tok, err := src.NextToken()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, issue(eng.CodeParseError, "", "", err, "empty input")
		}
		return nil, d.wrap(err, "")
	}
	if tok.Kind != eng.KindBeginObject {
		return nil, issue(CodeTypeMismatch, "", "", nil, "expected object for %s, got %s", md.FullName, tok.Kind)
	}
	inst, err := d.message(md, "", "")
	if err != nil {
		return nil, err
	}
	if _, err := src.NextToken(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, d.wrap(err, "")
		}
		return nil, issue(eng.CodeParseError, "", "", nil, "unexpected data after top-level object")
	}
	return inst, nil
}

type decoder struct {
	src eng.TokenSource
	opt DecodeOptions
}

// next reads a token that must exist; running out of input is a parse error.
func (d *decoder) next(path string) (eng.Token, error) {
	tok, err := d.src.NextToken()
	if err != nil {
		return eng.Token{}, d.wrap(err, path)
	}
	return tok, nil
}

func (d *decoder) wrap(err error, path string) error {
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return err
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return issue(eng.CodeParseError, path, "", err, "unexpected end of input")
	}
	return issue(eng.CodeParseError, path, "", err, "%v", err)
}

// message consumes the members of an object whose '{' was already read. path
// is the input pointer used in errors; cpath is the canonical pointer
// reported to Observe.
func (d *decoder) message(md *schema.Message, path, cpath string) (*value.Instance, error) {
	inst := value.New(md)
	seen := make([]bool, len(md.Fields))
	for {
		tok, err := d.next(path)
		if err != nil {
			return nil, err
		}
		if tok.Kind == eng.KindEndObject {
			return inst, nil
		}
		key := tok.String
		kpath := eng.JoinPointer(path, key)
		vt, err := d.next(kpath)
		if err != nil {
			return nil, err
		}

		f := md.Lookup(key)
		if f == nil {
			if d.opt.RejectUnknown {
				return nil, issue(CodeUnknownField, kpath, key, nil, "unknown field %q in %s", key, md.FullName)
			}
			if err := stream.Skip(d.src, vt); err != nil {
				return nil, d.wrap(err, kpath)
			}
			continue
		}
		if seen[f.Index] {
			return nil, issue(CodeDuplicateField, kpath, f.JSONName, nil, "duplicate field %q", f.JSONName)
		}
		seen[f.Index] = true
		if f.Oneof != nil {
			if prev := inst.WhichOneof(f.Oneof); prev != nil {
				return nil, issue(CodeDuplicateField, kpath, f.Oneof.Name, nil,
					"duplicate field %q: oneof %q is already set by %q", f.JSONName, f.Oneof.Name, prev.JSONName)
			}
		}

		fpath := eng.JoinPointer(cpath, f.JSONName)
		if d.opt.Observe != nil {
			d.opt.Observe(fpath, vt.Kind == eng.KindNull, key != f.JSONName)
		}
		if vt.Kind == eng.KindNull {
			// null leaves the field at its default; a null oneof member does
			// not populate its group.
			continue
		}
		v, err := d.field(f, vt, kpath, fpath)
		if err != nil {
			return nil, err
		}
		if err := inst.Set(f, v); err != nil {
			return nil, issue(CodeTypeMismatch, kpath, f.JSONName, err, "%v", err)
		}
	}
}

func (d *decoder) field(f *schema.Field, tok eng.Token, path, cpath string) (value.Value, error) {
	switch {
	case f.IsList():
		return d.list(f, tok, path, cpath)
	case f.IsMap():
		return d.mapValue(f, tok, path, cpath)
	}
	return d.single(f.Type, f.JSONName, tok, path, cpath)
}

func (d *decoder) list(f *schema.Field, tok eng.Token, path, cpath string) (value.Value, error) {
	if tok.Kind != eng.KindBeginArray {
		return value.Value{}, mismatch(path, f.JSONName, "array", tok)
	}
	var items []value.Value
	for i := 0; ; i++ {
		et, err := d.next(path)
		if err != nil {
			return value.Value{}, err
		}
		if et.Kind == eng.KindEndArray {
			return value.List(items...), nil
		}
		epath, ecpath := eng.JoinPointer(path, strconv.Itoa(i)), eng.JoinPointer(cpath, strconv.Itoa(i))
		if et.Kind == eng.KindNull {
			return value.Value{}, issue(CodeTypeMismatch, epath, f.JSONName, nil, "null is not allowed in repeated field %q", f.JSONName)
		}
		v, err := d.single(f.Type, f.JSONName, et, epath, ecpath)
		if err != nil {
			return value.Value{}, err
		}
		items = append(items, v)
	}
}

func (d *decoder) mapValue(f *schema.Field, tok eng.Token, path, cpath string) (value.Value, error) {
	if tok.Kind != eng.KindBeginObject {
		return value.Value{}, mismatch(path, f.JSONName, "object", tok)
	}
	var entries []value.Entry
	keys := map[string]struct{}{}
	for {
		kt, err := d.next(path)
		if err != nil {
			return value.Value{}, err
		}
		if kt.Kind == eng.KindEndObject {
			return value.Map(entries...), nil
		}
		kpath := eng.JoinPointer(path, kt.String)
		k, err := mapKey(*f.Type.Key, f.JSONName, kt.String, kpath)
		if err != nil {
			return value.Value{}, err
		}
		canon := k.MapKey()
		if _, dup := keys[canon]; dup {
			return value.Value{}, issue(CodeDuplicateField, kpath, f.JSONName, nil, "duplicate key %q in map field %q", canon, f.JSONName)
		}
		keys[canon] = struct{}{}

		vt, err := d.next(kpath)
		if err != nil {
			return value.Value{}, err
		}
		if vt.Kind == eng.KindNull {
			return value.Value{}, issue(CodeTypeMismatch, kpath, f.JSONName, nil, "null is not allowed as a value of map field %q", f.JSONName)
		}
		v, err := d.single(*f.Type.Elem, f.JSONName, vt, kpath, eng.JoinPointer(cpath, canon))
		if err != nil {
			return value.Value{}, err
		}
		entries = append(entries, value.Entry{Key: k, Value: v})
	}
}

func mapKey(t schema.Type, field, key, path string) (value.Value, error) {
	switch t.Kind {
	case schema.KindString:
		return value.String(key), nil
	case schema.KindBool:
		switch key {
		case "true":
			return value.Bool(true), nil
		case "false":
			return value.Bool(false), nil
		}
		return value.Value{}, issue(CodeTypeMismatch, path, field, nil, "map key %q is not a boolean", key)
	}
	v, err := integer(t.Kind, key)
	if err != nil {
		return value.Value{}, issue(CodeInvalidNumber, path, field, err, "map key %q: %v", key, err)
	}
	return v, nil
}

// single decodes one non-null value of type t. Lists and maps are handled by
// the caller.
func (d *decoder) single(t schema.Type, field string, tok eng.Token, path, cpath string) (value.Value, error) {
	switch t.Kind {
	case schema.KindInt32, schema.KindInt64, schema.KindUint32, schema.KindUint64:
		var text string
		switch tok.Kind {
		case eng.KindNumber:
			text = tok.Number
		case eng.KindString:
			text = tok.String
		default:
			return value.Value{}, mismatch(path, field, t.Kind.String(), tok)
		}
		v, err := integer(t.Kind, text)
		if err != nil {
			return value.Value{}, issue(CodeInvalidNumber, path, field, err, "invalid %s value %q: %v", t.Kind, text, err)
		}
		return v, nil

	case schema.KindBool:
		if tok.Kind != eng.KindBool {
			return value.Value{}, mismatch(path, field, "boolean", tok)
		}
		return value.Bool(tok.Bool), nil

	case schema.KindString:
		if tok.Kind != eng.KindString {
			return value.Value{}, mismatch(path, field, "string", tok)
		}
		return value.String(tok.String), nil

	case schema.KindBytes:
		if tok.Kind != eng.KindString {
			return value.Value{}, mismatch(path, field, "base64 string", tok)
		}
		b, err := codec.DecodeBytes(tok.String)
		if err != nil {
			return value.Value{}, issue(CodeInvalidBytes, path, field, err, "invalid base64 in field %q", field)
		}
		return value.Bytes(b), nil

	case schema.KindEnum:
		return enumValue(t.Enum, field, tok, path)

	case schema.KindTimestamp:
		if tok.Kind != eng.KindString {
			return value.Value{}, mismatch(path, field, "RFC 3339 string", tok)
		}
		ts, err := codec.ParseTimestamp(tok.String)
		if err != nil {
			return value.Value{}, issue(CodeInvalidTimestamp, path, field, err, "invalid timestamp %q", tok.String)
		}
		return value.Timestamp(ts), nil

	case schema.KindMessage:
		if t.Message == nil {
			return value.Value{}, issue(eng.CodeParseError, path, field, nil, "unresolved message type %q", t.Ref())
		}
		if tok.Kind != eng.KindBeginObject {
			return value.Value{}, mismatch(path, field, "object", tok)
		}
		inst, err := d.message(t.Message, path, cpath)
		if err != nil {
			return value.Value{}, err
		}
		return value.Message(inst), nil
	}
	return value.Value{}, issue(CodeTypeMismatch, path, field, nil, "unsupported kind %s", t.Kind)
}

func enumValue(e *schema.Enum, field string, tok eng.Token, path string) (value.Value, error) {
	if e == nil {
		return value.Value{}, issue(eng.CodeParseError, path, field, nil, "unresolved enum type")
	}
	switch tok.Kind {
	case eng.KindString:
		if ev, ok := e.ByName(tok.String); ok {
			return value.Enum(ev.Number), nil
		}
		return value.Value{}, issue(CodeUnknownEnumValue, path, field, nil, "unknown value %q for enum %s", tok.String, e.FullName)
	case eng.KindNumber:
		n, err := codec.ParseInt64(tok.Number)
		if err == nil && codec.FitsInt32(n) {
			if ev, ok := e.ByNumber(int32(n)); ok {
				return value.Enum(ev.Number), nil
			}
		}
		return value.Value{}, issue(CodeUnknownEnumValue, path, field, err, "unknown value %s for enum %s", tok.Number, e.FullName)
	}
	return value.Value{}, mismatch(path, field, "enum name or number", tok)
}

func integer(k schema.Kind, text string) (value.Value, error) {
	switch k {
	case schema.KindInt32:
		v, err := codec.ParseInt32(text)
		return value.Int32(v), err
	case schema.KindInt64:
		v, err := codec.ParseInt64(text)
		return value.Int64(v), err
	case schema.KindUint32:
		v, err := codec.ParseUint32(text)
		return value.Uint32(v), err
	default:
		v, err := codec.ParseUint64(text)
		return value.Uint64(v), err
	}
}

func mismatch(path, field, want string, got eng.Token) error {
	return issue(CodeTypeMismatch, path, field, nil, "expected %s for field %q, got %s", want, field, got.Kind)
}
