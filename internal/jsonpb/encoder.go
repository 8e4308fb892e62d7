package jsonpb

import (
	"strconv"

	j "github.com/goccy/go-json"

	"github.com/reoring/pbjson/codec"
	eng "github.com/reoring/pbjson/internal/engine"
	"github.com/reoring/pbjson/schema"
	"github.com/reoring/pbjson/value"
)

// EncodeOptions controls a single encode.
type EncodeOptions struct {
	// EmitUnpopulated writes zero-valued fields without explicit presence.
	// Unset optional, message and oneof fields are still omitted.
	EmitUnpopulated bool
	// UseProtoNames writes wire names instead of JSON names.
	UseProtoNames bool
	// Preserve, when set, is asked about every field the canonical rules
	// would omit, keyed by its JSON-name pointer. seen writes the default
	// value; null writes a JSON null.
	Preserve func(pointer string) (seen, null bool)
}

// Encode renders inst as a compact JSON object. Keys follow declaration
// order.
func Encode(inst *value.Instance, opt EncodeOptions) ([]byte, error) {
	e := &encoder{opt: opt, buf: make([]byte, 0, 256)}
	if err := e.message(inst, ""); err != nil {
		return nil, err
	}
	return e.buf, nil
}

type encoder struct {
	opt EncodeOptions
	buf []byte
}

func (e *encoder) message(inst *value.Instance, path string) error {
	e.buf = append(e.buf, '{')
	if inst == nil {
		e.buf = append(e.buf, '}')
		return nil
	}
	first := true
	for _, f := range inst.Descriptor().Fields {
		fpath := eng.JoinPointer(path, f.JSONName)
		null := false
		if !e.emits(inst, f) {
			if e.opt.Preserve == nil {
				continue
			}
			var seen bool
			if seen, null = e.opt.Preserve(fpath); !seen && !null {
				continue
			}
		}
		name := f.JSONName
		if e.opt.UseProtoNames {
			name = f.Name
		}
		if !first {
			e.buf = append(e.buf, ',')
		}
		first = false
		e.quote(name)
		e.buf = append(e.buf, ':')
		if null {
			e.buf = append(e.buf, "null"...)
			continue
		}
		if err := e.field(f, inst.Get(f), fpath); err != nil {
			return err
		}
	}
	e.buf = append(e.buf, '}')
	return nil
}

func (e *encoder) emits(inst *value.Instance, f *schema.Field) bool {
	if inst.Has(f) {
		return true
	}
	return e.opt.EmitUnpopulated && !f.HasPresence()
}

func (e *encoder) field(f *schema.Field, v value.Value, path string) error {
	switch {
	case f.IsList():
		e.buf = append(e.buf, '[')
		for i, it := range v.List() {
			if i > 0 {
				e.buf = append(e.buf, ',')
			}
			if err := e.single(f.Type, f.JSONName, it, eng.JoinPointer(path, strconv.Itoa(i))); err != nil {
				return err
			}
		}
		e.buf = append(e.buf, ']')
		return nil
	case f.IsMap():
		e.buf = append(e.buf, '{')
		for i, ent := range v.Map() {
			if i > 0 {
				e.buf = append(e.buf, ',')
			}
			key := ent.Key.MapKey()
			e.quote(key)
			e.buf = append(e.buf, ':')
			if err := e.single(*f.Type.Elem, f.JSONName, ent.Value, eng.JoinPointer(path, key)); err != nil {
				return err
			}
		}
		e.buf = append(e.buf, '}')
		return nil
	}
	return e.single(f.Type, f.JSONName, v, path)
}

func (e *encoder) single(t schema.Type, field string, v value.Value, path string) error {
	switch t.Kind {
	case schema.KindInt32:
		e.buf = strconv.AppendInt(e.buf, int64(v.Int32()), 10)
	case schema.KindUint32:
		e.buf = strconv.AppendUint(e.buf, uint64(v.Uint32()), 10)
	case schema.KindInt64:
		e.buf = append(e.buf, '"')
		e.buf = strconv.AppendInt(e.buf, v.Int64(), 10)
		e.buf = append(e.buf, '"')
	case schema.KindUint64:
		e.buf = append(e.buf, '"')
		e.buf = strconv.AppendUint(e.buf, v.Uint64(), 10)
		e.buf = append(e.buf, '"')
	case schema.KindBool:
		e.buf = strconv.AppendBool(e.buf, v.Bool())
	case schema.KindString:
		e.quote(v.String())
	case schema.KindBytes:
		e.buf = append(e.buf, '"')
		e.buf = append(e.buf, codec.EncodeBytes(v.Bytes())...)
		e.buf = append(e.buf, '"')
	case schema.KindEnum:
		ev, ok := t.Enum.ByNumber(v.EnumNumber())
		if !ok {
			return issue(CodeUnknownEnumValue, path, field, nil, "enum %s has no name for %d", t.Enum.FullName, v.EnumNumber())
		}
		e.quote(ev.Name)
	case schema.KindTimestamp:
		s, err := codec.FormatTimestamp(v.Time())
		if err != nil {
			return issue(CodeInvalidTimestamp, path, field, err, "timestamp %s is out of range", v.Time())
		}
		e.quote(s)
	case schema.KindMessage:
		return e.message(v.Message(), path)
	default:
		return issue(CodeTypeMismatch, path, field, nil, "unsupported kind %s", t.Kind)
	}
	return nil
}

// quote appends s as a JSON string. HTML characters are left unescaped.
func (e *encoder) quote(s string) {
	b, _ := j.MarshalWithOption(s, j.DisableHTMLEscape())
	e.buf = append(e.buf, b...)
}
