// Package jsonschema projects message descriptors into JSON Schema documents
// describing their canonical JSON encoding.
package jsonschema

import (
	"math"
	"strings"

	"github.com/reoring/pbjson/schema"
)

const draft = "https://json-schema.org/draft/2020-12/schema"

// FromMessage returns a schema whose root is md. Every message reachable
// from md is emitted once under $defs and referenced by $ref, so recursive
// messages terminate.
func FromMessage(md *schema.Message) *Schema {
	p := &projector{defs: map[string]*Schema{}}
	root := p.ref(md)
	return &Schema{SchemaURI: draft, Ref: root.Ref, Defs: p.defs}
}

type projector struct {
	defs map[string]*Schema
}

func (p *projector) ref(md *schema.Message) *Schema {
	if _, ok := p.defs[md.FullName]; !ok {
		p.defs[md.FullName] = nil // placeholder for recursion
		p.defs[md.FullName] = p.message(md)
	}
	return &Schema{Ref: "#/$defs/" + escape(md.FullName)}
}

func (p *projector) message(md *schema.Message) *Schema {
	s := &Schema{Type: "object", Title: md.FullName, Properties: map[string]*Schema{}}
	for _, f := range md.Fields {
		fs := p.field(f)
		if f.Oneof != nil {
			fs.Comment = "oneof " + f.Oneof.Name
		}
		s.Properties[f.JSONName] = fs
	}
	return s
}

func (p *projector) field(f *schema.Field) *Schema {
	switch {
	case f.IsList():
		return &Schema{Type: "array", Items: p.single(f.Type)}
	case f.IsMap():
		return &Schema{
			Type:                 "object",
			PropertyNames:        mapKey(*f.Type.Key),
			AdditionalProperties: p.single(*f.Type.Elem),
		}
	}
	return p.single(f.Type)
}

func (p *projector) single(t schema.Type) *Schema {
	switch t.Kind {
	case schema.KindInt32:
		return &Schema{Type: "integer", Minimum: ptr(math.MinInt32), Maximum: ptr(math.MaxInt32)}
	case schema.KindUint32:
		return &Schema{Type: "integer", Minimum: ptr(0), Maximum: ptr(math.MaxUint32)}
	case schema.KindInt64:
		return &Schema{Type: "string", Pattern: `^-?[0-9]+$`}
	case schema.KindUint64:
		return &Schema{Type: "string", Pattern: `^[0-9]+$`}
	case schema.KindBool:
		return &Schema{Type: "boolean"}
	case schema.KindString:
		return &Schema{Type: "string"}
	case schema.KindBytes:
		return &Schema{Type: "string", ContentEncoding: "base64"}
	case schema.KindTimestamp:
		return &Schema{Type: "string", Format: "date-time"}
	case schema.KindEnum:
		s := &Schema{Type: "string"}
		if t.Enum != nil {
			s.Title = t.Enum.FullName
			for _, v := range t.Enum.Values {
				s.Enum = append(s.Enum, v.Name)
			}
		}
		return s
	case schema.KindMessage:
		if t.Message == nil {
			return &Schema{Type: "object", Comment: "unresolved " + t.Ref()}
		}
		return p.ref(t.Message)
	}
	return &Schema{}
}

func mapKey(t schema.Type) *Schema {
	switch t.Kind {
	case schema.KindBool:
		return &Schema{Enum: []any{"true", "false"}}
	case schema.KindString:
		return nil
	case schema.KindUint32, schema.KindUint64:
		return &Schema{Pattern: `^[0-9]+$`}
	}
	return &Schema{Pattern: `^-?[0-9]+$`}
}

func ptr(v int64) *int64 { return &v }

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func escape(name string) string { return pointerEscaper.Replace(name) }
