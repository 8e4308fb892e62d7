package schemafile

import (
	"fmt"
	"strings"

	"github.com/reoring/pbjson/schema"
)

// Build turns parsed files into a linked registry. Type references may cross
// files.
func Build(files ...File) (*schema.Registry, error) {
	kinds := map[string]schema.Kind{}
	for _, f := range files {
		for _, e := range f.Enums {
			kinds[qualify(f.Package, e.Name)] = schema.KindEnum
		}
		for _, m := range f.Messages {
			kinds[qualify(f.Package, m.Name)] = schema.KindMessage
		}
	}

	var (
		msgs  []*schema.Message
		enums []*schema.Enum
	)
	for _, f := range files {
		for _, e := range f.Enums {
			values := make([]schema.EnumValue, len(e.Values))
			for i, v := range e.Values {
				values[i] = schema.EnumValue{Name: v.Name, Number: v.Number}
			}
			en, err := schema.NewEnum(qualify(f.Package, e.Name), values...)
			if err != nil {
				return nil, err
			}
			enums = append(enums, en)
		}
		for _, m := range f.Messages {
			full := qualify(f.Package, m.Name)
			defs := make([]schema.FieldDef, len(m.Fields))
			for i, fd := range m.Fields {
				t, err := resolveType(f.Package, fd.Type, kinds)
				if err != nil {
					return nil, fmt.Errorf("message %s: field %q: %w", full, fd.Name, err)
				}
				p, err := parseLabel(fd.Label)
				if err != nil {
					return nil, fmt.Errorf("message %s: field %q: %w", full, fd.Name, err)
				}
				defs[i] = schema.FieldDef{Name: fd.Name, JSONName: fd.JSONName, Type: t, Presence: p, Oneof: fd.Oneof}
			}
			md, err := schema.NewMessage(full, defs...)
			if err != nil {
				return nil, err
			}
			msgs = append(msgs, md)
		}
	}
	return schema.NewRegistry(msgs, enums)
}

func qualify(pkg, name string) string {
	if strings.HasPrefix(name, ".") {
		return name[1:]
	}
	if pkg == "" || strings.Contains(name, ".") {
		return name
	}
	return pkg + "." + name
}

func resolveType(pkg, name string, kinds map[string]schema.Kind) (schema.Type, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return schema.Type{}, fmt.Errorf("missing type")
	}
	if inner, ok := strings.CutPrefix(name, "map<"); ok {
		inner, ok = strings.CutSuffix(inner, ">")
		key, elem, found := strings.Cut(inner, ",")
		if !ok || !found {
			return schema.Type{}, fmt.Errorf("malformed map type %q", name)
		}
		kt, err := resolveType(pkg, key, kinds)
		if err != nil {
			return schema.Type{}, err
		}
		et, err := resolveType(pkg, elem, kinds)
		if err != nil {
			return schema.Type{}, err
		}
		return schema.MapOf(kt, et), nil
	}
	if k, ok := schema.ParseKind(name); ok {
		return schema.Scalar(k), nil
	}
	full := qualify(pkg, name)
	switch kinds[full] {
	case schema.KindEnum:
		return schema.EnumRef(full), nil
	case schema.KindMessage:
		return schema.MessageRef(full), nil
	}
	return schema.Type{}, fmt.Errorf("unknown type %q", name)
}

func parseLabel(label string) (schema.Presence, error) {
	switch label {
	case "", "singular":
		return schema.Singular, nil
	case "optional":
		return schema.Optional, nil
	case "repeated":
		return schema.Repeated, nil
	}
	return 0, fmt.Errorf("unknown label %q", label)
}
