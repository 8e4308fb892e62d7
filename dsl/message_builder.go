package dsl

import (
	"github.com/reoring/pbjson/schema"
)

type messageBuilder struct {
	fullName string
	defs     []schema.FieldDef
}

type fieldStep struct {
	b   *messageBuilder
	idx int
}

// Message starts a message descriptor. Fields keep the order they are
// declared in, which is also the encoding order.
func Message(fullName string) *messageBuilder {
	return &messageBuilder{fullName: fullName}
}

// Field appends a singular field.
func (b *messageBuilder) Field(name string, t schema.Type) *fieldStep {
	b.defs = append(b.defs, schema.FieldDef{Name: name, Type: t})
	return &fieldStep{b: b, idx: len(b.defs) - 1}
}

// Optional gives the current field explicit presence.
func (f *fieldStep) Optional() *fieldStep {
	f.b.defs[f.idx].Presence = schema.Optional
	return f
}

// Repeated turns the current field into a list.
func (f *fieldStep) Repeated() *fieldStep {
	f.b.defs[f.idx].Presence = schema.Repeated
	return f
}

// JSONName overrides the derived camelCase name.
func (f *fieldStep) JSONName(name string) *fieldStep {
	f.b.defs[f.idx].JSONName = name
	return f
}

func (f *fieldStep) Field(name string, t schema.Type) *fieldStep { return f.b.Field(name, t) }
func (f *fieldStep) Oneof(group string, cases ...Case) *messageBuilder {
	return f.b.Oneof(group, cases...)
}
func (f *fieldStep) Build() (*schema.Message, error) { return f.b.Build() }
func (f *fieldStep) MustBuild() *schema.Message      { return f.b.MustBuild() }

// Case is one member of a oneof group.
type Case struct {
	name     string
	jsonName string
	t        schema.Type
}

// Member declares a oneof member.
func Member(name string, t schema.Type) Case { return Case{name: name, t: t} }

// WithJSONName overrides the derived camelCase name of a member.
func (c Case) WithJSONName(name string) Case {
	c.jsonName = name
	return c
}

// Oneof appends the members of group in order.
func (b *messageBuilder) Oneof(group string, cases ...Case) *messageBuilder {
	for _, c := range cases {
		b.defs = append(b.defs, schema.FieldDef{Name: c.name, JSONName: c.jsonName, Type: c.t, Oneof: group})
	}
	return b
}

// Build validates the declaration. References made with Ref or EnumRef
// resolve once the message is added to a schema.Registry.
func (b *messageBuilder) Build() (*schema.Message, error) {
	return schema.NewMessage(b.fullName, b.defs...)
}

// MustBuild is like Build but panics on error.
func (b *messageBuilder) MustBuild() *schema.Message {
	m, err := b.Build()
	if err != nil {
		panic(err)
	}
	return m
}
