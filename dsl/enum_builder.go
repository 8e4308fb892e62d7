package dsl

import (
	"github.com/reoring/pbjson/schema"
)

type enumBuilder struct {
	fullName string
	values   []schema.EnumValue
}

// Enum starts an enum descriptor.
func Enum(fullName string) *enumBuilder { return &enumBuilder{fullName: fullName} }

// Value appends a named number.
func (b *enumBuilder) Value(name string, number int32) *enumBuilder {
	b.values = append(b.values, schema.EnumValue{Name: name, Number: number})
	return b
}

// Values appends names numbered from the current count, so
// Enum("x").Values("A", "B", "C") numbers them 0, 1, 2.
func (b *enumBuilder) Values(names ...string) *enumBuilder {
	for _, n := range names {
		b.Value(n, int32(len(b.values)))
	}
	return b
}

func (b *enumBuilder) Build() (*schema.Enum, error) { return schema.NewEnum(b.fullName, b.values...) }

// MustBuild is like Build but panics on error.
func (b *enumBuilder) MustBuild() *schema.Enum {
	e, err := b.Build()
	if err != nil {
		panic(err)
	}
	return e
}
