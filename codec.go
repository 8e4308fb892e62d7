package pbjson

import (
	"context"

	"github.com/reoring/pbjson/schema"
	"github.com/reoring/pbjson/value"
)

// Codec binds a Go type to a message descriptor. Implementations convert
// between T and the generic instance; the JSON mapping itself stays in this
// package.
type Codec[T any] interface {
	Descriptor() *schema.Message
	ToInstance(v T) (*value.Instance, error)
	FromInstance(inst *value.Instance) (T, error)
}

// CodecFuncs adapts a descriptor and two conversion functions to Codec.
type CodecFuncs[T any] struct {
	Desc *schema.Message
	To   func(T) (*value.Instance, error)
	From func(*value.Instance) (T, error)
}

func (c CodecFuncs[T]) Descriptor() *schema.Message                  { return c.Desc }
func (c CodecFuncs[T]) ToInstance(v T) (*value.Instance, error)      { return c.To(v) }
func (c CodecFuncs[T]) FromInstance(inst *value.Instance) (T, error) { return c.From(inst) }

// Marshal encodes v as canonical JSON through c.
func Marshal[T any](ctx context.Context, c Codec[T], v T, opts ...EncodeOpt) ([]byte, error) {
	inst, err := c.ToInstance(v)
	if err != nil {
		return nil, err
	}
	return Encode(ctx, inst, opts...)
}

// Unmarshal decodes data against c's descriptor and converts the result to T.
func Unmarshal[T any](ctx context.Context, c Codec[T], data []byte, opts ...DecodeOpt) (T, error) {
	var zero T
	inst, err := DecodeBytes(ctx, c.Descriptor(), data, opts...)
	if err != nil {
		return zero, err
	}
	return c.FromInstance(inst)
}

// UnmarshalWithMeta is Unmarshal plus presence metadata.
func UnmarshalWithMeta[T any](ctx context.Context, c Codec[T], data []byte, opts ...DecodeOpt) (Decoded[T], error) {
	d, err := DecodeWithMeta(ctx, c.Descriptor(), JSONBytes(data), opts...)
	if err != nil {
		return Decoded[T]{}, err
	}
	v, err := c.FromInstance(d.Value)
	if err != nil {
		return Decoded[T]{}, err
	}
	return Decoded[T]{Value: v, Presence: d.Presence}, nil
}

// SafeUnmarshal returns (zero, false) on any decode error.
func SafeUnmarshal[T any](ctx context.Context, c Codec[T], data []byte, opts ...DecodeOpt) (T, bool) {
	v, err := Unmarshal(ctx, c, data, opts...)
	if err != nil {
		var zero T
		return zero, false
	}
	return v, true
}
