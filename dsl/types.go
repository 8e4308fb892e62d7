package dsl

import (
	"github.com/reoring/pbjson/schema"
)

func Int32() schema.Type     { return schema.Scalar(schema.KindInt32) }
func Int64() schema.Type     { return schema.Scalar(schema.KindInt64) }
func Uint32() schema.Type    { return schema.Scalar(schema.KindUint32) }
func Uint64() schema.Type    { return schema.Scalar(schema.KindUint64) }
func Bool() schema.Type      { return schema.Scalar(schema.KindBool) }
func String() schema.Type    { return schema.Scalar(schema.KindString) }
func Bytes() schema.Type     { return schema.Scalar(schema.KindBytes) }
func Timestamp() schema.Type { return schema.Scalar(schema.KindTimestamp) }

// Of embeds an already built message.
func Of(m *schema.Message) schema.Type { return schema.MessageOf(m) }

// Ref names a message that is resolved by a registry.
func Ref(fullName string) schema.Type { return schema.MessageRef(fullName) }

// EnumOf embeds an already built enum.
func EnumOf(e *schema.Enum) schema.Type { return schema.EnumOf(e) }

// EnumRef names an enum that is resolved by a registry.
func EnumRef(fullName string) schema.Type { return schema.EnumRef(fullName) }

// Map declares map<key, elem>.
func Map(key, elem schema.Type) schema.Type { return schema.MapOf(key, elem) }
