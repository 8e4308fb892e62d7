// Package pbjson implements the canonical proto3 JSON mapping for messages
// described at runtime by the schema package.
//
// - Encoding writes fields in declaration order under their JSON names,
//   omits default values, quotes 64-bit integers and renders bytes as
//   padded base64 and enums by name.
// - Decoding accepts JSON and wire names, rejects duplicate fields and
//   multiply-populated oneofs and reports errors as Issues with a JSON
//   Pointer path.
// - Tokens come from a pluggable JSONDriver (encoding/json by default,
//   goccy/go-json via the source package) with duplicate-key, depth and size
//   enforcement.
//
// Layout:
// - schema/ builds and links message and enum descriptors; dsl/ offers a
//   fluent builder and schemafile/ loads YAML or JSONC schema files.
// - value/ holds the generic message instance.
// - codec/ has the scalar conversions; internal/ holds the token engine and
//   the JSON mapping itself.
// - jsonschema/ projects descriptors to JSON Schema, i18n/ localizes issue
//   messages and middleware/ decodes net/http request bodies.
// - cmd/pbjson is the CLI.
//
// Typical usage:
//
//	md := reg.MustDescribe("babylon.checkpointing.v1.RawCheckpoint")
//	inst, err := pbjson.DecodeBytes(ctx, md, data)
//	out, err := pbjson.Encode(ctx, inst)
//
//	dm, err := pbjson.DecodeWithMeta(ctx, md, pbjson.JSONBytes(data))
//	same, err := pbjson.EncodeWithDecoded(ctx, dm, pbjson.EncodePreserve)
package pbjson
