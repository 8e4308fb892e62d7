package pbjson

import (
	"bytes"
	"context"
	"errors"
	"io"

	j "github.com/goccy/go-json"

	"github.com/reoring/pbjson/internal/jsonpb"
	"github.com/reoring/pbjson/value"
)

// ErrEncodePreserveRequiresPresence indicates EncodePreserve was requested
// without presence metadata.
var ErrEncodePreserveRequiresPresence = errors.New("pbjson: encode preserve requires presence; use EncodeWithDecoded")

// Encode renders inst as canonical proto3 JSON: declaration order, JSON
// names, default values omitted. A nil instance encodes as {}.
func Encode(ctx context.Context, inst *value.Instance, opts ...EncodeOpt) ([]byte, error) {
	return encode(ctx, inst, lastEncodeOpt(opts), nil)
}

// EncodeTo writes the encoding of inst to w.
func EncodeTo(ctx context.Context, w io.Writer, inst *value.Instance, opts ...EncodeOpt) error {
	b, err := Encode(ctx, inst, opts...)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// EncodeWithMode encodes inst using the given mode. EncodePreserve needs
// presence metadata and fails with ErrEncodePreserveRequiresPresence.
func EncodeWithMode(ctx context.Context, inst *value.Instance, mode EncodeMode, opts ...EncodeOpt) ([]byte, error) {
	if mode == EncodePreserve {
		return nil, ErrEncodePreserveRequiresPresence
	}
	return Encode(ctx, inst, opts...)
}

// EncodeWithDecoded encodes a decoded instance. In EncodePreserve mode, keys
// that appeared in the input are written even when they hold the default, and
// keys that were null are written as null. Unseen defaults stay omitted.
func EncodeWithDecoded(ctx context.Context, d Decoded[*value.Instance], mode EncodeMode, opts ...EncodeOpt) ([]byte, error) {
	if mode != EncodePreserve {
		return Encode(ctx, d.Value, opts...)
	}
	if d.Presence == nil {
		return nil, ErrEncodePreserveRequiresPresence
	}
	pm := d.Presence
	return encode(ctx, d.Value, lastEncodeOpt(opts), func(p string) (bool, bool) {
		return pm.Seen(p) && !pm.WasNull(p), pm.WasNull(p)
	})
}

func encode(ctx context.Context, inst *value.Instance, opt EncodeOpt, preserve func(string) (bool, bool)) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := jsonpb.Encode(inst, jsonpb.EncodeOptions{
		EmitUnpopulated: opt.EmitUnpopulated,
		UseProtoNames:   opt.UseProtoNames,
		Preserve:        preserve,
	})
	if err != nil {
		return nil, toIssues(err)
	}
	if opt.Indent == "" {
		return b, nil
	}
	var buf bytes.Buffer
	if err := j.Indent(&buf, b, "", opt.Indent); err != nil {
		return nil, singleIssue(CodeParseError, err.Error())
	}
	return buf.Bytes(), nil
}
