package pbjson

import (
	"context"
	"errors"
	"io"

	eng "github.com/reoring/pbjson/internal/engine"
	"github.com/reoring/pbjson/internal/jsonpb"
	"github.com/reoring/pbjson/schema"
	"github.com/reoring/pbjson/value"
)

// Decode is the primary entry point. It consumes one JSON object from src and
// builds an instance of md. Decoding stops at the first error, which is
// returned as Issues; no partial instance is returned.
func Decode(ctx context.Context, md *schema.Message, src Source, opts ...DecodeOpt) (*value.Instance, error) {
	return decode(ctx, md, src, lastDecodeOpt(opts), nil)
}

// DecodeBytes decodes data using the current JSON driver.
func DecodeBytes(ctx context.Context, md *schema.Message, data []byte, opts ...DecodeOpt) (*value.Instance, error) {
	return Decode(ctx, md, JSONBytes(data), opts...)
}

// DecodeWithMeta decodes like Decode and collects presence metadata, filtered
// by the Presence options.
func DecodeWithMeta(ctx context.Context, md *schema.Message, src Source, opts ...DecodeOpt) (Decoded[*value.Instance], error) {
	opt := normalizeWithMetaOpt(opts)
	pc := newPresenceCollector()
	inst, err := decode(ctx, md, src, opt, pc)
	if err != nil {
		return Decoded[*value.Instance]{}, err
	}
	return Decoded[*value.Instance]{Value: inst, Presence: applyPresenceOptions(pc.pm, opt.Presence, opt.PathRender)}, nil
}

// StreamDecode decodes from an io.Reader. When MaxBytes is set the input is
// capped up front, otherwise tokens are streamed through the JSON driver.
func StreamDecode(ctx context.Context, md *schema.Message, r io.Reader, opts ...DecodeOpt) (*value.Instance, error) {
	opt := lastDecodeOpt(opts)
	if opt.MaxBytes > 0 {
		data, err := io.ReadAll(io.LimitReader(r, opt.MaxBytes+1))
		if err != nil {
			return nil, singleIssue(CodeParseError, err.Error())
		}
		if int64(len(data)) > opt.MaxBytes {
			return nil, singleIssue(CodeTruncated, "max bytes exceeded")
		}
		return Decode(ctx, md, JSONBytes(data), opt)
	}
	return Decode(ctx, md, JSONReader(r), opt)
}

// EnforceSource wraps a Source with the raw stream checks of opt (duplicate
// keys, depth, bytes). Decode applies them itself; this is for callers that
// consume tokens directly. Violations are returned as Issues.
func EnforceSource(s Source, opt DecodeOpt) Source {
	enforced := eng.WrapWithEnforcement(EngineTokenSource(s), toEnforceOptions(opt))
	return issueSource{SourceFromEngine(enforced)}
}

type issueSource struct{ Source }

func (s issueSource) NextToken() (Token, error) {
	t, err := s.Source.NextToken()
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return t, toIssues(err)
	}
	return t, err
}

func decode(ctx context.Context, md *schema.Message, src Source, opt DecodeOpt, pc *presenceCollector) (*value.Instance, error) {
	if md == nil {
		return nil, singleIssue(CodeParseError, "nil message descriptor")
	}
	if src == nil {
		return nil, singleIssue(CodeParseError, "nil source")
	}
	if err := ctx.Err(); err != nil {
		return nil, AppendIssues(nil, Issue{Code: CodeParseError, Path: "/", Message: err.Error(), Cause: err, Offset: -1})
	}
	ts := eng.WrapWithEnforcement(EngineTokenSource(src), toEnforceOptions(opt))
	if ctx.Done() != nil {
		ts = &ctxTokenSource{ctx: ctx, inner: ts}
	}
	jopt := jsonpb.DecodeOptions{RejectUnknown: opt.Unknown == UnknownStrict}
	if pc != nil {
		jopt.Observe = pc.observe
	}
	inst, err := jsonpb.Decode(ts, md, jopt)
	if err != nil {
		return nil, toIssues(err)
	}
	return inst, nil
}

func normalizeWithMetaOpt(opts []DecodeOpt) DecodeOpt {
	opt := lastDecodeOpt(opts)
	opt.Presence.Collect = true
	return opt
}

func toEnforceOptions(opt DecodeOpt) eng.EnforceOptions {
	dup := eng.DupIgnore
	if opt.Strictness.OnDuplicateKey == Error {
		dup = eng.DupError
	}
	return eng.EnforceOptions{OnDuplicate: dup, MaxDepth: opt.MaxDepth, MaxBytes: opt.MaxBytes}
}

// ctxTokenSource stops a decode once ctx is done.
type ctxTokenSource struct {
	ctx   context.Context
	inner eng.TokenSource
}

func (c *ctxTokenSource) NextToken() (eng.Token, error) {
	if err := c.ctx.Err(); err != nil {
		return eng.Token{}, err
	}
	return c.inner.NextToken()
}

func (c *ctxTokenSource) Location() int64 { return c.inner.Location() }
