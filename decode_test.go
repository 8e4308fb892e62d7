package pbjson_test

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/pbjson"
	"github.com/reoring/pbjson/schema"
	"github.com/reoring/pbjson/source/gojson"
	"github.com/reoring/pbjson/value"
)

func decode(t *testing.T, md *schema.Message, js string, opts ...pbjson.DecodeOpt) *value.Instance {
	t.Helper()
	inst, err := pbjson.DecodeBytes(context.Background(), md, []byte(js), opts...)
	if err != nil {
		t.Fatalf("decode %s: %v", js, err)
	}
	return inst
}

func decodeIssue(t *testing.T, md *schema.Message, js string, opts ...pbjson.DecodeOpt) pbjson.Issue {
	t.Helper()
	inst, err := pbjson.DecodeBytes(context.Background(), md, []byte(js), opts...)
	if err == nil {
		t.Fatalf("decode %s: expected error", js)
	}
	if inst != nil {
		t.Fatalf("decode %s: partial instance returned", js)
	}
	iss, ok := pbjson.AsIssues(err)
	if !ok || len(iss) != 1 {
		t.Fatalf("decode %s: expected one issue, got %v", js, err)
	}
	return iss[0]
}

func TestDecode_DualCasing(t *testing.T) {
	want := value.New(rawCheckpoint).
		MustSet("epoch_num", value.Uint64(42)).
		MustSet("last_commit_hash", value.Bytes([]byte{1, 2, 3})).
		MustSet("bls_multi_sig", value.Bytes([]byte{4}))
	for _, js := range []string{
		`{"epochNum":"42","lastCommitHash":"AQID","blsMultiSig":"BA=="}`,
		`{"epoch_num":"42","last_commit_hash":"AQID","bls_multi_sig":"BA=="}`,
		`{"epoch_num":42,"lastCommitHash":"AQID","bls_multi_sig":"BA"}`,
	} {
		got := decode(t, rawCheckpoint, js)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("%s: mismatch (-want +got):\n%s", js, diff)
		}
	}
}

func TestDecode_DuplicateField(t *testing.T) {
	for _, js := range []string{
		`{"epochNum":"1","epoch_num":"2"}`,
		`{"epoch_num":"1","epochNum":"1"}`,
		`{"epochNum":null,"epochNum":"1"}`,
	} {
		it := decodeIssue(t, rawCheckpoint, js)
		if it.Code != pbjson.CodeDuplicateField || it.Field != "epochNum" {
			t.Fatalf("%s: unexpected issue %+v", js, it)
		}
	}
}

func TestDecode_OneofExclusivity(t *testing.T) {
	it := decodeIssue(t, queuedMessage, `{"msgDelegate":{},"msg_undelegate":{"delegatorAddress":"x"}}`)
	if it.Code != pbjson.CodeDuplicateField || it.Field != "msg" || it.Path != "/msg_undelegate" {
		t.Fatalf("unexpected issue %+v", it)
	}

	// A null member leaves the group empty.
	inst := decode(t, queuedMessage, `{"msgDelegate":null,"msgUndelegate":{}}`)
	o := queuedMessage.OneofByName("msg")
	if f := inst.WhichOneof(o); f == nil || f.Name != "msg_undelegate" {
		t.Fatalf("unexpected oneof member %v", f)
	}
}

func TestDecode_Integers(t *testing.T) {
	cases := []struct {
		js   string
		want uint64
	}{
		{`{"epochNum":42}`, 42},
		{`{"epochNum":"42"}`, 42},
		{`{"epochNum":4.2e1}`, 42},
		{`{"epochNum":"1.0"}`, 1},
		{`{"epochNum":"18446744073709551615"}`, math.MaxUint64},
	}
	for _, tc := range cases {
		got := decode(t, rawCheckpoint, tc.js).GetByName("epochNum").Uint64()
		if got != tc.want {
			t.Fatalf("%s: got %d want %d", tc.js, got, tc.want)
		}
	}
	for _, js := range []string{
		`{"epochNum":"18446744073709551616"}`,
		`{"epochNum":-1}`,
		`{"epochNum":-0}`,
		`{"epochNum":"-0"}`,
		`{"epochNum":"1.5"}`,
		`{"epochNum":"abc"}`,
		`{"epochNum":""}`,
		`{"epochNum":" 1"}`,
	} {
		if it := decodeIssue(t, rawCheckpoint, js); it.Code != pbjson.CodeInvalidNumber || it.Path != "/epochNum" {
			t.Fatalf("%s: unexpected issue %+v", js, it)
		}
	}
	inst := decode(t, scalars, `{"i32":"-2147483648","i64":-9223372036854775808,"u32":4294967295}`)
	if inst.GetByName("i32").Int32() != math.MinInt32 || inst.GetByName("i64").Int64() != math.MinInt64 || inst.GetByName("u32").Uint32() != math.MaxUint32 {
		t.Fatalf("unexpected values: %v %v %v", inst.GetByName("i32"), inst.GetByName("i64"), inst.GetByName("u32"))
	}
	if it := decodeIssue(t, scalars, `{"i32":2147483648}`); it.Code != pbjson.CodeInvalidNumber {
		t.Fatalf("unexpected issue %+v", it)
	}
}

func TestDecode_Enums(t *testing.T) {
	byName := decode(t, block, `{"finality":"FINALIZED"}`)
	byNumber := decode(t, block, `{"finality":2}`)
	if !byName.Equal(byNumber) || byName.GetByName("finality").EnumNumber() != 2 {
		t.Fatalf("enum decodings differ: %v %v", byName.GetByName("finality"), byNumber.GetByName("finality"))
	}
	for _, js := range []string{
		`{"finality":"finalized"}`,
		`{"finality":7}`,
		`{"finality":4294967298}`,
	} {
		if it := decodeIssue(t, block, js); it.Code != pbjson.CodeUnknownEnumValue {
			t.Fatalf("%s: unexpected issue %+v", js, it)
		}
	}
}

func TestDecode_Bytes(t *testing.T) {
	got := decode(t, rawCheckpoint, `{"bitmap":"AQID"}`).GetByName("bitmap").Bytes()
	if !bytes.Equal(got, []byte{1, 2, 3}) {
		t.Fatalf("got %v", got)
	}
	got = decode(t, rawCheckpoint, `{"bitmap":"-_8"}`).GetByName("bitmap").Bytes()
	if !bytes.Equal(got, []byte{0xfb, 0xff}) {
		t.Fatalf("url-safe: got %v", got)
	}
	for _, js := range []string{`{"bitmap":"!!"}`, `{"bitmap":"AQ\nID"}`, `{"bitmap":"AQID\r\n"}`} {
		if it := decodeIssue(t, rawCheckpoint, js); it.Code != pbjson.CodeInvalidBytes || it.Path != "/bitmap" {
			t.Fatalf("%s: unexpected issue %+v", js, it)
		}
	}
}

func TestDecode_Timestamps(t *testing.T) {
	got := decode(t, stateUpdate, `{"blockTime":"2024-01-02T03:04:05+09:00"}`).GetByName("blockTime").Time()
	if !got.Equal(time.Date(2024, 1, 1, 18, 4, 5, 0, time.UTC)) || got.Location() != time.UTC {
		t.Fatalf("got %v", got)
	}
	for _, js := range []string{`{"blockTime":"2024-01-02"}`, `{"blockTime":"yesterday"}`} {
		if it := decodeIssue(t, stateUpdate, js); it.Code != pbjson.CodeInvalidTimestamp {
			t.Fatalf("%s: unexpected issue %+v", js, it)
		}
	}
}

func TestDecode_Nulls(t *testing.T) {
	inst := decode(t, scalars, `{"i32":null,"optName":null,"tags":null,"labels":null}`)
	if !inst.Equal(value.New(scalars)) {
		t.Fatalf("null should keep defaults")
	}
	if inst.Has(scalars.FieldByName("opt_name")) {
		t.Fatalf("null optional must stay absent")
	}
	if it := decodeIssue(t, scalars, `{"tags":["a",null]}`); it.Code != pbjson.CodeTypeMismatch || it.Path != "/tags/1" {
		t.Fatalf("unexpected issue %+v", it)
	}
	if it := decodeIssue(t, scalars, `{"labels":{"a":null}}`); it.Code != pbjson.CodeTypeMismatch || it.Path != "/labels/a" {
		t.Fatalf("unexpected issue %+v", it)
	}
}

func TestDecode_Maps(t *testing.T) {
	inst := decode(t, scalars, `{"heights":{"-3":"10","7":7},"labels":{"b":"2","a":"1"}}`)
	want := value.New(scalars).
		MustSet("heights", value.Map(
			value.Entry{Key: value.Int64(-3), Value: value.Uint64(10)},
			value.Entry{Key: value.Int64(7), Value: value.Uint64(7)},
		)).
		MustSet("labels", value.Map(
			value.Entry{Key: value.String("b"), Value: value.String("2")},
			value.Entry{Key: value.String("a"), Value: value.String("1")},
		))
	if diff := cmp.Diff(want, inst); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if it := decodeIssue(t, scalars, `{"heights":{"x":"1"}}`); it.Code != pbjson.CodeInvalidNumber || it.Path != "/heights/x" {
		t.Fatalf("unexpected issue %+v", it)
	}
}

func TestDecode_TypeMismatch(t *testing.T) {
	cases := []struct {
		md   *schema.Message
		js   string
		path string
	}{
		{checkpointWithMeta, `{"lifecycle":{}}`, "/lifecycle"},
		{checkpointWithMeta, `{"ckpt":[]}`, "/ckpt"},
		{checkpointWithMeta, `{"lifecycle":[null]}`, "/lifecycle/0"},
		{scalars, `{"flag":"true"}`, "/flag"},
		{scalars, `{"name":1}`, "/name"},
		{scalars, `{"tags":"x"}`, "/tags"},
		{rawCheckpoint, `[]`, "/"},
	}
	for _, tc := range cases {
		it := decodeIssue(t, tc.md, tc.js)
		if it.Code != pbjson.CodeTypeMismatch || it.Path != tc.path {
			t.Fatalf("%s: unexpected issue %+v", tc.js, it)
		}
	}
}

func TestDecode_NestedErrorPath(t *testing.T) {
	it := decodeIssue(t, checkpointWithMeta, `{"lifecycle":[{},{"block_height":"x"}]}`)
	if it.Code != pbjson.CodeInvalidNumber || it.Path != "/lifecycle/1/block_height" {
		t.Fatalf("unexpected issue %+v", it)
	}
	if got := it.FieldPath(); got != "lifecycle[1].block_height" {
		t.Fatalf("FieldPath = %q", got)
	}
}

func TestDecode_UnknownFields(t *testing.T) {
	js := `{"extra":{"a":[1,{"b":null}]},"epochNum":"1"}`
	inst := decode(t, rawCheckpoint, js)
	if inst.GetByName("epochNum").Uint64() != 1 {
		t.Fatalf("known field after unknown subtree not decoded")
	}
	it := decodeIssue(t, rawCheckpoint, js, pbjson.DecodeOpt{Unknown: pbjson.UnknownStrict})
	if it.Code != pbjson.CodeUnknownField || it.Path != "/extra" {
		t.Fatalf("unexpected issue %+v", it)
	}
}

func TestDecode_Malformed(t *testing.T) {
	inputs := []string{
		``, `  `, `{"epochNum":`, `{} {}`, `{"epochNum":"1"`,
		`{"epochNum" "1"}`, `{"epochNum":"1",}`, `{"epochNum":"1" "bitmap":""}`, `{"epochNum":}`,
	}
	for _, js := range inputs {
		if it := decodeIssue(t, rawCheckpoint, js); it.Code != pbjson.CodeParseError {
			t.Fatalf("%q: unexpected issue %+v", js, it)
		}
		for name, src := range map[string]pbjson.Source{
			"bytes":  gojson.Driver().NewBytes([]byte(js)),
			"reader": gojson.Driver().NewReader(strings.NewReader(js)),
		} {
			inst, err := pbjson.Decode(context.Background(), rawCheckpoint, src)
			if inst != nil || !errors.Is(err, pbjson.ErrParse) {
				t.Fatalf("go-json %s %q: inst=%v err=%v", name, js, inst != nil, err)
			}
		}
	}
}

func TestDecode_ErrorsIs(t *testing.T) {
	_, err := pbjson.DecodeBytes(context.Background(), rawCheckpoint, []byte(`{"epochNum":1,"epoch_num":1}`))
	if !errors.Is(err, pbjson.ErrDuplicateField) {
		t.Fatalf("expected ErrDuplicateField, got %v", err)
	}
	if errors.Is(err, pbjson.ErrUnknownField) {
		t.Fatalf("matched the wrong sentinel")
	}
}

func TestDecode_Enforcement(t *testing.T) {
	ctx := context.Background()
	dupKey := pbjson.DecodeOpt{Strictness: pbjson.Strictness{OnDuplicateKey: pbjson.Error}}
	it := decodeIssue(t, rawCheckpoint, `{"x":{"a":1,"a":2}}`, dupKey)
	if it.Code != pbjson.CodeDuplicateKey || it.Path != "/x/a" {
		t.Fatalf("unexpected issue %+v", it)
	}
	// Without the raw check, duplicates inside skipped subtrees pass.
	decode(t, rawCheckpoint, `{"x":{"a":1,"a":2}}`)

	decode(t, checkpointWithMeta, `{"ckpt":{"bitmap":""}}`, pbjson.DecodeOpt{MaxDepth: 2})
	if it := decodeIssue(t, checkpointWithMeta, `{"lifecycle":[{}]}`, pbjson.DecodeOpt{MaxDepth: 2}); it.Code != pbjson.CodeParseError {
		t.Fatalf("unexpected issue %+v", it)
	}

	big := `{"bitmap":"` + strings.Repeat("A", 64) + `"}`
	_, err := pbjson.StreamDecode(ctx, rawCheckpoint, strings.NewReader(big), pbjson.DecodeOpt{MaxBytes: 16})
	if !errors.Is(err, pbjson.ErrTruncated) {
		t.Fatalf("expected truncated, got %v", err)
	}
	if _, err := pbjson.StreamDecode(ctx, rawCheckpoint, strings.NewReader(big)); err != nil {
		t.Fatalf("unbounded stream decode: %v", err)
	}
}

func TestDecode_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pbjson.DecodeBytes(ctx, rawCheckpoint, []byte(`{}`))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDecodeWithMeta_Presence(t *testing.T) {
	dm, err := pbjson.DecodeWithMeta(context.Background(), checkpointWithMeta,
		pbjson.JSONBytes([]byte(`{"ckpt":{"epoch_num":"0","bitmap":null},"lifecycle":[{"state":1}]}`)))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := pbjson.PresenceMap{
		"/":                  pbjson.PresenceSeen,
		"/ckpt":              pbjson.PresenceSeen,
		"/ckpt/epochNum":     pbjson.PresenceSeen | pbjson.PresenceWireName,
		"/ckpt/bitmap":       pbjson.PresenceSeen | pbjson.PresenceWasNull,
		"/lifecycle":         pbjson.PresenceSeen,
		"/lifecycle/0/state": pbjson.PresenceSeen,
	}
	if diff := cmp.Diff(want, dm.Presence); diff != "" {
		t.Fatalf("presence mismatch (-want +got):\n%s", diff)
	}

	dm, err = pbjson.DecodeWithMeta(context.Background(), checkpointWithMeta,
		pbjson.JSONBytes([]byte(`{"ckpt":{"epochNum":"1"},"status":1}`)),
		pbjson.DecodeOpt{Presence: pbjson.PresenceOpt{Include: []string{"/ckpt"}}})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := dm.Presence["/status"]; ok || !dm.Presence.Seen("/ckpt/epochNum") {
		t.Fatalf("include filter not applied: %v", dm.Presence)
	}
}
