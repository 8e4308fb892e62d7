package schema_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/reoring/pbjson/schema"
)

func TestJSONName(t *testing.T) {
	cases := map[string]string{
		"block_height":       "blockHeight",
		"bls_multi_sig":      "blsMultiSig",
		"tx_id":              "txId",
		"already":            "already",
		"trailing_":          "trailing",
		"double__underscore": "doubleUnderscore",
		"x_1":                "x1",
	}
	for in, want := range cases {
		qt.Check(t, qt.Equals(schema.JSONName(in), want), qt.Commentf("input %q", in))
	}
}

func TestMessage_LookupBothSpellings(t *testing.T) {
	m := schema.MustMessage("test.Msg",
		schema.FieldDef{Name: "block_height", Type: schema.Scalar(schema.KindUint64)},
		schema.FieldDef{Name: "memo", Type: schema.Scalar(schema.KindString)},
	)
	f := m.Lookup("block_height")
	qt.Assert(t, qt.IsNotNil(f))
	qt.Assert(t, qt.Equals(m.Lookup("blockHeight"), f))
	qt.Assert(t, qt.Equals(f.JSONName, "blockHeight"))
	qt.Assert(t, qt.Equals(f.Index, 0))
	qt.Assert(t, qt.IsNil(m.Lookup("BlockHeight")))
	qt.Assert(t, qt.IsNil(m.Lookup("block-height")))
}

func TestMessage_RejectsSpellingCollision(t *testing.T) {
	_, err := schema.NewMessage("test.Bad",
		schema.FieldDef{Name: "foo_bar", Type: schema.Scalar(schema.KindString)},
		schema.FieldDef{Name: "fooBar", Type: schema.Scalar(schema.KindString)},
	)
	qt.Assert(t, qt.ErrorIs(err, schema.ErrInvalidSchema))

	_, err = schema.NewMessage("test.Bad",
		schema.FieldDef{Name: "a", Type: schema.Scalar(schema.KindString)},
		schema.FieldDef{Name: "a", Type: schema.Scalar(schema.KindBool)},
	)
	qt.Assert(t, qt.ErrorIs(err, schema.ErrInvalidSchema))
}

func TestMessage_Validation(t *testing.T) {
	str := schema.Scalar(schema.KindString)
	cases := []struct {
		name string
		defs []schema.FieldDef
	}{
		{"float map key", []schema.FieldDef{{Name: "m", Type: schema.MapOf(schema.Scalar(schema.KindBytes), str)}}},
		{"repeated map", []schema.FieldDef{{Name: "m", Type: schema.MapOf(str, str), Presence: schema.Repeated}}},
		{"map of map", []schema.FieldDef{{Name: "m", Type: schema.MapOf(str, schema.MapOf(str, str))}}},
		{"repeated oneof member", []schema.FieldDef{{Name: "a", Type: str, Presence: schema.Repeated, Oneof: "g"}}},
		{"optional oneof member", []schema.FieldDef{{Name: "a", Type: str, Presence: schema.Optional, Oneof: "g"}}},
		{"unbound enum", []schema.FieldDef{{Name: "e", Type: schema.Type{Kind: schema.KindEnum}}}},
		{"invalid kind", []schema.FieldDef{{Name: "x"}}},
		{"unnamed field", []schema.FieldDef{{Type: str}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := schema.NewMessage("test.Bad", tc.defs...)
			qt.Assert(t, qt.ErrorIs(err, schema.ErrInvalidSchema))
		})
	}
}

func TestMessage_Oneofs(t *testing.T) {
	m := schema.MustMessage("test.Queued",
		schema.FieldDef{Name: "tx_id", Type: schema.Scalar(schema.KindBytes)},
		schema.FieldDef{Name: "msg_delegate", Type: schema.Scalar(schema.KindString), Oneof: "msg"},
		schema.FieldDef{Name: "msg_undelegate", Type: schema.Scalar(schema.KindString), Oneof: "msg"},
	)
	qt.Assert(t, qt.HasLen(m.Oneofs, 1))
	o := m.OneofByName("msg")
	qt.Assert(t, qt.HasLen(o.Fields, 2))
	qt.Assert(t, qt.Equals(m.Lookup("msgDelegate").Oneof, o))
	qt.Assert(t, qt.IsTrue(m.Lookup("msgDelegate").HasPresence()))
	qt.Assert(t, qt.IsFalse(m.Lookup("txId").HasPresence()))
}

func TestEnum_Validation(t *testing.T) {
	_, err := schema.NewEnum("test.NoZero", schema.EnumValue{Name: "ONE", Number: 1})
	qt.Assert(t, qt.ErrorIs(err, schema.ErrInvalidSchema))

	_, err = schema.NewEnum("test.DupName",
		schema.EnumValue{Name: "A", Number: 0},
		schema.EnumValue{Name: "A", Number: 1})
	qt.Assert(t, qt.ErrorIs(err, schema.ErrInvalidSchema))

	_, err = schema.NewEnum("test.Alias",
		schema.EnumValue{Name: "A", Number: 0},
		schema.EnumValue{Name: "B", Number: 0})
	qt.Assert(t, qt.ErrorIs(err, schema.ErrInvalidSchema))

	e := schema.MustEnum("test.Status",
		schema.EnumValue{Name: "UNSPECIFIED", Number: 0},
		schema.EnumValue{Name: "CONFIRMED", Number: 1},
		schema.EnumValue{Name: "FINALIZED", Number: 2})
	v, ok := e.ByName("FINALIZED")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(v.Number, int32(2)))
	_, ok = e.ByName("finalized")
	qt.Assert(t, qt.IsFalse(ok))
	_, ok = e.ByNumber(7)
	qt.Assert(t, qt.IsFalse(ok))
	qt.Assert(t, qt.Equals(e.Default().Name, "UNSPECIFIED"))
}

func TestRegistry_LinksReferences(t *testing.T) {
	status := schema.MustEnum("test.Status", schema.EnumValue{Name: "UNSPECIFIED", Number: 0})
	node := schema.MustMessage("test.Node",
		schema.FieldDef{Name: "status", Type: schema.EnumRef("test.Status")},
		schema.FieldDef{Name: "children", Type: schema.MessageRef("test.Node"), Presence: schema.Repeated},
		schema.FieldDef{Name: "index", Type: schema.MapOf(schema.Scalar(schema.KindString), schema.MessageRef("test.Node"))},
	)
	reg, err := schema.NewRegistry([]*schema.Message{node}, []*schema.Enum{status})
	qt.Assert(t, qt.IsNil(err))

	m, ok := reg.Describe("test.Node")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(m.Lookup("children").Type.Message, node))
	qt.Assert(t, qt.Equals(m.Lookup("status").Type.Enum, status))
	qt.Assert(t, qt.Equals(m.Lookup("index").Type.Elem.Message, node))
	qt.Assert(t, qt.HasLen(reg.Fingerprint(), 64))

	_, ok = reg.Describe("test.Missing")
	qt.Assert(t, qt.IsFalse(ok))
}

func TestRegistry_Unresolved(t *testing.T) {
	m := schema.MustMessage("test.Dangling",
		schema.FieldDef{Name: "next", Type: schema.MessageRef("test.Nowhere")})
	_, err := schema.NewRegistry([]*schema.Message{m}, nil)
	qt.Assert(t, qt.ErrorIs(err, schema.ErrInvalidSchema))
	qt.Assert(t, qt.ErrorMatches(err, `.*unresolved message "test.Nowhere".*`))
}

func TestRegistry_FingerprintStable(t *testing.T) {
	build := func(jsonName string) *schema.Registry {
		m := schema.MustMessage("test.Msg",
			schema.FieldDef{Name: "a_b", JSONName: jsonName, Type: schema.Scalar(schema.KindInt64)})
		return schema.MustRegistry([]*schema.Message{m}, nil)
	}
	qt.Assert(t, qt.Equals(build("").Fingerprint(), build("aB").Fingerprint()))
	qt.Assert(t, qt.Not(qt.Equals(build("").Fingerprint(), build("custom").Fingerprint())))
}
