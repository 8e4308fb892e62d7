package dsl_test

import (
	"context"
	"errors"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/reoring/pbjson"
	"github.com/reoring/pbjson/dsl"
	"github.com/reoring/pbjson/schema"
)

func babylon(t *testing.T) *schema.Registry {
	t.Helper()
	status := dsl.Enum("babylon.checkpointing.v1.CheckpointStatus").
		Values("CKPT_STATUS_ACCUMULATING", "CKPT_STATUS_SEALED", "CKPT_STATUS_SUBMITTED", "CKPT_STATUS_CONFIRMED", "CKPT_STATUS_FINALIZED").
		MustBuild()
	raw := dsl.Message("babylon.checkpointing.v1.RawCheckpoint").
		Field("epoch_num", dsl.Uint64()).
		Field("last_commit_hash", dsl.Bytes()).
		Field("bitmap", dsl.Bytes()).
		Field("bls_multi_sig", dsl.Bytes()).
		MustBuild()
	update := dsl.Message("babylon.checkpointing.v1.CheckpointStateUpdate").
		Field("state", dsl.EnumRef("babylon.checkpointing.v1.CheckpointStatus")).
		Field("block_height", dsl.Uint64()).
		Field("block_time", dsl.Timestamp()).
		MustBuild()
	withMeta := dsl.Message("babylon.checkpointing.v1.RawCheckpointWithMeta").
		Field("ckpt", dsl.Ref("babylon.checkpointing.v1.RawCheckpoint")).
		Field("status", dsl.EnumOf(status)).
		Field("bls_aggr_pk", dsl.Bytes()).
		Field("power_sum", dsl.Uint64()).
		Field("lifecycle", dsl.Ref("babylon.checkpointing.v1.CheckpointStateUpdate")).Repeated().
		MustBuild()
	reg, err := schema.NewRegistry([]*schema.Message{withMeta, raw, update}, []*schema.Enum{status})
	qt.Assert(t, qt.IsNil(err))
	return reg
}

func TestBuilder_BabylonCheckpoint(t *testing.T) {
	reg := babylon(t)
	md := reg.MustDescribe("babylon.checkpointing.v1.RawCheckpointWithMeta")
	qt.Assert(t, qt.HasLen(md.Fields, 5))
	qt.Check(t, qt.Equals(md.FieldByName("lifecycle").Presence, schema.Repeated))
	qt.Check(t, qt.IsTrue(md.FieldByName("ckpt").Type.Resolved()))

	in := `{"ckpt":{"epochNum":"10","bitmap":"AQID"},"status":"CKPT_STATUS_SEALED","lifecycle":[{"state":"CKPT_STATUS_ACCUMULATING","blockHeight":"1","blockTime":"2023-05-01T00:00:00Z"}]}`
	inst, err := pbjson.DecodeBytes(context.Background(), md, []byte(in))
	qt.Assert(t, qt.IsNil(err))
	out, err := pbjson.Encode(context.Background(), inst)
	qt.Assert(t, qt.IsNil(err))
	// state is the zero enum value and is dropped.
	qt.Check(t, qt.JSONEquals(out, map[string]any{
		"ckpt":      map[string]any{"epochNum": "10", "bitmap": "AQID"},
		"status":    "CKPT_STATUS_SEALED",
		"lifecycle": []any{map[string]any{"blockHeight": "1", "blockTime": "2023-05-01T00:00:00Z"}},
	}))
}

func TestBuilder_FieldModifiers(t *testing.T) {
	md := dsl.Message("test.Mods").
		Field("note", dsl.String()).Optional().
		Field("ids", dsl.Int64()).Repeated().
		Field("block_time", dsl.Timestamp()).JSONName("time").
		Field("labels", dsl.Map(dsl.String(), dsl.Uint32())).
		Oneof("payload",
			dsl.Member("text", dsl.String()),
			dsl.Member("raw_data", dsl.Bytes()).WithJSONName("blob"),
		).
		MustBuild()

	qt.Check(t, qt.Equals(md.FieldByName("note").Presence, schema.Optional))
	qt.Check(t, qt.IsTrue(md.FieldByName("ids").IsList()))
	qt.Check(t, qt.Equals(md.Lookup("time"), md.FieldByName("block_time")))
	qt.Check(t, qt.IsTrue(md.FieldByName("labels").IsMap()))
	o := md.OneofByName("payload")
	qt.Assert(t, qt.IsNotNil(o))
	qt.Check(t, qt.HasLen(o.Fields, 2))
	qt.Check(t, qt.Equals(md.Lookup("blob"), md.FieldByName("raw_data")))
}

func TestBuilder_Errors(t *testing.T) {
	_, err := dsl.Message("test.Bad").
		Field("epoch_num", dsl.Uint64()).
		Field("epochNum", dsl.Uint64()).
		Build()
	qt.Check(t, qt.IsTrue(errors.Is(err, schema.ErrInvalidSchema)))

	_, err = dsl.Enum("test.NoZero").Value("ONE", 1).Build()
	qt.Check(t, qt.IsNotNil(err))

	_, err = dsl.Message("test.BadMap").Field("m", dsl.Map(dsl.Bytes(), dsl.String())).Build()
	qt.Check(t, qt.IsTrue(errors.Is(err, schema.ErrInvalidSchema)))

	qt.Check(t, qt.PanicMatches(func() {
		dsl.Message("").MustBuild()
	}, ".*message without a name"))
}
