package pbjson_test

import (
	"github.com/reoring/pbjson/schema"
)

var (
	checkpointStatus = schema.MustEnum("babylon.checkpointing.v1.CheckpointStatus",
		schema.EnumValue{Name: "CKPT_STATUS_ACCUMULATING", Number: 0},
		schema.EnumValue{Name: "CKPT_STATUS_SEALED", Number: 1},
		schema.EnumValue{Name: "CKPT_STATUS_SUBMITTED", Number: 2},
		schema.EnumValue{Name: "CKPT_STATUS_CONFIRMED", Number: 3},
		schema.EnumValue{Name: "CKPT_STATUS_FINALIZED", Number: 4},
	)

	rawCheckpoint = schema.MustMessage("babylon.checkpointing.v1.RawCheckpoint",
		schema.FieldDef{Name: "epoch_num", Type: schema.Scalar(schema.KindUint64)},
		schema.FieldDef{Name: "last_commit_hash", Type: schema.Scalar(schema.KindBytes)},
		schema.FieldDef{Name: "bitmap", Type: schema.Scalar(schema.KindBytes)},
		schema.FieldDef{Name: "bls_multi_sig", Type: schema.Scalar(schema.KindBytes)},
	)

	stateUpdate = schema.MustMessage("babylon.checkpointing.v1.CheckpointStateUpdate",
		schema.FieldDef{Name: "state", Type: schema.EnumOf(checkpointStatus)},
		schema.FieldDef{Name: "block_height", Type: schema.Scalar(schema.KindUint64)},
		schema.FieldDef{Name: "block_time", Type: schema.Scalar(schema.KindTimestamp)},
	)

	checkpointWithMeta = schema.MustMessage("babylon.checkpointing.v1.RawCheckpointWithMeta",
		schema.FieldDef{Name: "ckpt", Type: schema.MessageOf(rawCheckpoint)},
		schema.FieldDef{Name: "status", Type: schema.EnumOf(checkpointStatus)},
		schema.FieldDef{Name: "bls_aggr_pk", Type: schema.Scalar(schema.KindBytes)},
		schema.FieldDef{Name: "power_sum", Type: schema.Scalar(schema.KindUint64)},
		schema.FieldDef{Name: "lifecycle", Type: schema.MessageOf(stateUpdate), Presence: schema.Repeated},
	)

	msgDelegate = schema.MustMessage("cosmos.staking.v1beta1.MsgDelegate",
		schema.FieldDef{Name: "delegator_address", Type: schema.Scalar(schema.KindString)},
		schema.FieldDef{Name: "validator_address", Type: schema.Scalar(schema.KindString)},
	)

	queuedMessage = schema.MustMessage("babylon.epoching.v1.QueuedMessage",
		schema.FieldDef{Name: "tx_id", Type: schema.Scalar(schema.KindBytes)},
		schema.FieldDef{Name: "msg_id", Type: schema.Scalar(schema.KindBytes)},
		schema.FieldDef{Name: "block_height", Type: schema.Scalar(schema.KindUint64)},
		schema.FieldDef{Name: "block_time", Type: schema.Scalar(schema.KindTimestamp)},
		schema.FieldDef{Name: "msg_delegate", Type: schema.MessageOf(msgDelegate), Oneof: "msg"},
		schema.FieldDef{Name: "msg_undelegate", Type: schema.MessageOf(msgDelegate), Oneof: "msg"},
	)

	// scalars covers every kind, including maps and explicit presence.
	scalars = schema.MustMessage("test.Scalars",
		schema.FieldDef{Name: "i32", Type: schema.Scalar(schema.KindInt32)},
		schema.FieldDef{Name: "i64", Type: schema.Scalar(schema.KindInt64)},
		schema.FieldDef{Name: "u32", Type: schema.Scalar(schema.KindUint32)},
		schema.FieldDef{Name: "u64", Type: schema.Scalar(schema.KindUint64)},
		schema.FieldDef{Name: "flag", Type: schema.Scalar(schema.KindBool)},
		schema.FieldDef{Name: "name", Type: schema.Scalar(schema.KindString)},
		schema.FieldDef{Name: "opt_name", Type: schema.Scalar(schema.KindString), Presence: schema.Optional},
		schema.FieldDef{Name: "labels", Type: schema.MapOf(schema.Scalar(schema.KindString), schema.Scalar(schema.KindString))},
		schema.FieldDef{Name: "heights", Type: schema.MapOf(schema.Scalar(schema.KindInt64), schema.Scalar(schema.KindUint64))},
		schema.FieldDef{Name: "tags", Type: schema.Scalar(schema.KindString), Presence: schema.Repeated},
	)

	registry = schema.MustRegistry([]*schema.Message{checkpointWithMeta, queuedMessage, scalars}, nil)
)
