// Package dsl is a fluent builder for schema descriptors.
//
//	status := dsl.Enum("babylon.checkpointing.v1.CheckpointStatus").
//		Values("CKPT_STATUS_ACCUMULATING", "CKPT_STATUS_SEALED").
//		MustBuild()
//
//	ckpt := dsl.Message("babylon.checkpointing.v1.RawCheckpointWithMeta").
//		Field("ckpt", dsl.Ref("babylon.checkpointing.v1.RawCheckpoint")).
//		Field("status", dsl.EnumOf(status)).
//		Field("lifecycle", dsl.Ref("babylon.checkpointing.v1.CheckpointStateUpdate")).Repeated().
//		MustBuild()
//
// Modifiers (Optional, Repeated, JSONName) apply to the field declared last.
// Oneof groups are declared with Oneof and Member.
package dsl
