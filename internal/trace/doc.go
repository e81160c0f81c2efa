// Package trace defines the step/trace data model shared by all
// algorithm trace builders and the playback engine.
//
// A Trace is the full recorded sequence of Steps for one algorithm run.
// Steps are created only by a trace builder, are never mutated after
// creation, and their JSON shape ({kind, payload, sourceLineRef,
// description}) is a stable wire contract for any consumer such as a
// renderer or logger.
package trace
