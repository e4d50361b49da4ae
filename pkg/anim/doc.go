// Package anim provides the timing primitives of the drag engine: a
// debouncer, a frame-rate limiter, the placeholder transition state machine,
// and a staggered animation queue.
//
// The engine's concurrency model is cooperative and timer-driven, mirroring
// a UI event loop: all waiting happens through timers, and every primitive
// follows a cancel-then-reschedule discipline so the most recent request
// always wins over anything still pending. No stale callback may ever apply
// after a newer request superseded it; the transition manager enforces this
// with a generation counter rather than by inspecting timer handles.
//
// Every timer-based type exposes an explicit cancel/cleanup path which must
// be invoked on drag-end or host teardown, otherwise timers leak and
// callbacks can fire after the consumer is gone.
package anim
