// Package playback drives step-by-step traversal of an algorithm trace.
//
// The Controller is a small state machine (idle, playing, paused) over an
// immutable trace. While playing, it schedules exactly one pending timer
// at a time through a Clock abstraction; pausing, seeking, reloading or a
// speed change cancels the pending tick before anything else happens, so
// a stale timer can never advance the cursor. All state is confined
// behind a single mutex and observers are notified outside of it.
package playback
