package playback

import "time"

// Timer is a cancellable scheduled call, the subset of *time.Timer the
// controller needs.
type Timer interface {
	// Stop cancels the call. It reports whether the call was still
	// pending; a false return means the function already fired or was
	// stopped before.
	Stop() bool
}

// Clock schedules deferred function calls. The controller takes a Clock
// so tests can drive ticks deterministically instead of sleeping.
type Clock interface {
	// AfterFunc calls fn in its own goroutine after d has elapsed.
	AfterFunc(d time.Duration, fn func()) Timer
}

// realClock delegates to the time package.
type realClock struct{}

func (realClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// NewRealClock returns a Clock backed by time.AfterFunc.
func NewRealClock() Clock { return realClock{} }
