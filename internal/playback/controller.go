package playback

import (
	"sync"
	"time"

	"github.com/algoviz/tracekit/internal/trace"
)

// State is the controller's lifecycle phase.
type State string

// Controller states.
const (
	StateIdle    State = "idle"
	StatePlaying State = "playing"
	StatePaused  State = "paused"
)

// Speed is a named playback rate.
type Speed string

// Available speeds.
const (
	SpeedSlow   Speed = "slow"
	SpeedMedium Speed = "medium"
	SpeedFast   Speed = "fast"
)

// Per-speed delays between automatic steps.
const (
	delaySlow   = 1500 * time.Millisecond
	delayMedium = 800 * time.Millisecond
	delayFast   = 300 * time.Millisecond
)

// IsValid reports whether s names a known speed.
func (s Speed) IsValid() bool {
	switch s {
	case SpeedSlow, SpeedMedium, SpeedFast:
		return true
	}
	return false
}

// Delay returns the pause between automatic steps at this speed.
// Unknown speeds fall back to medium.
func (s Speed) Delay() time.Duration {
	switch s {
	case SpeedSlow:
		return delaySlow
	case SpeedFast:
		return delayFast
	default:
		return delayMedium
	}
}

// Snapshot is an immutable view of the controller handed to observers.
type Snapshot struct {
	State  State
	Cursor int
	Total  int
	Speed  Speed
}

// Controller steps through a loaded trace, either manually or on a
// timer. Every method is safe for concurrent use; all mutable state
// lives behind one mutex and timer callbacks re-enter through it.
type Controller struct {
	mu sync.Mutex

	clock Clock
	steps trace.Trace
	// cursor indexes the current step; -1 only before the first Load.
	cursor int
	state  State
	speed  Speed

	// timer is the single pending tick, nil when none is scheduled.
	// generation invalidates callbacks from timers that were stopped
	// after already firing.
	timer      Timer
	generation uint64

	onChange func(Snapshot)
}

// Option configures a Controller during construction.
type Option func(*Controller)

// WithClock replaces the wall clock, used by tests.
func WithClock(clock Clock) Option {
	return func(c *Controller) { c.clock = clock }
}

// WithObserver registers a callback invoked after every state change.
// The callback runs outside the controller's lock.
func WithObserver(fn func(Snapshot)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// NewController creates an idle controller with no trace loaded,
// starting at medium speed.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		clock:  NewRealClock(),
		cursor: -1,
		state:  StateIdle,
		speed:  SpeedMedium,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load replaces the trace and rewinds to the first step. Any pending
// tick is cancelled. An empty trace is accepted; playback operations on
// it are no-ops.
func (c *Controller) Load(tr trace.Trace) {
	c.mu.Lock()
	c.cancelPendingLocked()
	c.steps = tr
	c.state = StateIdle
	if len(tr) == 0 {
		c.cursor = -1
	} else {
		c.cursor = 0
	}
	c.notify(c.snapshotLocked())
}

// Play starts automatic stepping. It is a no-op while already playing,
// with no trace loaded, or when the cursor sits on the final step.
func (c *Controller) Play() {
	c.mu.Lock()
	if c.state == StatePlaying || len(c.steps) == 0 || c.cursor >= len(c.steps)-1 {
		c.mu.Unlock()
		return
	}
	c.state = StatePlaying
	c.scheduleLocked()
	c.notify(c.snapshotLocked())
}

// Pause cancels the pending tick and holds the cursor in place.
func (c *Controller) Pause() {
	c.mu.Lock()
	if c.state != StatePlaying {
		c.mu.Unlock()
		return
	}
	c.cancelPendingLocked()
	c.state = StatePaused
	c.notify(c.snapshotLocked())
}

// Step moves the cursor by delta (negative steps backward), clamped to
// the trace bounds. Stepping pauses playback first so a pending tick
// cannot race the manual move.
func (c *Controller) Step(delta int) {
	c.mu.Lock()
	if len(c.steps) == 0 {
		c.mu.Unlock()
		return
	}
	c.cancelPendingLocked()
	if c.state == StatePlaying {
		c.state = StatePaused
	}
	c.cursor = clamp(c.cursor+delta, 0, len(c.steps)-1)
	c.notify(c.snapshotLocked())
}

// Reset stops playback and rewinds to the first step.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.cancelPendingLocked()
	c.state = StateIdle
	if len(c.steps) > 0 {
		c.cursor = 0
	}
	c.notify(c.snapshotLocked())
}

// SetSpeed changes the playback rate. While playing, the pending tick
// is rescheduled so the new delay takes effect immediately. Unknown
// speeds are ignored.
func (c *Controller) SetSpeed(speed Speed) {
	if !speed.IsValid() {
		return
	}
	c.mu.Lock()
	c.speed = speed
	if c.state == StatePlaying {
		c.cancelPendingLocked()
		c.scheduleLocked()
	}
	c.notify(c.snapshotLocked())
}

// CurrentStep returns the step under the cursor. The second return is
// false when no trace is loaded.
func (c *Controller) CurrentStep() (trace.Step, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cursor < 0 || c.cursor >= len(c.steps) {
		return trace.Step{}, false
	}
	return c.steps[c.cursor], true
}

// Cursor returns the current step index, -1 when no trace is loaded.
func (c *Controller) Cursor() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

// Len returns the number of loaded steps.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.steps)
}

// Progress returns traversal completion in [0,1]: (cursor+1)/len, or 0
// when no trace is loaded.
func (c *Controller) Progress() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.steps) == 0 {
		return 0
	}
	return float64(c.cursor+1) / float64(len(c.steps))
}

// State returns the current lifecycle phase.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Speed returns the current playback rate.
func (c *Controller) Speed() Speed {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

// IsPlaying reports whether a tick is scheduled.
func (c *Controller) IsPlaying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StatePlaying
}

// IsAtEnd reports whether the cursor sits on the final step.
func (c *Controller) IsAtEnd() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.steps) > 0 && c.cursor == len(c.steps)-1
}

// scheduleLocked arms the single pending tick. Callers hold the lock
// and have already cancelled any previous timer.
func (c *Controller) scheduleLocked() {
	c.generation++
	gen := c.generation
	c.timer = c.clock.AfterFunc(c.speed.Delay(), func() { c.tick(gen) })
}

// cancelPendingLocked stops the pending tick, if any, and bumps the
// generation so a callback that already fired but has not taken the
// lock yet becomes a no-op.
func (c *Controller) cancelPendingLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.generation++
}

// tick advances the cursor by one and re-arms the timer. Reaching the
// final step returns the controller to idle. Stale generations are
// ignored.
func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	if gen != c.generation || c.state != StatePlaying {
		c.mu.Unlock()
		return
	}
	if c.cursor < len(c.steps)-1 {
		c.cursor++
	}
	if c.cursor >= len(c.steps)-1 {
		c.timer = nil
		c.state = StateIdle
	} else {
		c.scheduleLocked()
	}
	c.notify(c.snapshotLocked())
}

// snapshotLocked captures the observer view. Callers hold the lock.
func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{State: c.state, Cursor: c.cursor, Total: len(c.steps), Speed: c.speed}
}

// notify releases the lock, then invokes the observer so a callback can
// call back into the controller without deadlocking.
func (c *Controller) notify(snap Snapshot) {
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn(snap)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
