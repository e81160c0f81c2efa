package playback_test

import (
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/algoviz/tracekit/internal/playback"
	"github.com/algoviz/tracekit/internal/playback/mocks"
	"github.com/algoviz/tracekit/internal/trace"
)

// fakeClock hands out timers that fire only when the test says so.
type fakeClock struct {
	mu      sync.Mutex
	pending []*fakeTimer
	delays  []time.Duration
}

type fakeTimer struct {
	clock   *fakeClock
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) playback.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, fn: fn}
	c.pending = append(c.pending, t)
	c.delays = append(c.delays, d)
	return t
}

// fire runs the single live pending timer and fails the test if there
// is not exactly one.
func (c *fakeClock) fire(t *testing.T) {
	t.Helper()
	c.mu.Lock()
	var live []*fakeTimer
	for _, timer := range c.pending {
		if !timer.stopped && !timer.fired {
			live = append(live, timer)
		}
	}
	if len(live) != 1 {
		c.mu.Unlock()
		t.Fatalf("expected exactly 1 pending timer, have %d", len(live))
	}
	timer := live[0]
	timer.fired = true
	fn := timer.fn
	c.mu.Unlock()
	fn()
}

func (c *fakeClock) livePending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, timer := range c.pending {
		if !timer.stopped && !timer.fired {
			n++
		}
	}
	return n
}

func (c *fakeClock) lastDelay() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.delays) == 0 {
		return 0
	}
	return c.delays[len(c.delays)-1]
}

// makeTrace builds a minimal well-formed trace of n steps.
func makeTrace(n int) trace.Trace {
	tr := make(trace.Trace, n)
	for i := range tr {
		tr[i] = trace.Step{Kind: trace.KindCompute, SourceLineRef: 1}
	}
	if n > 0 {
		tr[0] = trace.Step{Kind: trace.KindInit, SourceLineRef: 1}
		tr[n-1] = trace.Step{Kind: trace.KindComplete, SourceLineRef: 1}
	}
	return tr
}

func TestSpeedDelay(t *testing.T) {
	tests := []struct {
		speed playback.Speed
		want  time.Duration
	}{
		{playback.SpeedSlow, 1500 * time.Millisecond},
		{playback.SpeedMedium, 800 * time.Millisecond},
		{playback.SpeedFast, 300 * time.Millisecond},
		{playback.Speed("warp"), 800 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := tt.speed.Delay(); got != tt.want {
			t.Errorf("Delay(%s) = %v, want %v", tt.speed, got, tt.want)
		}
	}
}

func TestLoadRewinds(t *testing.T) {
	c := playback.NewController(playback.WithClock(&fakeClock{}))
	tr := makeTrace(5)
	c.Load(tr)

	if c.Cursor() != 0 || c.State() != playback.StateIdle {
		t.Errorf("after Load: cursor=%d state=%s, want 0/idle", c.Cursor(), c.State())
	}
	step, ok := c.CurrentStep()
	if !ok || step.Kind != trace.KindInit {
		t.Errorf("CurrentStep = %v, %v; want init step", step, ok)
	}
	if c.Len() != 5 {
		t.Errorf("Len = %d, want 5", c.Len())
	}
}

func TestEmptyTraceIsTolerated(t *testing.T) {
	c := playback.NewController(playback.WithClock(&fakeClock{}))
	c.Load(trace.Trace{})

	c.Play()
	c.Step(1)
	c.Reset()

	if c.IsPlaying() {
		t.Error("empty trace must not start playing")
	}
	if got := c.Progress(); got != 0 {
		t.Errorf("Progress = %v, want 0", got)
	}
	if _, ok := c.CurrentStep(); ok {
		t.Error("CurrentStep reported a step for an empty trace")
	}
	if c.IsAtEnd() {
		t.Error("empty trace cannot be at its end")
	}
}

func TestPlayAdvancesToEnd(t *testing.T) {
	clock := &fakeClock{}
	c := playback.NewController(playback.WithClock(clock))
	c.Load(makeTrace(4))
	c.Play()

	if !c.IsPlaying() {
		t.Fatal("expected playing state after Play")
	}

	// Three ticks walk cursor 0 -> 3; playback then halts on its own.
	for i := 1; i <= 3; i++ {
		clock.fire(t)
		if c.Cursor() != i {
			t.Fatalf("after tick %d: cursor = %d", i, c.Cursor())
		}
	}
	if got := c.State(); got != playback.StateIdle {
		t.Errorf("state after reaching the final step = %q, want %q", got, playback.StateIdle)
	}
	if !c.IsAtEnd() {
		t.Error("expected IsAtEnd at cursor 3 of 4")
	}
	if clock.livePending() != 0 {
		t.Errorf("%d timers still pending after end of trace", clock.livePending())
	}
}

func TestPlayAtEndIsNoOp(t *testing.T) {
	clock := &fakeClock{}
	c := playback.NewController(playback.WithClock(clock))
	c.Load(makeTrace(3))
	c.Step(100)

	c.Play()
	if c.IsPlaying() || clock.livePending() != 0 {
		t.Error("Play on the final step must not schedule a tick")
	}
}

func TestPauseCancelsPendingTick(t *testing.T) {
	clock := &fakeClock{}
	c := playback.NewController(playback.WithClock(clock))
	c.Load(makeTrace(10))
	c.Play()
	c.Pause()

	if c.State() != playback.StatePaused {
		t.Errorf("state = %s, want paused", c.State())
	}
	if clock.livePending() != 0 {
		t.Errorf("%d timers pending after Pause, want 0", clock.livePending())
	}
	if c.Cursor() != 0 {
		t.Errorf("cursor moved to %d during pause", c.Cursor())
	}
}

func TestStaleTickIsIgnored(t *testing.T) {
	clock := &fakeClock{}
	c := playback.NewController(playback.WithClock(clock))
	c.Load(makeTrace(10))
	c.Play()

	// Capture the armed callback, pause, then simulate the race where
	// the timer had already fired before Stop took effect.
	clock.mu.Lock()
	fn := clock.pending[0].fn
	clock.mu.Unlock()
	c.Pause()
	fn()

	if c.Cursor() != 0 {
		t.Errorf("stale tick advanced cursor to %d", c.Cursor())
	}
	if c.IsPlaying() {
		t.Error("stale tick restarted playback")
	}
}

func TestStepClampsToBounds(t *testing.T) {
	c := playback.NewController(playback.WithClock(&fakeClock{}))
	c.Load(makeTrace(5))

	c.Step(100)
	if c.Cursor() != 4 {
		t.Errorf("cursor = %d after overshooting forward, want 4", c.Cursor())
	}
	c.Step(-100)
	if c.Cursor() != 0 {
		t.Errorf("cursor = %d after overshooting backward, want 0", c.Cursor())
	}
	c.Step(-1)
	if c.Cursor() != 0 {
		t.Errorf("cursor = %d after stepping back at start, want 0", c.Cursor())
	}
}

func TestStepPausesPlayback(t *testing.T) {
	clock := &fakeClock{}
	c := playback.NewController(playback.WithClock(clock))
	c.Load(makeTrace(10))
	c.Play()
	c.Step(1)

	if c.State() != playback.StatePaused {
		t.Errorf("state = %s after Step during playback, want paused", c.State())
	}
	if clock.livePending() != 0 {
		t.Error("manual Step left a tick pending")
	}
	if c.Cursor() != 1 {
		t.Errorf("cursor = %d, want 1", c.Cursor())
	}
}

func TestResetAlwaysRewinds(t *testing.T) {
	clock := &fakeClock{}
	c := playback.NewController(playback.WithClock(clock))
	c.Load(makeTrace(8))

	c.Step(5)
	c.Play()
	c.Reset()

	if c.Cursor() != 0 || c.IsPlaying() || c.State() != playback.StateIdle {
		t.Errorf("after Reset: cursor=%d playing=%v state=%s, want 0/false/idle",
			c.Cursor(), c.IsPlaying(), c.State())
	}
	if clock.livePending() != 0 {
		t.Error("Reset left a tick pending")
	}
}

func TestSetSpeedReschedulesPendingTick(t *testing.T) {
	clock := &fakeClock{}
	c := playback.NewController(playback.WithClock(clock))
	c.Load(makeTrace(10))
	c.Play()

	c.SetSpeed(playback.SpeedFast)
	if got := clock.lastDelay(); got != 300*time.Millisecond {
		t.Errorf("rescheduled delay = %v, want 300ms", got)
	}
	if clock.livePending() != 1 {
		t.Errorf("%d timers pending after speed change, want exactly 1", clock.livePending())
	}

	c.SetSpeed(playback.Speed("warp"))
	if c.Speed() != playback.SpeedFast {
		t.Errorf("unknown speed changed rate to %s", c.Speed())
	}
}

func TestProgress(t *testing.T) {
	c := playback.NewController(playback.WithClock(&fakeClock{}))
	c.Load(makeTrace(4))

	if got := c.Progress(); got != 0.25 {
		t.Errorf("Progress at start = %v, want 0.25", got)
	}
	c.Step(3)
	if got := c.Progress(); got != 1.0 {
		t.Errorf("Progress at end = %v, want 1.0", got)
	}
}

func TestObserverSeesChanges(t *testing.T) {
	var mu sync.Mutex
	var snaps []playback.Snapshot
	c := playback.NewController(
		playback.WithClock(&fakeClock{}),
		playback.WithObserver(func(s playback.Snapshot) {
			mu.Lock()
			snaps = append(snaps, s)
			mu.Unlock()
		}),
	)

	c.Load(makeTrace(3))
	c.Step(1)

	mu.Lock()
	defer mu.Unlock()
	if len(snaps) != 2 {
		t.Fatalf("observer saw %d changes, want 2", len(snaps))
	}
	if snaps[1].Cursor != 1 || snaps[1].Total != 3 {
		t.Errorf("last snapshot = %+v, want cursor 1 of 3", snaps[1])
	}
}

func TestControllerUsesClock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := mocks.NewMockClock(ctrl)
	timer := mocks.NewMockTimer(ctrl)
	clock.EXPECT().
		AfterFunc(800*time.Millisecond, gomock.Any()).
		Return(timer)
	timer.EXPECT().Stop().Return(true)

	c := playback.NewController(playback.WithClock(clock))
	c.Load(makeTrace(5))
	c.Play()
	c.Pause()
}
