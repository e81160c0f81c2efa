package tui

import (
	"sync"

	"github.com/algoviz/tracekit/internal/metrics"
	"github.com/algoviz/tracekit/internal/playback"
)

// playbackRecorder mirrors controller snapshots into the Prometheus
// collectors. It keeps the previous snapshot so automatic ticks can be
// told apart from manual steps.
type playbackRecorder struct {
	met *metrics.Metrics

	mu     sync.Mutex
	cursor int
	state  playback.State
}

func newPlaybackRecorder(met *metrics.Metrics) *playbackRecorder {
	return &playbackRecorder{met: met, cursor: -1, state: playback.StateIdle}
}

// Observe records one snapshot. A single-step advance that left a
// playing controller is an automatic tick; manual steps leave the
// controller paused and do not count.
func (r *playbackRecorder) Observe(s playback.Snapshot) {
	r.mu.Lock()
	prevCursor, prevState := r.cursor, r.state
	r.cursor, r.state = s.Cursor, s.State
	r.mu.Unlock()

	if r.met == nil {
		return
	}
	r.met.SetPlaybackState(string(s.State))
	if prevState == playback.StatePlaying && s.State != playback.StatePaused && s.Cursor == prevCursor+1 {
		r.met.PlaybackTick()
	}
}
