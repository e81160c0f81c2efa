package tui

import (
	"time"

	"github.com/algoviz/tracekit/internal/playback"
	"github.com/algoviz/tracekit/internal/sysmon"
)

// TickMsg drives the periodic system-stats refresh.
type TickMsg time.Time

// SysStatsMsg carries one CPU/memory sample.
type SysStatsMsg sysmon.Stats

// PlaybackMsg carries a playback state change observed outside the
// update loop, typically from the controller's tick timer.
type PlaybackMsg playback.Snapshot
