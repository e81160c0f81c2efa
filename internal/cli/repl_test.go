package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/algoviz/tracekit/internal/playback"
)

func runREPL(t *testing.T, script string) string {
	t.Helper()
	silenceColors(t)

	r := NewREPL(REPLConfig{
		Timeout:      5 * time.Second,
		DetailLevel:  50,
		MaxSolutions: 2,
		Speed:        playback.SpeedFast,
	})
	var out bytes.Buffer
	r.SetInput(strings.NewReader(script))
	r.SetOutput(&out)
	r.Start()
	return out.String()
}

func TestREPLBuildAndStep(t *testing.T) {
	got := runREPL(t, "fib 10\nstep\nstep 3\nshow\nexit\n")

	if !strings.Contains(got, "Loaded fibonacci trace") {
		t.Errorf("missing load confirmation:\n%s", got)
	}
	// Step 1 then 3 more lands on index 4, shown 1-based as 5.
	if !strings.Contains(got, "[5/") {
		t.Errorf("cursor position not shown after stepping:\n%s", got)
	}
	if !strings.Contains(got, "Goodbye!") {
		t.Errorf("missing exit message:\n%s", got)
	}
}

func TestREPLQueens(t *testing.T) {
	got := runREPL(t, "queens 4\nstatus\nexit\n")

	if !strings.Contains(got, "Loaded n-queens trace") {
		t.Errorf("missing queens load:\n%s", got)
	}
	if !strings.Contains(got, "Algorithm: n-queens") {
		t.Errorf("status missing algorithm:\n%s", got)
	}
}

func TestREPLRejectsInvalidInput(t *testing.T) {
	got := runREPL(t, "fib -5\nqueens 50\nfrobnicate\nexit\n")

	if !strings.Contains(got, "n must be a non-negative integer") {
		t.Errorf("negative fib index not rejected:\n%s", got)
	}
	if !strings.Contains(got, "n must be <=") {
		t.Errorf("oversized board not rejected:\n%s", got)
	}
	if !strings.Contains(got, "Unknown command: frobnicate") {
		t.Errorf("unknown command not reported:\n%s", got)
	}
}

func TestREPLPlayWithoutTrace(t *testing.T) {
	got := runREPL(t, "play\nexit\n")
	if !strings.Contains(got, "No trace loaded") {
		t.Errorf("play without trace not handled:\n%s", got)
	}
}

func TestREPLSpeed(t *testing.T) {
	got := runREPL(t, "speed slow\nspeed ludicrous\nexit\n")
	if !strings.Contains(got, "Speed set to slow") {
		t.Errorf("speed change not confirmed:\n%s", got)
	}
	if !strings.Contains(got, "Unknown speed: ludicrous") {
		t.Errorf("invalid speed not rejected:\n%s", got)
	}
}

func TestREPLEOF(t *testing.T) {
	got := runREPL(t, "show\n")
	if !strings.Contains(got, "Goodbye!") {
		t.Errorf("EOF did not end the session cleanly:\n%s", got)
	}
}
