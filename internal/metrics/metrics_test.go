package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	t.Parallel()

	m := New()
	if m == nil {
		t.Fatal("New returned nil")
	}
	if m.Registry() == nil {
		t.Error("Registry should be initialized")
	}
}

func TestMetricsIsolatedRegistries(t *testing.T) {
	t.Parallel()

	// Two instances must not collide; the default registry would panic
	// on the duplicate registration.
	a := New()
	b := New()
	a.ObserveBuild("fibonacci", 10, time.Millisecond, nil)
	b.ObserveBuild("fibonacci", 10, time.Millisecond, nil)
}

func TestHandlerExposesCollectors(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveBuild("fibonacci", 42, 5*time.Millisecond, nil)
	m.ObserveBuild("n-queens", 7, time.Millisecond, errDummy)
	m.BuildStarted()
	defer m.BuildFinished()
	m.PlaybackTick()
	m.IncrementActiveRequests()
	defer m.DecrementActiveRequests()
	m.CountRequest("/healthz")

	req := httptest.NewRequest("GET", "/metrics", http.NoBody)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)
	body := rec.Body.String()

	for _, want := range []string{
		"tracekit_traces_built_total",
		"tracekit_build_errors_total",
		"tracekit_build_duration_seconds",
		"tracekit_trace_steps",
		"tracekit_active_builds 1",
		"tracekit_playback_ticks_total 1",
		"tracekit_requests_total",
		"tracekit_active_requests 1",
		"go_",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestSetPlaybackState(t *testing.T) {
	t.Parallel()

	m := New()
	m.SetPlaybackState("playing")
	m.SetPlaybackState("paused")
	m.PlaybackTick()

	req := httptest.NewRequest("GET", "/metrics", http.NoBody)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)
	body := rec.Body.String()

	for _, want := range []string{
		`tracekit_playback_state{state="paused"} 1`,
		`tracekit_playback_state{state="playing"} 0`,
		`tracekit_playback_state{state="idle"} 0`,
		"tracekit_playback_ticks_total 1",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestObserveBuildSeparatesErrors(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveBuild("fibonacci", 10, time.Millisecond, errDummy)

	req := httptest.NewRequest("GET", "/metrics", http.NoBody)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)
	body := rec.Body.String()

	if !strings.Contains(body, `tracekit_build_errors_total{algorithm="fibonacci"} 1`) {
		t.Error("failed build was not counted as an error")
	}
	if strings.Contains(body, `tracekit_traces_built_total{algorithm="fibonacci"}`) {
		t.Error("failed build was counted as a success")
	}
}

var errDummy = errTest("build failed")

type errTest string

func (e errTest) Error() string { return string(e) }
