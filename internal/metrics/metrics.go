// Package metrics instruments trace building and playback with
// Prometheus collectors. All collectors live on a private registry so
// tests and embedders never collide with the global default registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// namespace prefixes every metric this package registers.
const namespace = "tracekit"

// Metrics bundles the application's collectors.
type Metrics struct {
	registry *prometheus.Registry

	tracesBuilt   *prometheus.CounterVec
	buildErrors   *prometheus.CounterVec
	buildDuration *prometheus.HistogramVec
	traceSteps    *prometheus.HistogramVec
	activeBuilds  prometheus.Gauge
	playbackTicks prometheus.Counter
	playbackState *prometheus.GaugeVec

	requestsTotal  *prometheus.CounterVec
	activeRequests prometheus.Gauge
}

// New creates a Metrics with a fresh registry, the Go runtime and
// process collectors included.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		tracesBuilt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "traces_built_total",
			Help:      "Number of traces built, by algorithm.",
		}, []string{"algorithm"}),
		buildErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "build_errors_total",
			Help:      "Number of failed trace builds, by algorithm.",
		}, []string{"algorithm"}),
		buildDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Trace build latency, by algorithm.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"algorithm"}),
		traceSteps: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "trace_steps",
			Help:      "Steps per built trace, by algorithm.",
			Buckets:   prometheus.ExponentialBuckets(2, 4, 10),
		}, []string{"algorithm"}),
		activeBuilds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_builds",
			Help:      "Trace builds currently in flight.",
		}),
		playbackTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "playback_ticks_total",
			Help:      "Automatic playback steps taken.",
		}),
		playbackState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "playback_state",
			Help:      "Current playback state, 1 for the active state and 0 otherwise.",
		}, []string{"state"}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "HTTP requests served, by path.",
		}, []string{"path"}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_requests",
			Help:      "HTTP requests currently in flight.",
		}),
	}
	registry.MustRegister(
		m.tracesBuilt, m.buildErrors, m.buildDuration, m.traceSteps,
		m.activeBuilds, m.playbackTicks, m.playbackState,
		m.requestsTotal, m.activeRequests,
	)
	return m
}

// BuildStarted marks a trace build as in flight.
func (m *Metrics) BuildStarted() { m.activeBuilds.Inc() }

// BuildFinished marks an in-flight trace build as done.
func (m *Metrics) BuildFinished() { m.activeBuilds.Dec() }

// ObserveBuild records the outcome of one trace build.
func (m *Metrics) ObserveBuild(algorithm string, steps int, d time.Duration, err error) {
	if err != nil {
		m.buildErrors.WithLabelValues(algorithm).Inc()
		return
	}
	m.tracesBuilt.WithLabelValues(algorithm).Inc()
	m.buildDuration.WithLabelValues(algorithm).Observe(d.Seconds())
	m.traceSteps.WithLabelValues(algorithm).Observe(float64(steps))
}

// PlaybackTick records one automatic playback step.
func (m *Metrics) PlaybackTick() { m.playbackTicks.Inc() }

// playbackStates enumerates the controller states the gauge tracks.
var playbackStates = []string{"idle", "playing", "paused"}

// SetPlaybackState marks the given state as active and clears the rest.
func (m *Metrics) SetPlaybackState(state string) {
	for _, s := range playbackStates {
		value := 0.0
		if s == state {
			value = 1.0
		}
		m.playbackState.WithLabelValues(s).Set(value)
	}
}

// IncrementActiveRequests marks an HTTP request as in flight.
func (m *Metrics) IncrementActiveRequests() { m.activeRequests.Inc() }

// DecrementActiveRequests marks an in-flight HTTP request as done.
func (m *Metrics) DecrementActiveRequests() { m.activeRequests.Dec() }

// CountRequest records a served HTTP request.
func (m *Metrics) CountRequest(path string) {
	m.requestsTotal.WithLabelValues(path).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the private registry for embedders that register
// their own collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
