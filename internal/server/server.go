// Package server exposes the observability endpoints: Prometheus
// metrics and a liveness probe. It is optional; the CLI only starts it
// when a listen address is configured.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/algoviz/tracekit/internal/logging"
	"github.com/algoviz/tracekit/internal/metrics"
)

// Timeouts for the embedded HTTP server.
const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Server serves /metrics and /healthz on a dedicated listener.
type Server struct {
	httpServer *http.Server
	metrics    *metrics.Metrics
	security   SecurityConfig
	log        logging.Logger
}

// New creates a Server listening on addr.
func New(addr string, m *metrics.Metrics, log logging.Logger) *Server {
	s := &Server{
		metrics:  m,
		security: DefaultSecurityConfig(),
		log:      log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleMetrics)))
	mux.HandleFunc("/healthz", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleHealth)))

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return s
}

// Start serves until ctx is cancelled, then shuts down gracefully.
// It blocks and returns nil on a clean shutdown.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("observability server listening", logging.String("addr", s.httpServer.Addr))
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.log.Warn("server shutdown", logging.Err(err))
			return err
		}
		s.log.Info("observability server stopped")
		return nil
	}
}

// metricsMiddleware tracks in-flight and total requests around next.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()
		s.metrics.CountRequest(r.URL.Path)
		next(w, r)
	}
}

// handleMetrics serves the Prometheus scrape endpoint.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	s.metrics.Handler().ServeHTTP(w, r)
}

// handleHealth answers liveness probes.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
