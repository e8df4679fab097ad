package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lowceiling/mos-data-etl/internal/config"
)

const serviceName = "mos-data-etl"

const (
	// Budget for one readiness probe, kept under typical kubelet timeouts.
	readyCheckTimeout = 2 * time.Second

	idleTimeout = 60 * time.Second
)

// PipelineChecker reports whether the decode pipeline is producing reports.
// *pipeline.Pipeline satisfies it.
type PipelineChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the decode service's operational endpoints: liveness,
// pipeline readiness, and Prometheus metrics.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// statusResponse is the body of both probe endpoints.
type statusResponse struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Pipeline string `json:"pipeline,omitempty"`
	Error    string `json:"error,omitempty"`
}

// NewServer wires /healthz, /readyz, and /metrics. Readiness tracks the
// decode pipeline: the service reports ready once the pipeline has decoded
// its first bulletin batch.
func NewServer(cfg *config.Config, pipeline PipelineChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      mux,
			ReadTimeout:  cfg.HTTPReadTimeout,
			WriteTimeout: cfg.HTTPWriteTimeout,
			IdleTimeout:  idleTimeout,
		},
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(pipeline))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "healthy", Service: serviceName})
}

func handleReady(pipeline PipelineChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
		defer cancel()

		if err := pipeline.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, statusResponse{
				Status:   "not ready",
				Service:  serviceName,
				Pipeline: "waiting",
				Error:    err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, statusResponse{
			Status:   "ready",
			Service:  serviceName,
			Pipeline: "decoding",
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // probe responses are best effort
}
