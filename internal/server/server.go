// Package server exposes the packing pipeline over HTTP.
//
// # Routes
//
//   - GET  /healthz: liveness and build version
//   - GET  /metrics: pipeline and cache counters, when enabled
//   - POST /pack: pack and render a single artifact from a JSON request
//   - POST /render: render an uploaded scene.json
//   - GET  /ws/pack: pack over a WebSocket, streaming tick progress
//
// Errors are answered as JSON objects carrying the error code and a user
// facing message, with the status chosen by [errors.HTTPStatus].
package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/circlepack/pkg/buildinfo"
	"github.com/matzehuels/circlepack/pkg/errors"
	"github.com/matzehuels/circlepack/pkg/observability"
	"github.com/matzehuels/circlepack/pkg/pack"
	"github.com/matzehuels/circlepack/pkg/pipeline"
)

// Limits applied to every request.
const (
	// MaxBodyBytes bounds request bodies; a default scene is well below it.
	MaxBodyBytes = 8 << 20
	// MaxTickLimit bounds the ticks a single request may spend.
	MaxTickLimit = pipeline.DefaultTickLimit
	// MaxSize bounds the region side of a packing or an uploaded scene.
	MaxSize = 4096.0
	// MaxAttempts bounds placement draws per tick. A tick is not
	// interruptible, so this keeps each one short.
	MaxAttempts = pack.DefaultMaxAttempts
	// MaxTargetPerFrame bounds the circles placed per tick.
	MaxTargetPerFrame = 256
	// MaxImageSide bounds PNG output in pixels.
	MaxImageSide = 4096
	// DefaultProgressEvery is the WebSocket frame interval in ticks.
	DefaultProgressEvery = 25

	shutdownTimeout = 10 * time.Second
)

// Server routes HTTP requests to a pipeline runner.
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	counters *observability.Counters
	router   chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithCounters serves c at GET /metrics. Registering c as the process
// hooks is left to the caller.
func WithCounters(c *observability.Counters) Option {
	return func(s *Server) { s.counters = c }
}

// New builds a server around runner. A nil logger falls back to the
// runner's logger.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{runner: runner, logger: logger}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	if s.counters != nil {
		r.Get("/metrics", s.handleMetrics)
	}
	r.Post("/pack", s.handlePack)
	r.Post("/render", s.handleRender)
	r.Get("/ws/pack", s.handlePackStream)

	s.router = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// =============================================================================
// Middleware
// =============================================================================

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// =============================================================================
// Responses
// =============================================================================

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{
		Code:    string(code),
		Message: errors.UserMessage(err),
		Field:   errors.FieldOf(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type healthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Info: buildinfo.Get()})
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.counters.Snapshot())
}
