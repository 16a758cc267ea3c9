// Package httpserver provides the HTTP API server for the iris inference service.
package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/irisml/iris-inference-service/internal/observability"
	"github.com/irisml/iris-inference-service/internal/state"
)

// Server is the HTTP API server.
type Server struct {
	router          chi.Router
	httpServer      *http.Server
	state           *state.State
	metrics         *observability.Metrics
	logger          zerolog.Logger
	validate        *validator.Validate
	tracer          trace.Tracer
	shutdownTimeout time.Duration
}

// Config holds HTTP server configuration.
type Config struct {
	Address         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// NewServer creates a new HTTP server with all dependencies.
func NewServer(
	cfg Config,
	st *state.State,
	metrics *observability.Metrics,
	logger zerolog.Logger,
) *Server {
	s := &Server{
		state:           st,
		metrics:         metrics,
		logger:          logger.With().Str("component", "http-server").Logger(),
		validate:        validator.New(),
		tracer:          otel.Tracer("http.server"),
		shutdownTimeout: cfg.ShutdownTimeout,
	}

	s.router = s.buildRouter()

	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// buildRouter creates the chi router with all middleware and routes.
//
// Ordering matters: the timing middleware wraps everything below it so the
// processing-time header covers error paths too, the trace middleware runs
// before the exception mapper so panics are logged with a trace identifier,
// and the exception mapper sits directly above the handlers.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.timingMiddleware)
	r.Use(jsonContentTypeMiddleware)
	r.Use(s.requestIDMiddleware)
	r.Use(s.traceMiddleware)
	r.Use(s.exceptionMiddleware)

	r.Get("/", s.homeHandler)
	r.Get("/live_check", s.livenessHandler)
	r.Get("/ready_check", s.readinessHandler)
	r.Post("/predict", s.predictHandler)

	return r
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info().Str("address", s.httpServer.Addr).Msg("HTTP server starting")
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on HTTP address: %w", err)
	}
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the HTTP server, bounded by the configured
// shutdown timeout when one is set.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.shutdownTimeout)
		defer cancel()
	}
	return s.httpServer.Shutdown(ctx)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Best-effort; headers already sent.
		_ = err
	}
}

// writeError writes a structured JSON error body. Every error response
// carries the trace identifier so callers can correlate with server-side
// logs, falling back to the all-zero identifier when tracing is absent.
func writeError(w http.ResponseWriter, r *http.Request, statusCode int, detail string) {
	writeJSON(w, statusCode, errorResponse{
		Detail:  detail,
		TraceID: observability.TraceIDFromContext(r.Context()),
	})
}
