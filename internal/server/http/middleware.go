package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"

	"github.com/irisml/iris-inference-service/internal/observability"
)

// processTimeHeader carries the wall-clock processing duration in
// milliseconds with two-decimal precision, on every response.
const processTimeHeader = "X-Process-Time-Ms"

// timingResponseWriter stamps the processing-time header the moment the
// response status is first written, so the header reaches the client on
// success and error paths alike.
type timingResponseWriter struct {
	http.ResponseWriter
	start       time.Time
	status      int
	wroteHeader bool
}

func (w *timingResponseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	w.status = statusCode
	elapsed := float64(time.Since(w.start).Microseconds()) / 1000.0
	w.Header().Set(processTimeHeader, strconv.FormatFloat(elapsed, 'f', 2, 64))
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *timingResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// timingMiddleware measures every request/response cycle and records the
// request in the HTTP metrics. It executes for all paths, including error
// responses produced by the exception mapper.
func (s *Server) timingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tw := &timingResponseWriter{ResponseWriter: w, start: time.Now(), status: http.StatusOK}
		next.ServeHTTP(tw, r)
		s.metrics.RecordHTTPRequest(r.URL.Path, strconv.Itoa(tw.status))
	})
}

// requestIDMiddleware ensures every request has a correlation ID, echoed on
// the response.
func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = middleware.GetReqID(r.Context())
		}
		if requestID == "" {
			requestID = uuid.New().String()
		}

		w.Header().Set("X-Request-ID", requestID)
		ctx := observability.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// traceMiddleware starts a span for each HTTP request, honoring an inbound
// W3C traceparent when the caller supplied one, and stores the rendered
// trace identifier in the request context for logging and error bodies.
func (s *Server) traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		ctx, span := s.tracer.Start(ctx, r.Method+" "+r.URL.Path)
		defer span.End()
		span.SetAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.target", r.URL.Path),
		)

		ctx = observability.WithTraceID(ctx, observability.TraceIDFromContext(ctx))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// exceptionMiddleware is the last line of defense: it converts any panic not
// handled by a more specific path into a uniform, trace-tagged error
// response. No request ever returns an unstructured or trace-less failure.
func (s *Server) exceptionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				// The transport aborted the response on purpose.
				panic(rvr)
			}

			traceID := observability.TraceIDFromContext(r.Context())
			s.metrics.RecordPanicRecovered()
			s.logger.Error().
				Str("event", "unhandled_exception").
				Str("trace_id", traceID).
				Str("path", r.URL.Path).
				Interface("error", rvr).
				Msg("unhandled exception")

			writeJSON(w, http.StatusInternalServerError, errorResponse{
				Detail:  "Internal Server Error",
				TraceID: traceID,
			})
		}()

		next.ServeHTTP(w, r)
	})
}

// jsonContentTypeMiddleware sets Content-Type: application/json for all responses.
func jsonContentTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
