// Package observability provides logging, tracing, and metrics support for
// the iris inference service.
//
// # Overview
//
// The observability package provides:
//
//   - Structured logging with zerolog
//   - OpenTelemetry trace-identifier derivation with an all-zero fallback
//   - Prometheus metrics for the model lifecycle and prediction path
//   - Context helpers for propagating observability data
//
// # Logging
//
// Create a logger from configuration:
//
//	cfg := observability.LoggingConfig{
//	    Level:  "info",
//	    Format: "json",
//	    Output: "stdout",
//	}
//
//	logger := observability.NewLogger(cfg)
//	logger.Info().Str("event", "model_loaded").Msg("model loaded")
//
// Bind the trace identifier into a logger so every record correlates with
// the request's distributed trace:
//
//	logger = observability.WithTraceContext(logger, traceID)
//
// # Tracing
//
// Install the global tracer provider at startup:
//
//	shutdown := observability.SetupTracing(ctx, tracingCfg, logger)
//	defer shutdown(context.Background())
//
// Derive the trace identifier anywhere a request context is available:
//
//	traceID := observability.TraceIDFromContext(ctx)
//
// TraceIDFromContext never fails; without a span it falls back to the stored
// identifier and finally to observability.ZeroTraceID. Tracing is best-effort
// and never blocks a request.
//
// # Metrics
//
// Initialize and record metrics:
//
//	metrics := observability.NewMetrics("iris")
//	metrics.RecordPrediction(durationSeconds)
//
// # Standard Fields
//
// Common fields used across the service:
//
//   - event: machine-readable event tag (model_loaded, prediction, ...)
//   - trace_id: distributed trace identifier, 32 lowercase hex characters
//   - request_id: per-request correlation identifier
//   - latency_ms: request or prediction latency in milliseconds
//
// # Thread Safety
//
// All components are safe for concurrent use from multiple goroutines.
package observability
