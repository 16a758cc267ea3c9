package observability

import (
	"context"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// ZeroTraceID is the all-zero fallback identifier used when no trace context
// is available. It keeps log correlation fields well-formed (32 lowercase hex
// characters) even when tracing machinery is absent.
const ZeroTraceID = "00000000000000000000000000000000"

// TracingConfig contains tracer provider configuration options.
type TracingConfig struct {
	// Enabled controls whether spans are exported to a collector.
	Enabled bool

	// Endpoint is the OTLP gRPC collector endpoint (host:port).
	Endpoint string

	// ServiceName is attached to exported spans as the service resource.
	ServiceName string

	// SampleRate is the trace sampling ratio (0.0 to 1.0).
	SampleRate float64
}

// SetupTracing installs a global tracer provider and W3C trace-context
// propagation, and returns a shutdown function that flushes pending spans.
//
// Tracing is best-effort: when export is disabled, the endpoint is
// empty, or the exporter cannot be constructed, the provider still generates
// trace identifiers for every request but ships nothing. Setup never fails.
func SetupTracing(ctx context.Context, cfg TracingConfig, logger zerolog.Logger) func(context.Context) error {
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRate))),
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
		),
	)
	if err != nil {
		logger.Warn().Err(err).Msg("trace resource merge failed, using default resource")
	} else {
		opts = append(opts, sdktrace.WithResource(res))
	}

	if cfg.Enabled && cfg.Endpoint != "" {
		exporter, expErr := otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(cfg.Endpoint),
			otlptracegrpc.WithInsecure(),
		)
		if expErr != nil {
			logger.Warn().Err(expErr).Str("endpoint", cfg.Endpoint).
				Msg("trace exporter unavailable, continuing without span export")
		} else {
			opts = append(opts, sdktrace.WithBatcher(exporter))
			logger.Info().Str("endpoint", cfg.Endpoint).Msg("trace exporter configured")
		}
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp.Shutdown
}

// TraceIDFromContext renders the current 128-bit trace identifier as a
// fixed-width lowercase hexadecimal string. It prefers the live span context,
// then a stored identifier, and finally the all-zero sentinel. It never fails.
func TraceIDFromContext(ctx context.Context) string {
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		return sc.TraceID().String()
	}
	if id := StoredTraceIDFromContext(ctx); id != "" {
		return id
	}
	return ZeroTraceID
}
