package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the iris inference service.
// Metrics cover the model lifecycle, the prediction path, and the HTTP
// surface. All counters and histograms are registered via promauto.
type Metrics struct {
	// ModelLoaded reports whether the model artifact is loaded (1) or not (0).
	ModelLoaded prometheus.Gauge

	// ModelLoadDuration observes the artifact load duration in seconds.
	ModelLoadDuration prometheus.Histogram

	// PredictionsTotal counts prediction attempts, labeled by outcome
	// (success, failed, unavailable).
	PredictionsTotal *prometheus.CounterVec

	// PredictionDuration observes prediction latency in seconds.
	PredictionDuration prometheus.Histogram

	// HTTPRequestsTotal counts HTTP requests, labeled by path and status code.
	HTTPRequestsTotal *prometheus.CounterVec

	// PanicsRecovered counts panics caught by the exception mapper.
	PanicsRecovered prometheus.Counter
}

// NewMetrics creates a new Metrics instance registered with the default
// Prometheus registry. The namespace is used as a prefix for all metric names.
func NewMetrics(namespace string) *Metrics {
	return NewMetricsWithRegistry(namespace, prometheus.DefaultRegisterer)
}

// NewMetricsWithRegistry creates a new Metrics instance registered with the
// given registerer. Tests use this with a fresh registry.
func NewMetricsWithRegistry(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ModelLoaded: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_loaded",
			Help:      "Whether the model artifact is loaded (1) or not (0)",
		}),
		ModelLoadDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "model_load_duration_seconds",
			Help:      "Duration of the model artifact load in seconds",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		}),
		PredictionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Total number of prediction attempts by outcome",
		}, []string{"status"}),
		PredictionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "prediction_duration_seconds",
			Help:      "Duration of predictions in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by path and status code",
		}, []string{"path", "status"}),
		PanicsRecovered: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "panics_recovered_total",
			Help:      "Total number of panics recovered by the exception mapper",
		}),
	}
}

// RecordModelLoaded records a successful artifact load.
func (m *Metrics) RecordModelLoaded(durationSeconds float64) {
	m.ModelLoaded.Set(1)
	m.ModelLoadDuration.Observe(durationSeconds)
}

// RecordModelLoadFailed records a failed artifact load.
func (m *Metrics) RecordModelLoadFailed(durationSeconds float64) {
	m.ModelLoaded.Set(0)
	m.ModelLoadDuration.Observe(durationSeconds)
}

// RecordPrediction records a successful prediction.
func (m *Metrics) RecordPrediction(durationSeconds float64) {
	m.PredictionsTotal.WithLabelValues("success").Inc()
	m.PredictionDuration.Observe(durationSeconds)
}

// RecordPredictionFailed records a prediction that faulted.
func (m *Metrics) RecordPredictionFailed(durationSeconds float64) {
	m.PredictionsTotal.WithLabelValues("failed").Inc()
	m.PredictionDuration.Observe(durationSeconds)
}

// RecordPredictionUnavailable records a prediction rejected because the model
// was not ready.
func (m *Metrics) RecordPredictionUnavailable() {
	m.PredictionsTotal.WithLabelValues("unavailable").Inc()
}

// RecordHTTPRequest records a completed HTTP request.
func (m *Metrics) RecordHTTPRequest(path, status string) {
	m.HTTPRequestsTotal.WithLabelValues(path, status).Inc()
}

// RecordPanicRecovered records a panic caught by the exception mapper.
func (m *Metrics) RecordPanicRecovered() {
	m.PanicsRecovered.Inc()
}
