package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gatherFamily gathers the registry and returns the named metric family.
func gatherFamily(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func TestNewMetricsRegistersAll(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetricsWithRegistry("iris", reg)
	require.NotNil(t, m)

	m.RecordModelLoaded(0.5)
	m.RecordPrediction(0.001)
	m.RecordHTTPRequest("/predict", "200")
	m.RecordPanicRecovered()

	for _, name := range []string{
		"iris_model_loaded",
		"iris_model_load_duration_seconds",
		"iris_predictions_total",
		"iris_prediction_duration_seconds",
		"iris_http_requests_total",
		"iris_panics_recovered_total",
	} {
		assert.NotNil(t, gatherFamily(t, reg, name), "missing metric family %s", name)
	}
}

func TestRecordModelLoaded(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetricsWithRegistry("iris", reg)

	m.RecordModelLoaded(0.25)

	mf := gatherFamily(t, reg, "iris_model_loaded")
	require.NotNil(t, mf)
	require.Len(t, mf.GetMetric(), 1)
	assert.Equal(t, 1.0, mf.GetMetric()[0].GetGauge().GetValue())
}

func TestRecordModelLoadFailed(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetricsWithRegistry("iris", reg)

	m.RecordModelLoadFailed(0.1)

	mf := gatherFamily(t, reg, "iris_model_loaded")
	require.NotNil(t, mf)
	assert.Equal(t, 0.0, mf.GetMetric()[0].GetGauge().GetValue())
}

func TestRecordPredictionOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetricsWithRegistry("iris", reg)

	m.RecordPrediction(0.001)
	m.RecordPrediction(0.002)
	m.RecordPredictionFailed(0.003)
	m.RecordPredictionUnavailable()

	mf := gatherFamily(t, reg, "iris_predictions_total")
	require.NotNil(t, mf)

	byStatus := map[string]float64{}
	for _, metric := range mf.GetMetric() {
		for _, lp := range metric.GetLabel() {
			if lp.GetName() == "status" {
				byStatus[lp.GetValue()] = metric.GetCounter().GetValue()
			}
		}
	}

	assert.Equal(t, 2.0, byStatus["success"])
	assert.Equal(t, 1.0, byStatus["failed"])
	assert.Equal(t, 1.0, byStatus["unavailable"])

	hist := gatherFamily(t, reg, "iris_prediction_duration_seconds")
	require.NotNil(t, hist)
	assert.Equal(t, uint64(3), hist.GetMetric()[0].GetHistogram().GetSampleCount())
}

func TestRecordHTTPRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetricsWithRegistry("iris", reg)

	m.RecordHTTPRequest("/predict", "200")
	m.RecordHTTPRequest("/predict", "200")
	m.RecordHTTPRequest("/predict", "503")

	mf := gatherFamily(t, reg, "iris_http_requests_total")
	require.NotNil(t, mf)
	assert.Len(t, mf.GetMetric(), 2)
}
