package httpserver

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/irisml/iris-inference-service/internal/artifact"
	"github.com/irisml/iris-inference-service/internal/observability"
)

// maxRequestBodySize bounds the /predict request body.
const maxRequestBodySize = 1 << 20 // 1 MB

// predictRequest is the JSON request body for a prediction. Pointer fields
// distinguish an absent value from a legitimate zero; all four features are
// required and must be numeric.
type predictRequest struct {
	SepalLength *float64 `json:"sepal_length" validate:"required"`
	SepalWidth  *float64 `json:"sepal_width" validate:"required"`
	PetalLength *float64 `json:"petal_length" validate:"required"`
	PetalWidth  *float64 `json:"petal_width" validate:"required"`
}

// homeHandler handles GET /.
func (s *Server) homeHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "IRIS Model API is running!"})
}

// livenessHandler handles GET /live_check. It succeeds while the process is
// free of fatal faults; orchestration layers must not use it to gate traffic.
func (s *Server) livenessHandler(w http.ResponseWriter, r *http.Request) {
	if !s.state.Alive() {
		writeError(w, r, http.StatusInternalServerError, "Service is not alive")
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "alive"})
}

// readinessHandler handles GET /ready_check. It succeeds only once the model
// artifact is loaded; this is the probe that gates traffic routing.
func (s *Server) readinessHandler(w http.ResponseWriter, r *http.Request) {
	if !s.state.Ready() {
		writeError(w, r, http.StatusServiceUnavailable, "Model not ready")
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "ready"})
}

// predictHandler handles POST /predict. Readiness is checked before the
// artifact is touched: an unready service must never serve predictions.
func (s *Server) predictHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	traceID := observability.TraceIDFromContext(ctx)
	logger := observability.WithTraceContext(s.logger, traceID)
	logger = observability.WithRequestContext(logger,
		observability.RequestIDFromContext(ctx), r.Method, r.URL.Path)

	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "failed to read request body")
		return
	}

	var req predictRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON request body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		writeError(w, r, http.StatusBadRequest,
			"sepal_length, sepal_width, petal_length and petal_width are required numbers")
		return
	}

	model, ok := s.state.Model()
	if !ok {
		s.metrics.RecordPredictionUnavailable()
		writeError(w, r, http.StatusServiceUnavailable, "Model not ready")
		return
	}

	start := time.Now()

	// Fixed feature order: compatibility contract with the trained artifact.
	features := artifact.FeatureVector{
		*req.SepalLength,
		*req.SepalWidth,
		*req.PetalLength,
		*req.PetalWidth,
	}

	label, err := model.Predict(features)
	if err != nil {
		elapsed := time.Since(start)
		s.metrics.RecordPredictionFailed(elapsed.Seconds())
		logger.Error().
			Str("event", "prediction_error").
			Err(err).
			Float64("latency_ms", roundMs(elapsed)).
			Msg("prediction failed")
		writeError(w, r, http.StatusInternalServerError, "Prediction failed")
		return
	}

	// Confidence is best-effort: absent when the artifact has no
	// probability capability or the computation fails.
	confidence, hasConfidence := model.MaxProbability(features)

	elapsed := time.Since(start)
	s.metrics.RecordPrediction(elapsed.Seconds())

	evt := logger.Info().
		Str("event", "prediction").
		Float64("sepal_length", *req.SepalLength).
		Float64("sepal_width", *req.SepalWidth).
		Float64("petal_length", *req.PetalLength).
		Float64("petal_width", *req.PetalWidth).
		Str("predicted", label)
	if hasConfidence {
		evt = evt.Float64("confidence", confidence)
	}
	evt.Float64("latency_ms", roundMs(elapsed)).
		Str("status", "success").
		Msg("prediction")

	resp := predictResponse{PredictedSpecies: label}
	if hasConfidence {
		resp.Confidence = &confidence
	}
	writeJSON(w, http.StatusOK, resp)
}

// roundMs converts a duration to milliseconds with two-decimal precision.
func roundMs(d time.Duration) float64 {
	return math.Round(float64(d.Microseconds())/1000.0*100) / 100
}
