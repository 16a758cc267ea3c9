package httpserver

// Response types for JSON serialization.

type messageResponse struct {
	Message string `json:"message"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type predictResponse struct {
	PredictedSpecies string   `json:"predicted_species"`
	Confidence       *float64 `json:"confidence,omitempty"`
}

// errorResponse is the uniform error body. TraceID is always present, 32
// lowercase hex characters, all zeros when no trace context was available.
type errorResponse struct {
	Detail  string `json:"detail"`
	TraceID string `json:"trace_id"`
}
