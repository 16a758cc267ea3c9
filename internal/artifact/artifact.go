// Package artifact loads and wraps the pre-trained prediction artifact served
// by the iris inference service. The artifact is opaque to the serving layer:
// it exposes a label prediction over a fixed four-feature vector, and may
// optionally expose per-class probabilities.
package artifact

import "time"

// FeatureVector is the fixed four-element input to the artifact, in the order
// sepal length, sepal width, petal length, petal width. The order is a
// compatibility contract with the trained artifact and must not be reordered.
type FeatureVector [4]float64

// Predictor is the minimal capability every artifact provides.
type Predictor interface {
	// Predict returns the predicted class label for the given features.
	Predict(features FeatureVector) (string, error)
}

// ProbabilityPredictor is the optional probability capability. Artifacts that
// implement it can supply a confidence score; discovery is by type assertion.
type ProbabilityPredictor interface {
	Predictor

	// PredictProbabilities returns the per-class probability distribution
	// for the given features.
	PredictProbabilities(features FeatureVector) (map[string]float64, error)
}

// Model wraps a loaded predictor together with its load metadata. It is
// immutable after load and safe for concurrent use.
type Model struct {
	predictor Predictor
	modelType string
	path      string
	loadedAt  time.Time
}

// NewModel wraps a predictor in a Model. Load is the normal construction
// path; NewModel exists for in-process predictors and tests.
func NewModel(p Predictor, modelType string) *Model {
	return &Model{predictor: p, modelType: modelType, loadedAt: time.Now()}
}

// Predict returns the predicted class label for the given features.
func (m *Model) Predict(features FeatureVector) (string, error) {
	return m.predictor.Predict(features)
}

// MaxProbability returns the maximum class probability for the given
// features, or false when the artifact has no probability capability or the
// computation fails. It is best-effort: failure downgrades to absence.
func (m *Model) MaxProbability(features FeatureVector) (float64, bool) {
	pp, ok := m.predictor.(ProbabilityPredictor)
	if !ok {
		return 0, false
	}
	probs, err := pp.PredictProbabilities(features)
	if err != nil || len(probs) == 0 {
		return 0, false
	}
	best := 0.0
	for _, p := range probs {
		if p > best {
			best = p
		}
	}
	return best, true
}

// Type returns the artifact type declared in the model file.
func (m *Model) Type() string { return m.modelType }

// Path returns the filesystem path the artifact was loaded from.
func (m *Model) Path() string { return m.path }

// LoadedAt returns the time the artifact finished loading.
func (m *Model) LoadedAt() time.Time { return m.loadedAt }
