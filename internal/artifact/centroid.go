package artifact

import (
	"errors"
	"math"
)

// centroidClass is one labeled class with its feature-space centroid.
type centroidClass struct {
	Label    string
	Centroid FeatureVector
}

// CentroidClassifier predicts the class whose centroid is nearest to the
// input in Euclidean distance. It supports probability output via a softmax
// over negative squared distances.
type CentroidClassifier struct {
	classes []centroidClass
}

// NewCentroidClassifier creates a classifier over the given classes.
func NewCentroidClassifier(classes []centroidClass) (*CentroidClassifier, error) {
	if len(classes) == 0 {
		return nil, errors.New("centroid classifier requires at least one class")
	}
	return &CentroidClassifier{classes: classes}, nil
}

// Predict returns the label of the nearest class centroid.
func (c *CentroidClassifier) Predict(features FeatureVector) (string, error) {
	best := ""
	bestDist := math.Inf(1)
	for _, cls := range c.classes {
		d := squaredDistance(features, cls.Centroid)
		if d < bestDist {
			bestDist = d
			best = cls.Label
		}
	}
	return best, nil
}

// PredictProbabilities returns a softmax distribution over negative squared
// distances to each class centroid. The result sums to 1 and each entry lies
// in [0, 1].
func (c *CentroidClassifier) PredictProbabilities(features FeatureVector) (map[string]float64, error) {
	// Subtract the minimum distance before exponentiating to keep the
	// softmax numerically stable for far-away inputs.
	dists := make([]float64, len(c.classes))
	minDist := math.Inf(1)
	for i, cls := range c.classes {
		dists[i] = squaredDistance(features, cls.Centroid)
		if dists[i] < minDist {
			minDist = dists[i]
		}
	}

	var sum float64
	weights := make([]float64, len(c.classes))
	for i, d := range dists {
		weights[i] = math.Exp(minDist - d)
		sum += weights[i]
	}

	probs := make(map[string]float64, len(c.classes))
	for i, cls := range c.classes {
		probs[cls.Label] = weights[i] / sum
	}
	return probs, nil
}

func squaredDistance(a, b FeatureVector) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
