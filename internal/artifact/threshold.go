package artifact

import "errors"

// thresholdRule maps an upper petal-length bound to a class label. A rule
// without a bound matches any input.
type thresholdRule struct {
	Label          string
	MaxPetalLength *float64
}

// ThresholdClassifier predicts by walking interval rules over petal length in
// order and returning the first match. It has no probability capability.
type ThresholdClassifier struct {
	rules []thresholdRule
}

// NewThresholdClassifier creates a classifier over the given rules. The final
// rule must be unbounded so every input matches something.
func NewThresholdClassifier(rules []thresholdRule) (*ThresholdClassifier, error) {
	if len(rules) == 0 {
		return nil, errors.New("threshold classifier requires at least one rule")
	}
	if rules[len(rules)-1].MaxPetalLength != nil {
		return nil, errors.New("threshold classifier requires an unbounded final rule")
	}
	return &ThresholdClassifier{rules: rules}, nil
}

// Predict returns the label of the first rule whose bound admits the input's
// petal length. Petal length is the third feature in the fixed vector order.
func (c *ThresholdClassifier) Predict(features FeatureVector) (string, error) {
	petalLength := features[2]
	for _, r := range c.rules {
		if r.MaxPetalLength == nil || petalLength < *r.MaxPetalLength {
			return r.Label, nil
		}
	}
	// Unreachable: the final rule is unbounded.
	return "", errors.New("no rule matched input")
}
