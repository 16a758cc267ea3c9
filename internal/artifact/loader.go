package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FormatV1 is the supported artifact file format identifier.
const FormatV1 = "iris.model/v1"

// Model type identifiers accepted in the artifact file.
const (
	TypeCentroid  = "centroid"
	TypeThreshold = "threshold"
)

// modelFile is the on-disk YAML shape of a model artifact.
type modelFile struct {
	Format  string       `yaml:"format"`
	Type    string       `yaml:"type"`
	Classes []classEntry `yaml:"classes,omitempty"`
	Rules   []ruleEntry  `yaml:"rules,omitempty"`
}

type classEntry struct {
	Label    string    `yaml:"label"`
	Centroid []float64 `yaml:"centroid"`
}

type ruleEntry struct {
	Label          string   `yaml:"label"`
	MaxPetalLength *float64 `yaml:"max_petal_length,omitempty"`
}

// Load reads and validates the model artifact at path. It is called exactly
// once at process startup, before the service admits traffic. Every failure
// is a *LoadError with a closed Kind classification.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		kind := KindCorrupt
		if errors.Is(err, fs.ErrNotExist) {
			kind = KindNotFound
		}
		return nil, &LoadError{Kind: kind, Path: path, Err: err}
	}

	var mf modelFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, &LoadError{Kind: KindCorrupt, Path: path, Err: err}
	}

	// A file that declares no format at all is structurally broken, not a
	// version skew.
	if mf.Format == "" {
		return nil, &LoadError{
			Kind: KindCorrupt,
			Path: path,
			Err:  errors.New("artifact file declares no format"),
		}
	}
	if mf.Format != FormatV1 {
		return nil, &LoadError{
			Kind: KindVersionMismatch,
			Path: path,
			Err:  fmt.Errorf("unsupported format %q, want %q", mf.Format, FormatV1),
		}
	}

	var predictor Predictor
	switch mf.Type {
	case TypeCentroid:
		predictor, err = buildCentroid(mf.Classes)
	case TypeThreshold:
		predictor, err = buildThreshold(mf.Rules)
	default:
		return nil, &LoadError{
			Kind: KindUnsupported,
			Path: path,
			Err:  fmt.Errorf("unknown model type %q", mf.Type),
		}
	}
	if err != nil {
		return nil, &LoadError{Kind: KindCorrupt, Path: path, Err: err}
	}

	return &Model{
		predictor: predictor,
		modelType: mf.Type,
		path:      path,
		loadedAt:  time.Now(),
	}, nil
}

func buildCentroid(entries []classEntry) (Predictor, error) {
	classes := make([]centroidClass, 0, len(entries))
	for _, e := range entries {
		if e.Label == "" {
			return nil, errors.New("class entry missing label")
		}
		if len(e.Centroid) != len(FeatureVector{}) {
			return nil, fmt.Errorf("class %q centroid has %d values, want %d",
				e.Label, len(e.Centroid), len(FeatureVector{}))
		}
		var centroid FeatureVector
		copy(centroid[:], e.Centroid)
		classes = append(classes, centroidClass{Label: e.Label, Centroid: centroid})
	}
	return NewCentroidClassifier(classes)
}

func buildThreshold(entries []ruleEntry) (Predictor, error) {
	rules := make([]thresholdRule, 0, len(entries))
	for _, e := range entries {
		if e.Label == "" {
			return nil, errors.New("rule entry missing label")
		}
		rules = append(rules, thresholdRule{Label: e.Label, MaxPetalLength: e.MaxPetalLength})
	}
	return NewThresholdClassifier(rules)
}
