package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const centroidModelYAML = `format: iris.model/v1
type: centroid
classes:
  - label: setosa
    centroid: [5.006, 3.428, 1.462, 0.246]
  - label: versicolor
    centroid: [5.936, 2.770, 4.260, 1.326]
  - label: virginica
    centroid: [6.588, 2.974, 5.552, 2.026]
`

const thresholdModelYAML = `format: iris.model/v1
type: threshold
rules:
  - label: setosa
    max_petal_length: 2
  - label: versicolor
    max_petal_length: 5
  - label: virginica
`

func writeModelFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model-v1.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadCentroidModel(t *testing.T) {
	path := writeModelFile(t, centroidModelYAML)

	model, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, TypeCentroid, model.Type())
	assert.Equal(t, path, model.Path())
	assert.False(t, model.LoadedAt().IsZero())

	label, err := model.Predict(FeatureVector{5.1, 3.5, 1.4, 0.2})
	require.NoError(t, err)
	assert.Equal(t, "setosa", label)

	confidence, ok := model.MaxProbability(FeatureVector{5.1, 3.5, 1.4, 0.2})
	require.True(t, ok)
	assert.GreaterOrEqual(t, confidence, 0.0)
	assert.LessOrEqual(t, confidence, 1.0)
}

func TestLoadThresholdModel(t *testing.T) {
	path := writeModelFile(t, thresholdModelYAML)

	model, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, TypeThreshold, model.Type())

	label, err := model.Predict(FeatureVector{5.1, 3.5, 1.4, 0.2})
	require.NoError(t, err)
	assert.Equal(t, "setosa", label)

	// The threshold model has no probability capability.
	_, ok := model.MaxProbability(FeatureVector{5.1, 3.5, 1.4, 0.2})
	assert.False(t, ok)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))

	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestLoadCorruptFile(t *testing.T) {
	path := writeModelFile(t, "::: not yaml {{{")

	_, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, KindCorrupt, KindOf(err))
}

func TestLoadMissingFormat(t *testing.T) {
	// Parses as YAML but declares no format: structurally broken, not skewed.
	path := writeModelFile(t, `type: centroid
classes:
  - label: setosa
    centroid: [5.0, 3.4, 1.5, 0.2]
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, KindCorrupt, KindOf(err))
}

func TestLoadVersionMismatch(t *testing.T) {
	path := writeModelFile(t, `format: iris.model/v9
type: centroid
classes:
  - label: setosa
    centroid: [5.0, 3.4, 1.5, 0.2]
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, KindVersionMismatch, KindOf(err))
}

func TestLoadUnsupportedType(t *testing.T) {
	path := writeModelFile(t, `format: iris.model/v1
type: gradient_boosted_trees
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, KindUnsupported, KindOf(err))
}

func TestLoadCorruptCentroid(t *testing.T) {
	t.Run("wrong centroid width", func(t *testing.T) {
		path := writeModelFile(t, `format: iris.model/v1
type: centroid
classes:
  - label: setosa
    centroid: [5.0, 3.4]
`)
		_, err := Load(path)
		require.Error(t, err)
		assert.Equal(t, KindCorrupt, KindOf(err))
	})

	t.Run("no classes", func(t *testing.T) {
		path := writeModelFile(t, `format: iris.model/v1
type: centroid
`)
		_, err := Load(path)
		require.Error(t, err)
		assert.Equal(t, KindCorrupt, KindOf(err))
	})

	t.Run("missing label", func(t *testing.T) {
		path := writeModelFile(t, `format: iris.model/v1
type: centroid
classes:
  - centroid: [5.0, 3.4, 1.5, 0.2]
`)
		_, err := Load(path)
		require.Error(t, err)
		assert.Equal(t, KindCorrupt, KindOf(err))
	})
}

func TestLoadCorruptThreshold(t *testing.T) {
	// A bounded final rule would leave some inputs unmatched.
	path := writeModelFile(t, `format: iris.model/v1
type: threshold
rules:
  - label: setosa
    max_petal_length: 2
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, KindCorrupt, KindOf(err))
}

func TestKindOfNonLoadError(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(os.ErrClosed))
}
