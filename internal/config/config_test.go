package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 9091, cfg.Server.MetricsPort)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)

	assert.Equal(t, "model-v1.yaml", cfg.Model.Path)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)

	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)

	assert.False(t, cfg.Tracing.Enabled)
	assert.Empty(t, cfg.Tracing.Endpoint)
	assert.Equal(t, "iris-inference-service", cfg.Tracing.ServiceName)
	assert.InDelta(t, 0.1, cfg.Tracing.SampleRate, 1e-9)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("IRIS_SERVER_HTTP_PORT", "9000")
	t.Setenv("IRIS_MODEL_PATH", "/models/iris.yaml")
	t.Setenv("IRIS_LOGGING_LEVEL", "debug")
	t.Setenv("IRIS_TRACING_ENDPOINT", "collector:4317")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.HTTPPort)
	assert.Equal(t, "/models/iris.yaml", cfg.Model.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "collector:4317", cfg.Tracing.Endpoint)
}

func TestHTTPAddress(t *testing.T) {
	c := ServerConfig{Host: "127.0.0.1", HTTPPort: 8080, MetricsPort: 9091}

	assert.Equal(t, "127.0.0.1:8080", c.HTTPAddress())
	assert.Equal(t, "127.0.0.1:9091", c.MetricsAddress())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{
				Host:        "0.0.0.0",
				HTTPPort:    8080,
				MetricsPort: 9091,
			},
			Model:   ModelConfig{Path: "model-v1.yaml"},
			Logging: LoggingConfig{Level: "info"},
			Tracing: TracingConfig{SampleRate: 0.1},
		}
	}

	t.Run("valid config passes", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("invalid HTTP port", func(t *testing.T) {
		cfg := valid()
		cfg.Server.HTTPPort = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("invalid metrics port", func(t *testing.T) {
		cfg := valid()
		cfg.Server.MetricsPort = 70000
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing model path", func(t *testing.T) {
		cfg := valid()
		cfg.Model.Path = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("invalid log level", func(t *testing.T) {
		cfg := valid()
		cfg.Logging.Level = "verbose"
		assert.Error(t, cfg.Validate())
	})

	t.Run("sample rate out of range", func(t *testing.T) {
		cfg := valid()
		cfg.Tracing.SampleRate = 1.5
		assert.Error(t, cfg.Validate())
	})

	t.Run("tracing enabled without endpoint is allowed", func(t *testing.T) {
		cfg := valid()
		cfg.Tracing.Enabled = true
		cfg.Tracing.Endpoint = ""
		assert.NoError(t, cfg.Validate())
	})
}
