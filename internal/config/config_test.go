package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(map[string]string{
		"HTTP_ADDR":             ":9090",
		"SHUTDOWN_TIMEOUT":      "10s",
		"MAX_EXPRESSION_LENGTH": "64",
		"MAX_BATCH_SIZE":        "3",
		"LOG_LEVEL":             "debug",
		"LOG_FORMAT":            "console",
		"OTEL_SERVICE_NAME":     "calc",
		"OTEL_TRACES_ENABLED":   "false",
		"OTEL_METRICS_ENABLED":  "0",
		"OTEL_LOGS_ENABLED":     "true",
	})
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 64, cfg.MaxExpressionLength)
	assert.Equal(t, 3, cfg.MaxBatchSize)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, "calc", cfg.ServiceName)
	assert.False(t, cfg.TracesEnabled)
	assert.False(t, cfg.MetricsEnabled)
	assert.True(t, cfg.LogsEnabled)
}

func TestFromEnvInvalid(t *testing.T) {
	cases := map[string]map[string]string{
		"duration": {"SHUTDOWN_TIMEOUT": "soon"},
		"int":      {"MAX_EXPRESSION_LENGTH": "many"},
		"zero":     {"MAX_BATCH_SIZE": "0"},
		"negative": {"MAX_EXPRESSION_LENGTH": "-1"},
		"bool":     {"OTEL_LOGS_ENABLED": "maybe"},
		"format":   {"LOG_FORMAT": "xml"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromEnv(env)
			require.Error(t, err)
		})
	}
}

func TestFromEnvIgnoresProcessEnvironment(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":3333")

	cfg, err := FromEnv(map[string]string{"MAX_BATCH_SIZE": "5"})
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 5, cfg.MaxBatchSize)
}

func TestLoadReadsDotEnvWithoutOverriding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("MAX_BATCH_SIZE=7\nHTTP_ADDR=:1111\n"), 0o600))
	t.Setenv("HTTP_ADDR", ":2222")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MaxBatchSize)
	assert.Equal(t, ":2222", cfg.HTTPAddr)

	// godotenv sets variables with os.Setenv; drop it for other tests.
	require.NoError(t, os.Unsetenv("MAX_BATCH_SIZE"))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
}
