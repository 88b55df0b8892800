package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, "/api/ping", cfg.Heartbeat.Path)
	assert.Equal(t, int64(64*1024), cfg.Heartbeat.MaxBodyBytes)
	assert.Equal(t, SinkLine, cfg.Heartbeat.Sink)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "development", cfg.Observability.Environment)
	assert.False(t, cfg.Observability.NewRelicEnabled())
	assert.True(t, cfg.Observability.Metrics.Enabled)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("HEARTBEAT_PRIMARY__ENV", "production")
	t.Setenv("HEARTBEAT_SERVER__PORT", "9090")
	t.Setenv("HEARTBEAT_SERVER__READ_TIMEOUT", "5")
	t.Setenv("HEARTBEAT_SERVER__CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("HEARTBEAT_HEARTBEAT__PATH", "/ping")
	t.Setenv("HEARTBEAT_HEARTBEAT__SINK", "log")
	t.Setenv("HEARTBEAT_OBSERVABILITY__LOGGING__LEVEL", "warn")
	t.Setenv("HEARTBEAT_OBSERVABILITY__METRICS__ENABLED", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Primary.Env)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 5, cfg.Server.ReadTimeout)
	assert.Equal(t, 10, cfg.Server.WriteTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, "/ping", cfg.Heartbeat.Path)
	assert.Equal(t, SinkLog, cfg.Heartbeat.Sink)
	assert.Equal(t, "warn", cfg.Observability.Logging.Level)
	assert.Equal(t, "production", cfg.Observability.Environment)
	assert.True(t, cfg.Observability.IsProduction())
	assert.False(t, cfg.Observability.Metrics.Enabled)
}

func TestLoadConfig_ServiceNameIsFixed(t *testing.T) {
	t.Setenv("HEARTBEAT_OBSERVABILITY__SERVICE_NAME", "something-else")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown sink", key: "HEARTBEAT_HEARTBEAT__SINK", value: "kafka"},
		{name: "relative path", key: "HEARTBEAT_HEARTBEAT__PATH", value: "api/ping"},
		{name: "zero body limit", key: "HEARTBEAT_HEARTBEAT__MAX_BODY_BYTES", value: "0"},
		{name: "bad log level", key: "HEARTBEAT_OBSERVABILITY__LOGGING__LEVEL", value: "verbose"},
		{name: "bad log format", key: "HEARTBEAT_OBSERVABILITY__LOGGING__FORMAT", value: "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestObservabilityConfig_GetLogLevel(t *testing.T) {
	c := DefaultObservabilityConfig()
	c.Logging.Level = ""

	c.Environment = "production"
	assert.Equal(t, "info", c.GetLogLevel())

	c.Environment = "development"
	assert.Equal(t, "debug", c.GetLogLevel())

	c.Logging.Level = "error"
	assert.Equal(t, "error", c.GetLogLevel())
}

func TestEnvKeyValue(t *testing.T) {
	key, value := envKeyValue("HEARTBEAT_SERVER__READ_TIMEOUT", "5")
	assert.Equal(t, "server.read_timeout", key)
	assert.Equal(t, "5", value)

	key, value = envKeyValue("HEARTBEAT_SERVER__CORS_ALLOWED_ORIGINS", "a, ,b")
	assert.Equal(t, "server.cors_allowed_origins", key)
	assert.Equal(t, []string{"a", "b"}, value)
}
