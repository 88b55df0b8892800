package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/heartbeat/internal/config"
)

func TestNewLoggerService_WithoutLicense(t *testing.T) {
	svc := NewLoggerService(config.DefaultObservabilityConfig())
	require.NotNil(t, svc)
	assert.Nil(t, svc.GetApplication())

	// Shutdown without an application is a no-op.
	svc.Shutdown()
}

func TestNilLoggerService(t *testing.T) {
	var svc *LoggerService
	assert.Nil(t, svc.GetApplication())
	svc.Shutdown()
}

func TestNewLoggerWithWriter_ProductionJSON(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Environment = "production"
	cfg.Logging.Level = "info"

	var buf bytes.Buffer
	log := NewLoggerWithWriter(cfg, nil, &buf)

	log.Debug().Msg("hidden")
	log.Info().Str("k", "v").Msg("shown")

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "shown", event["message"])
	assert.Equal(t, "v", event["k"])
	assert.Equal(t, config.ServiceName, event["service"])
	assert.Equal(t, "production", event["environment"])
}

func TestNewLoggerWithWriter_ConsoleOutsideProduction(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Logging.Level = "debug"

	var buf bytes.Buffer
	log := NewLoggerWithWriter(cfg, nil, &buf)
	log.Debug().Msg("console line")

	assert.Contains(t, buf.String(), "console line")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
	assert.Equal(t, zerolog.DebugLevel, log.GetLevel())
}

func TestWithTraceContext_NilTransaction(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	log := WithTraceContext(base, nil)
	log.Info().Msg("x")

	assert.NotContains(t, buf.String(), "trace.id")
}
