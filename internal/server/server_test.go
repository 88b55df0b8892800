package server

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/heartbeat/internal/config"
	"github.com/deppfellow/heartbeat/internal/heartbeat"
)

func TestNew_SelectsSink(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		sink    string
		wantErr bool
		check   func(t *testing.T, sink heartbeat.Sink)
	}{
		{sink: config.SinkLine, check: func(t *testing.T, sink heartbeat.Sink) {
			assert.IsType(t, &heartbeat.LineSink{}, sink)
		}},
		{sink: "", check: func(t *testing.T, sink heartbeat.Sink) {
			assert.IsType(t, &heartbeat.LineSink{}, sink)
		}},
		{sink: config.SinkLog, check: func(t *testing.T, sink heartbeat.Sink) {
			assert.IsType(t, &heartbeat.LogSink{}, sink)
		}},
		{sink: "kafka", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.sink, func(t *testing.T) {
			cfg := config.Default()
			cfg.Heartbeat.Sink = tt.sink

			s, err := New(cfg, &logger, nil)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			tt.check(t, s.Sink)
			assert.NotNil(t, s.Metrics)
			assert.False(t, s.StartedAt.IsZero())
		})
	}
}

func TestStart_WithoutHTTPServer(t *testing.T) {
	logger := zerolog.Nop()
	s, err := New(config.Default(), &logger, nil)
	require.NoError(t, err)

	assert.Error(t, s.Start())
	assert.NoError(t, s.Shutdown(context.Background()))
}

func TestStartAndShutdown(t *testing.T) {
	logger := zerolog.Nop()
	cfg := config.Default()
	cfg.Server.Port = "0"

	s, err := New(cfg, &logger, nil)
	require.NoError(t, err)
	s.SetupHTTPServer(http.NotFoundHandler())

	done := make(chan error, 1)
	go func() { done <- s.Start() }()

	require.NoError(t, s.Shutdown(context.Background()))

	err = <-done
	assert.True(t, err == nil || errors.Is(err, http.ErrServerClosed), "unexpected error: %v", err)
}
