// Package server defines the core Server struct that composes the app's main dependencies.
//
// It contains the initialization logic to spin up the HTTP server
// and handles graceful shutdowns.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - the heartbeat sink
//   - Prometheus metrics
//   - http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/deppfellow/heartbeat/internal/config"
	"github.com/deppfellow/heartbeat/internal/heartbeat"
	loggerPkg "github.com/deppfellow/heartbeat/internal/logger"
	"github.com/deppfellow/heartbeat/internal/metrics"
)

// Server is the application container that holds shared resources.
//
// It is not the HTTP server itself. It holds the config, the loggers,
// the heartbeat sink and the metrics, plus the *http.Server used to
// listen and serve requests.
type Server struct {
	Config *config.Config

	// Logger is the application's main structured logger.
	Logger *zerolog.Logger

	// LoggerService optionally holds the New Relic application instance.
	LoggerService *loggerPkg.LoggerService

	// Sink receives one record per heartbeat.
	Sink heartbeat.Sink

	Metrics *metrics.Metrics

	// StartedAt is reported by the status endpoint.
	StartedAt time.Time

	httpServer *http.Server
}

// New constructs a Server and initializes its dependencies.
// The heartbeat sink is chosen by cfg.Heartbeat.Sink.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	sink, err := newSink(cfg.Heartbeat.Sink, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize heartbeat sink: %w", err)
	}

	return &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		Sink:          sink,
		Metrics:       metrics.New(),
		StartedAt:     time.Now(),
	}, nil
}

func newSink(kind string, logger *zerolog.Logger) (heartbeat.Sink, error) {
	switch kind {
	case config.SinkLine, "":
		return heartbeat.NewLineSink(os.Stdout), nil
	case config.SinkLog:
		return heartbeat.NewLogSink(logger.With().Str("component", "heartbeat_sink").Logger()), nil
	default:
		return nil, fmt.Errorf("unknown heartbeat sink %q", kind)
	}
}

// SetupHTTPServer configures the internal net/http server.
// Timeouts in the config are whole seconds.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server. It blocks until the server stops and
// returns http.ErrServerClosed after a graceful Shutdown.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Str("heartbeat_path", s.Config.Heartbeat.Path).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting connections, waits for in-flight requests
// until ctx expires, then flushes New Relic.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	s.LoggerService.Shutdown()

	return nil
}
