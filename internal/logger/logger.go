// Package logger configures the application's logging,
// monitoring, and observability.
//
// It uses *ZeroLog* for logging and integrates with
// *New Relic* to instrument the codebase, forwarding logs,
// metrics, and traces for debugging.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/newrelic/go-agent/v3/integrations/logcontext-v2/zerologWriter"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/deppfellow/heartbeat/internal/config"
)

// timeFormat is used by the console writer.
const timeFormat = "2006-01-02 15:04:05"

// LoggerService owns the optional New Relic application.
// A nil application means New Relic is disabled.
type LoggerService struct {
	nrApp *newrelic.Application
}

// NewLoggerService creates the New Relic application when a license key
// is configured. Startup never fails because of New Relic: on error the
// service just runs without it.
func NewLoggerService(cfg *config.ObservabilityConfig) *LoggerService {
	service := &LoggerService{}

	if !cfg.NewRelicEnabled() {
		fmt.Fprintln(os.Stderr, "New Relic license key not provided, skipping initialization")
		return service
	}

	configOptions := []newrelic.ConfigOption{
		newrelic.ConfigAppName(cfg.ServiceName),
		newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
		newrelic.ConfigAppLogForwardingEnabled(cfg.NewRelic.AppLogForwardingEnabled),
		newrelic.ConfigDistributedTracerEnabled(cfg.NewRelic.DistributedTracingEnabled),
	}

	if cfg.NewRelic.DebugLogging {
		configOptions = append(configOptions, newrelic.ConfigDebugLogger(os.Stderr))
	}

	app, err := newrelic.NewApplication(configOptions...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize New Relic: %v\n", err)
		return service
	}

	service.nrApp = app
	return service
}

// GetApplication returns the New Relic application, or nil.
func (ls *LoggerService) GetApplication() *newrelic.Application {
	if ls == nil {
		return nil
	}
	return ls.nrApp
}

// Shutdown flushes pending New Relic data.
func (ls *LoggerService) Shutdown() {
	if ls != nil && ls.nrApp != nil {
		ls.nrApp.Shutdown(10 * time.Second)
	}
}

// NewLogger builds the application logger writing to stdout.
func NewLogger(cfg *config.ObservabilityConfig, loggerService *LoggerService) zerolog.Logger {
	return NewLoggerWithWriter(cfg, loggerService, os.Stdout)
}

// NewLoggerWithWriter builds the application logger.
//
// Production with the json format writes JSON lines to out (through the
// New Relic log forwarder when available). Everything else uses the
// human friendly console writer.
func NewLoggerWithWriter(cfg *config.ObservabilityConfig, loggerService *LoggerService, out io.Writer) zerolog.Logger {
	logLevel, err := zerolog.ParseLevel(cfg.GetLogLevel())
	if err != nil || logLevel == zerolog.NoLevel {
		logLevel = zerolog.InfoLevel
	}

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	var writer io.Writer
	if cfg.IsProduction() && cfg.Logging.Format == "json" {
		writer = out
		if app := loggerService.GetApplication(); app != nil {
			writer = zerologWriter.New(out, app)
		}
	} else {
		writer = zerolog.ConsoleWriter{Out: out, TimeFormat: timeFormat}
	}

	logger := zerolog.New(writer).
		Level(logLevel).
		With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Logger()

	// Stack traces are noisy; keep them out of production logs.
	if !cfg.IsProduction() {
		logger = logger.With().Stack().Logger()
	}

	return logger
}

// WithTraceContext adds trace.id and span.id from a New Relic transaction.
func WithTraceContext(logger zerolog.Logger, txn *newrelic.Transaction) zerolog.Logger {
	if txn == nil {
		return logger
	}

	metadata := txn.GetTraceMetadata()

	return logger.With().
		Str("trace.id", metadata.TraceID).
		Str("span.id", metadata.SpanID).
		Logger()
}
