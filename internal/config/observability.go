package config

import (
	"fmt"
)

// ServiceName identifies this service in logs, metrics and APM.
const ServiceName = "heartbeat"

// ObservabilityConfig groups all configuration related to telemetry and runtime visibility:
//   - logging settings (format, level)
//   - APM/tracing provider settings (New Relic)
//   - Prometheus metrics exposition
type ObservabilityConfig struct {
	// ServiceName is forced to the ServiceName constant by LoadConfig.
	ServiceName string `koanf:"service_name" validate:"required"`

	// Environment is copied from primary.env by LoadConfig.
	Environment string `koanf:"environment" validate:"required"`

	Logging  LoggingConfig  `koanf:"logging" validate:"required"`
	NewRelic NewRelicConfig `koanf:"new_relic"`
	Metrics  MetricsConfig  `koanf:"metrics"`
}

// LoggingConfig holds application logging configuration.
type LoggingConfig struct {
	// Level is the verbosity threshold (debug/info/warn/error).
	Level string `koanf:"level"`

	// Format is "json" or "console". JSON is only used in production;
	// other environments always log to the console writer.
	Format string `koanf:"format" validate:"required"`
}

// NewRelicConfig holds configuration for New Relic APM and tracing.
// An empty LicenseKey disables New Relic entirely.
type NewRelicConfig struct {
	LicenseKey                string `koanf:"license_key"`
	AppLogForwardingEnabled   bool   `koanf:"app_log_forwarding_enabled"`
	DistributedTracingEnabled bool   `koanf:"distributed_tracing_enabled"`

	// DebugLogging enables the agent's own debug output. Off by default
	// to avoid mixed log formats.
	DebugLogging bool `koanf:"debug_logging"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path" validate:"required_if=Enabled true"`
}

// DefaultObservabilityConfig provides a safe set of defaults.
func DefaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{
		ServiceName: ServiceName,
		Environment: "development",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		NewRelic: NewRelicConfig{
			LicenseKey:                "",
			AppLogForwardingEnabled:   true,
			DistributedTracingEnabled: true,
			DebugLogging:              false,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Validate applies custom validation rules that go beyond struct tags.
func (c *ObservabilityConfig) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("service_name is required")
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if level := c.GetLogLevel(); !validLevels[level] {
		return fmt.Errorf("invalid logging level: %s (must be one of: debug, info, warn, error)", level)
	}

	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("invalid logging format: %s (must be one of: json, console)", c.Logging.Format)
	}

	return nil
}

// GetLogLevel returns the effective log level to use at runtime.
//
// An unset level defaults by environment: "info" in production,
// "debug" everywhere else.
func (c *ObservabilityConfig) GetLogLevel() string {
	if c.Logging.Level != "" {
		return c.Logging.Level
	}

	if c.IsProduction() {
		return "info"
	}

	return "debug"
}

// IsProduction reports whether the application is running in production mode.
func (c *ObservabilityConfig) IsProduction() bool {
	return c.Environment == "production"
}

// NewRelicEnabled reports whether a New Relic license key is configured.
func (c *ObservabilityConfig) NewRelicEnabled() bool {
	return c.NewRelic.LicenseKey != ""
}
