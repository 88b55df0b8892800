// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// present), loads them over a set of defaults, and validates the result so
// the service fails fast on bad configuration.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate values so the app fails fast on bad config.
//   - Provide sane defaults for every block, so an empty environment still boots.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it gets loaded into the
	// process env before any env var is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read with the prefix HEARTBEAT_. The prefix is removed, the
	key is lowercased and a double underscore marks nesting:

	  HEARTBEAT_SERVER__PORT            -> server.port
	  HEARTBEAT_OBSERVABILITY__LOGGING__LEVEL -> observability.logging.level

	Single underscores stay inside a key (read_timeout, max_body_bytes).
*/

// EnvPrefix is the prefix shared by every configuration env var.
const EnvPrefix = "HEARTBEAT_"

// Sink names accepted by HeartbeatConfig.Sink.
const (
	SinkLine = "line"
	SinkLog  = "log"
)

// Config is the root configuration object for the application.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Heartbeat     HeartbeatConfig      `koanf:"heartbeat" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"min=1"`
	ShutdownTimeout    int      `koanf:"shutdown_timeout" validate:"min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`
}

// HeartbeatConfig controls the ping endpoint.
type HeartbeatConfig struct {
	// Path is the route the ping handler is mounted on (any method).
	Path string `koanf:"path" validate:"required,startswith=/"`

	// MaxBodyBytes is the largest body that is decoded. Bigger bodies are
	// treated as malformed, never rejected.
	MaxBodyBytes int64 `koanf:"max_body_bytes" validate:"min=1"`

	// Sink selects where heartbeat records go: "line" or "log".
	Sink string `koanf:"sink" validate:"required,oneof=line log"`
}

// Default returns the configuration used when no env var is set.
func Default() *Config {
	return &Config{
		Primary: Primary{
			Env: "development",
		},
		Server: ServerConfig{
			Port:               "8080",
			ReadTimeout:        10,
			WriteTimeout:       10,
			IdleTimeout:        60,
			ShutdownTimeout:    10,
			CORSAllowedOrigins: []string{"*"},
		},
		Heartbeat: HeartbeatConfig{
			Path:         "/api/ping",
			MaxBodyBytes: 64 * 1024,
			Sink:         SinkLine,
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// LoadConfig loads configuration from environment variables over the
// defaults, validates it, and returns the resulting config.
//
// Behavior summary:
//   - Loads env vars with prefix HEARTBEAT_
//   - Converts env keys into koanf keys using "." nesting
//   - Splits comma separated values into lists
//   - Unmarshals over Default()
//   - Validates struct tags, then the observability block
//   - Overrides observability service name + environment
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKeyValue), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := Default()

	// Unmarshal only overwrites keys that are present, so defaults survive.
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name is fixed and the environment always follows primary.env,
	// so telemetry is tagged consistently.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// envKeyValue maps HEARTBEAT_SERVER__CORS_ALLOWED_ORIGINS=a,b to
// ("server.cors_allowed_origins", []string{"a", "b"}).
func envKeyValue(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	key = strings.ReplaceAll(key, "__", ".")

	if !strings.Contains(value, ",") {
		return key, value
	}

	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return key, out
}
