// Package config reads service settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings of the calculator service and CLI.
type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`

	// MaxExpressionLength is the longest expression, in bytes, the HTTP
	// endpoints accept.
	MaxExpressionLength int `env:"MAX_EXPRESSION_LENGTH" envDefault:"4096"`
	// MaxBatchSize is the most expressions one batch request may carry.
	MaxBatchSize int `env:"MAX_BATCH_SIZE" envDefault:"100"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	ServiceName    string `env:"OTEL_SERVICE_NAME" envDefault:"expression-calculator"`
	TracesEnabled  bool   `env:"OTEL_TRACES_ENABLED" envDefault:"true"`
	MetricsEnabled bool   `env:"OTEL_METRICS_ENABLED" envDefault:"true"`
	LogsEnabled    bool   `env:"OTEL_LOGS_ENABLED" envDefault:"false"`
}

// Default returns the configuration used when no variables are set.
func Default() Config {
	return Config{
		HTTPAddr:            ":8080",
		ShutdownTimeout:     5 * time.Second,
		MaxExpressionLength: 4096,
		MaxBatchSize:        100,
		LogLevel:            "info",
		LogFormat:           "json",
		ServiceName:         "expression-calculator",
		TracesEnabled:       true,
		MetricsEnabled:      true,
		LogsEnabled:         false,
	}
}

// Load reads .env files (default ".env") into the process environment and
// then builds a Config from it.
func Load(files ...string) (Config, error) {
	if err := loadDotEnv(files...); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, cfg.validate()
}

// FromEnv builds a Config from the given variables only, ignoring the process
// environment.
func FromEnv(environ map[string]string) (Config, error) {
	if environ == nil {
		environ = map[string]string{}
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.MaxExpressionLength <= 0 {
		return fmt.Errorf("MAX_EXPRESSION_LENGTH: must be positive, got %d", c.MaxExpressionLength)
	}
	if c.MaxBatchSize <= 0 {
		return fmt.Errorf("MAX_BATCH_SIZE: must be positive, got %d", c.MaxBatchSize)
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		return fmt.Errorf("LOG_FORMAT: unknown format %q", c.LogFormat)
	}
	return nil
}
