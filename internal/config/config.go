// Package config reads the process configuration from the environment.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/go-hclog"
)

// Packaging modes.
const (
	ModePackaged    = "packaged"
	ModeDevelopment = "development"
)

// Config is the environment-driven configuration.
type Config struct {
	Mode     string `env:"RXDESKTOP_MODE" envDefault:"packaged"`
	Root     string `env:"RXDESKTOP_ROOT"`
	LogLevel string `env:"RXDESKTOP_LOG_LEVEL" envDefault:"info"`
	// Language overrides the OS preferred language.
	Language string `env:"RXDESKTOP_LANG"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Mode = strings.ToLower(strings.TrimSpace(cfg.Mode))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configured values.
func (cfg Config) Validate() error {
	switch cfg.Mode {
	case ModePackaged, ModeDevelopment:
	default:
		return fmt.Errorf("invalid mode %q", cfg.Mode)
	}
	if hclog.LevelFromString(cfg.LogLevel) == hclog.NoLevel {
		return fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}
	return nil
}

// Development reports whether files live in the working directory.
func (cfg Config) Development() bool {
	return cfg.Mode == ModeDevelopment
}

// NewLogger builds the root logger. A nil output writes to stderr.
func NewLogger(cfg Config, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}
	level := hclog.LevelFromString(cfg.LogLevel)
	if level == hclog.NoLevel {
		level = hclog.Info
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "rxdesktop",
		Level:  level,
		Output: output,
	})
}
