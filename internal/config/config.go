// Package config loads process settings from FRONTLINE_* environment
// variables and builds the zap logger the commands share.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/peterkuimelis/frontline/internal/game"
)

// Config holds settings shared by every command. Command-line flags
// override individual fields after ParseEnv.
type Config struct {
	CatalogPath string        `env:"FRONTLINE_CATALOG"`
	Seed        int64         `env:"FRONTLINE_SEED" envDefault:"0"`
	AIDelay     time.Duration `env:"FRONTLINE_AI_DELAY" envDefault:"0s"`
	MaxTurns    int           `env:"FRONTLINE_MAX_TURNS" envDefault:"200"`
	WebAddr     string        `env:"FRONTLINE_WEB_ADDR" envDefault:":8080"`
	LogLevel    string        `env:"FRONTLINE_LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings no match can run with. Commands call it again
// after applying their flags.
func (c Config) Validate() error {
	if c.MaxTurns < 1 {
		return fmt.Errorf("max turns must be positive, got %d", c.MaxTurns)
	}
	if c.AIDelay < 0 {
		return fmt.Errorf("AI delay must not be negative, got %s", c.AIDelay)
	}
	return nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Catalog loads the configured catalog, or the embedded one when no path
// is set.
func (c Config) Catalog() (*game.Catalog, error) {
	return game.CatalogFromPath(c.CatalogPath)
}

// NewLogger builds a production zap logger at the configured level. Logs go
// to stderr so stdout stays free for the terminal UI and MCP stdio.
func (c Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zc.Build()
}
