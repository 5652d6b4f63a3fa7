// Package config loads process configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings shared by the game binaries. A local .env
// file is honored when the binary blank-imports godotenv/autoload.
type Config struct {
	// LogLevel is a logrus level name (trace, debug, info, warn,
	// error).
	LogLevel string `env:"WILDFIRE_LOG_LEVEL" envDefault:"info"`

	// LogFile receives structured logs. When empty the interactive
	// game discards them so the terminal stays clean; headless tools
	// log to stderr.
	LogFile string `env:"WILDFIRE_LOG_FILE" envDefault:""`

	// Seed fixes the game seed. Zero derives one from the clock.
	Seed int64 `env:"WILDFIRE_SEED" envDefault:"0"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
