// Package config loads process settings from MAKE24_* environment
// variables. Command-line flags override them before Validate runs.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Addr        string  `env:"MAKE24_ADDR" envDefault:":8080" validate:"required"`
	Store       string  `env:"MAKE24_STORE" envDefault:"fs" validate:"oneof=fs sqlite memory"`
	DataDir     string  `env:"MAKE24_DATA_DIR" envDefault:"./data" validate:"required"`
	LogLevel    string  `env:"MAKE24_LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	LogFormat   string  `env:"MAKE24_LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
	Solver      string  `env:"MAKE24_SOLVER" envDefault:"exhaustive" validate:"oneof=exhaustive parallel"`
	Workers     int     `env:"MAKE24_WORKERS" envDefault:"0" validate:"gte=0"`
	MaxAttempts int     `env:"MAKE24_MAX_ATTEMPTS" envDefault:"10000" validate:"gte=0"`
	Locale      string  `env:"MAKE24_LOCALE" envDefault:"en-US" validate:"required,bcp47_language_tag"`
	RateLimit   float64 `env:"MAKE24_RATE_LIMIT" envDefault:"20" validate:"gte=0"`
	RateBurst   int     `env:"MAKE24_RATE_BURST" envDefault:"40" validate:"gte=1"`
}

// Load parses the environment into a Config with defaults applied.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints after flags are applied.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
