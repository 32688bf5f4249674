package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "fs", cfg.Store)
	assert.Equal(t, "exhaustive", cfg.Solver)
	assert.Equal(t, 10000, cfg.MaxAttempts)
	assert.Equal(t, "en-US", cfg.Locale)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MAKE24_STORE", "sqlite")
	t.Setenv("MAKE24_SOLVER", "parallel")
	t.Setenv("MAKE24_MAX_ATTEMPTS", "50")
	t.Setenv("MAKE24_LOCALE", "zh-CN")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Store)
	assert.Equal(t, "parallel", cfg.Solver)
	assert.Equal(t, 50, cfg.MaxAttempts)
	assert.Equal(t, "zh-CN", cfg.Locale)
	assert.NoError(t, cfg.Validate())
}

func TestLoadError(t *testing.T) {
	t.Setenv("MAKE24_MAX_ATTEMPTS", "lots")
	_, err := Load()
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "parse env:"), err.Error())
}

func TestValidateRejects(t *testing.T) {
	base, err := Load()
	require.NoError(t, err)

	cases := map[string]func(*Config){
		"store":     func(c *Config) { c.Store = "postgres" },
		"solver":    func(c *Config) { c.Solver = "genetic" },
		"log level": func(c *Config) { c.LogLevel = "trace" },
		"attempts":  func(c *Config) { c.MaxAttempts = -1 },
		"burst":     func(c *Config) { c.RateBurst = 0 },
		"locale":    func(c *Config) { c.Locale = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := base
			mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), "invalid config")
		})
	}
}
