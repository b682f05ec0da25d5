package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("CATALOG_TIMEOUT", "")
	t.Setenv("PAGE_SIZE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, 12, cfg.Configurator.PageSize)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("CATALOG_BASE_URL", "https://shop.example/api")
	t.Setenv("CATALOG_TIMEOUT", "3")
	t.Setenv("PAGE_SIZE", "24")
	t.Setenv("DEFAULT_NAMING", "UUID")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "https://shop.example/api", cfg.Catalog.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, 24, cfg.Configurator.PageSize)
	assert.Equal(t, "uuid", cfg.Configurator.DefaultNaming)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestGetEnvAsDurationParsesUnits(t *testing.T) {
	t.Setenv("SOME_TIMEOUT", "1500ms")
	assert.Equal(t, 1500*time.Millisecond, getEnvAsDuration("SOME_TIMEOUT", time.Second))

	t.Setenv("SOME_TIMEOUT", "soon")
	assert.Equal(t, time.Second, getEnvAsDuration("SOME_TIMEOUT", time.Second))
}
