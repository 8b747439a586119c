package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 10, cfg.Catalog.PageSize)
	assert.False(t, cfg.Catalog.StaleFetchGuard)
	assert.Equal(t, "inmemory", cfg.Session.Provider)
	assert.Equal(t, "session_id", cfg.Session.Key)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 0.10, cfg.Pricing.TaxRate)
	assert.False(t, cfg.Telemetry.Enabled)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STOREFRONT_API_URL", "https://shop.example.com")
	t.Setenv("STOREFRONT_API_TIMEOUT", "10s")
	t.Setenv("STOREFRONT_PAGE_SIZE", "25")
	t.Setenv("STOREFRONT_STALE_FETCH_GUARD", "true")
	t.Setenv("STOREFRONT_TAX_RATE", "0.2")
	t.Setenv("REDIS_URL", "redis://localhost:6379")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, "https://shop.example.com", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 25, cfg.Catalog.PageSize)
	assert.True(t, cfg.Catalog.StaleFetchGuard)
	assert.Equal(t, 0.2, cfg.Pricing.TaxRate)
	assert.Equal(t, "redis://localhost:6379", cfg.Session.RedisURL)
	assert.Equal(t, "redis://localhost:6379", cfg.Cache.RedisURL)
}

func TestLoadFromEnvIgnoresInvalidValues(t *testing.T) {
	t.Setenv("STOREFRONT_API_TIMEOUT", "not-a-duration")
	t.Setenv("STOREFRONT_PAGE_SIZE", "-3")
	t.Setenv("STOREFRONT_TAX_RATE", "-1")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 10, cfg.Catalog.PageSize)
	assert.Equal(t, 0.10, cfg.Pricing.TaxRate)
}

func TestLoadFromEnvRedisURLOverridesClusterDefault(t *testing.T) {
	t.Setenv("KUBERNETES_SERVICE_HOST", "10.0.0.1")
	t.Setenv("STOREFRONT_REDIS_URL", "redis://user-redis:6379")

	// detectEnvironment pre-fills the in-cluster default; the env var must
	// still win over it.
	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, "redis://user-redis:6379", cfg.Session.RedisURL)
	assert.Equal(t, "redis://user-redis:6379", cfg.Cache.RedisURL)
	assert.Equal(t, "redis", cfg.Session.Provider)
}

func TestNewConfigOptionsOverrideEnv(t *testing.T) {
	t.Setenv("STOREFRONT_API_URL", "https://env.example.com")
	t.Setenv("STOREFRONT_PAGE_SIZE", "25")

	cfg, err := NewConfig(
		WithAPIBaseURL("https://option.example.com/"),
		WithPageSize(12),
	)
	require.NoError(t, err)

	assert.Equal(t, "https://option.example.com", cfg.API.BaseURL, "options win and trailing slash is trimmed")
	assert.Equal(t, 12, cfg.Catalog.PageSize)
}

func TestNewConfigRejectsInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{name: "empty base URL", opt: WithAPIBaseURL("")},
		{name: "zero timeout", opt: WithTimeout(0)},
		{name: "zero page size", opt: WithPageSize(0)},
		{name: "negative tax rate", opt: WithTaxRate(-0.1)},
		{name: "empty redis URL", opt: WithRedisURL("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConfig(tt.opt)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}
}

func TestWithRedisURLSwitchesProviders(t *testing.T) {
	cfg, err := NewConfig(WithRedisURL("redis://cache:6379"))
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.Session.Provider)
	assert.Equal(t, "redis", cfg.Cache.Provider)
	assert.Equal(t, "redis://cache:6379", cfg.Session.RedisURL)
	assert.Equal(t, "redis://cache:6379", cfg.Cache.RedisURL)
}

func TestWithTelemetry(t *testing.T) {
	cfg, err := NewConfig(WithTelemetry("otel-collector:4317"))
	require.NoError(t, err)

	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "otel-collector:4317", cfg.Telemetry.Endpoint)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
api:
  base_url: https://file.example.com
  timeout: 15s
catalog:
  page_size: 8
  stale_fetch_guard: true
pricing:
  tax_rate: 0.25
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := NewConfig(WithConfigFile(path))
	require.NoError(t, err)

	assert.Equal(t, "https://file.example.com", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, 8, cfg.Catalog.PageSize)
	assert.True(t, cfg.Catalog.StaleFetchGuard)
	assert.Equal(t, 0.25, cfg.Pricing.TaxRate)
}

func TestLoadConfigFileMissing(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "missing base URL", mutate: func(c *Config) { c.API.BaseURL = "" }},
		{name: "non-positive page size", mutate: func(c *Config) { c.Catalog.PageSize = 0 }},
		{name: "negative tax rate", mutate: func(c *Config) { c.Pricing.TaxRate = -0.1 }},
		{name: "redis session without URL", mutate: func(c *Config) { c.Session.Provider = "redis"; c.Session.RedisURL = "" }},
		{name: "redis cache without URL", mutate: func(c *Config) { c.Cache.Provider = "redis"; c.Cache.RedisURL = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}
}
