package core

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the storefront client.
// It supports three-layer configuration priority:
//  1. Default values (lowest priority)
//  2. Environment variables (medium priority)
//  3. Functional options (highest priority)
//
// Example usage:
//
//	cfg, err := NewConfig(
//	    WithAPIBaseURL("https://shop.example.com"),
//	    WithPageSize(12),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
type Config struct {
	// API is the backend the gateways talk to.
	API APIConfig `yaml:"api"`

	// Catalog browse defaults and behavior.
	Catalog CatalogConfig `yaml:"catalog"`

	// Session identity persistence.
	Session SessionConfig `yaml:"session"`

	// Cache configuration for the full-catalog lookup read model.
	Cache CacheConfig `yaml:"cache"`

	// Pricing constants.
	Pricing PricingConfig `yaml:"pricing"`

	// Telemetry configuration (optional module).
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Logging configuration.
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig contains the backend endpoint and HTTP client settings.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"STOREFRONT_API_URL" default:"http://localhost:8000"`
	Timeout time.Duration `yaml:"timeout" env:"STOREFRONT_API_TIMEOUT" default:"30s"`
}

// CatalogConfig contains browse-view defaults. StaleFetchGuard enables the
// sequence guard that discards catalog responses older than the newest one
// already applied; when false, overlapping fetches resolve
// last-completed-wins.
type CatalogConfig struct {
	PageSize        int  `yaml:"page_size" env:"STOREFRONT_PAGE_SIZE" default:"10"`
	StaleFetchGuard bool `yaml:"stale_fetch_guard" env:"STOREFRONT_STALE_FETCH_GUARD" default:"false"`
}

// SessionConfig controls where the client-generated session identifier lives.
// Provider is "inmemory" or "redis".
type SessionConfig struct {
	Provider string `yaml:"provider" env:"STOREFRONT_SESSION_PROVIDER" default:"inmemory"`
	RedisURL string `yaml:"redis_url" env:"STOREFRONT_REDIS_URL,REDIS_URL"`
	Key      string `yaml:"key" env:"STOREFRONT_SESSION_KEY" default:"session_id"`
}

// CacheConfig controls the full-catalog snapshot cache. Its TTL is
// deliberately independent from browse-page freshness.
type CacheConfig struct {
	Provider string        `yaml:"provider" env:"STOREFRONT_CACHE_PROVIDER" default:"inmemory"`
	RedisURL string        `yaml:"redis_url" env:"STOREFRONT_REDIS_URL,REDIS_URL"`
	TTL      time.Duration `yaml:"ttl" env:"STOREFRONT_CACHE_TTL" default:"5m"`
}

// PricingConfig contains pricing constants.
type PricingConfig struct {
	TaxRate float64 `yaml:"tax_rate" env:"STOREFRONT_TAX_RATE" default:"0.10"`
}

// TelemetryConfig contains observability configuration for metrics and tracing.
// This is an optional module - telemetry is only initialized when Enabled=true.
type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled" env:"STOREFRONT_TELEMETRY_ENABLED" default:"false"`
	Endpoint    string `yaml:"endpoint" env:"STOREFRONT_TELEMETRY_ENDPOINT,OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName string `yaml:"service_name" env:"OTEL_SERVICE_NAME" default:"storefront"`
}

// LoggingConfig contains logging configuration.
// In Kubernetes environments, JSON format is used for log aggregation.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"STOREFRONT_LOG_LEVEL" default:"info"`
	Format string `yaml:"format" env:"STOREFRONT_LOG_FORMAT"`
}

// Option is a functional option for configuring the client.
// Options are applied in order and can return an error if the configuration is invalid.
type Option func(*Config) error

// DefaultConfig returns a configuration with sensible defaults, adjusted for
// the detected environment (Kubernetes vs local).
func DefaultConfig() *Config {
	cfg := &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8000",
			Timeout: 30 * time.Second,
		},
		Catalog: CatalogConfig{
			PageSize:        10,
			StaleFetchGuard: false,
		},
		Session: SessionConfig{
			Provider: "inmemory",
			Key:      "session_id",
		},
		Cache: CacheConfig{
			Provider: "inmemory",
			TTL:      5 * time.Minute,
		},
		Pricing: PricingConfig{
			TaxRate: 0.10,
		},
		Telemetry: TelemetryConfig{
			Enabled:     false,
			ServiceName: "storefront",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}

	cfg.detectEnvironment()

	return cfg
}

// detectEnvironment adjusts defaults based on the runtime environment.
// Kubernetes is detected via KUBERNETES_SERVICE_HOST.
func (c *Config) detectEnvironment() {
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		c.Logging.Format = "json"
		c.Session.Provider = "redis"
		c.Cache.Provider = "redis"
		if c.Session.RedisURL == "" {
			c.Session.RedisURL = "redis://redis.default.svc.cluster.local:6379"
			c.Cache.RedisURL = c.Session.RedisURL
		}
	} else {
		c.Logging.Format = "text"
	}
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables take precedence over defaults but are overridden by
// functional options.
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("STOREFRONT_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("STOREFRONT_API_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.API.Timeout = d
		}
	}
	if v := os.Getenv("STOREFRONT_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Catalog.PageSize = n
		}
	}
	if v := os.Getenv("STOREFRONT_STALE_FETCH_GUARD"); v != "" {
		c.Catalog.StaleFetchGuard = parseBool(v)
	}
	if v := os.Getenv("STOREFRONT_SESSION_PROVIDER"); v != "" {
		c.Session.Provider = v
	}
	if v := os.Getenv("STOREFRONT_SESSION_KEY"); v != "" {
		c.Session.Key = v
	}
	if v := os.Getenv("STOREFRONT_CACHE_PROVIDER"); v != "" {
		c.Cache.Provider = v
	}
	if v := os.Getenv("STOREFRONT_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Cache.TTL = d
		}
	}
	if v := os.Getenv("STOREFRONT_TAX_RATE"); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil && rate >= 0 {
			c.Pricing.TaxRate = rate
		}
	}
	if v := os.Getenv("STOREFRONT_TELEMETRY_ENABLED"); v != "" {
		c.Telemetry.Enabled = parseBool(v)
	}
	if v := firstEnv("STOREFRONT_TELEMETRY_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		c.Telemetry.Endpoint = v
	}
	if v := os.Getenv("OTEL_SERVICE_NAME"); v != "" {
		c.Telemetry.ServiceName = v
	}
	if v := os.Getenv("STOREFRONT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("STOREFRONT_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := firstEnv("STOREFRONT_REDIS_URL", "REDIS_URL"); v != "" {
		c.Session.RedisURL = v
		c.Cache.RedisURL = v
	}
	return nil
}

// LoadConfigFile reads a YAML configuration file over the current values.
// File values sit between environment variables and functional options only
// when loaded explicitly via WithConfigFile.
func (c *Config) LoadConfigFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, ErrInvalidConfiguration)
	}
	return nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api base URL is required: %w", ErrInvalidConfiguration)
	}
	if c.Catalog.PageSize <= 0 {
		return fmt.Errorf("page size must be positive: %w", ErrInvalidConfiguration)
	}
	if c.Pricing.TaxRate < 0 {
		return fmt.Errorf("tax rate must be non-negative: %w", ErrInvalidConfiguration)
	}
	if c.Session.Provider == "redis" && c.Session.RedisURL == "" {
		return fmt.Errorf("redis session provider requires a redis URL: %w", ErrInvalidConfiguration)
	}
	if c.Cache.Provider == "redis" && c.Cache.RedisURL == "" {
		return fmt.Errorf("redis cache provider requires a redis URL: %w", ErrInvalidConfiguration)
	}
	return nil
}

// NewConfig creates a configuration with the standard priority layering:
// defaults, then environment, then the supplied options.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := DefaultConfig()

	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithAPIBaseURL sets the backend base URL.
func WithAPIBaseURL(url string) Option {
	return func(c *Config) error {
		if url == "" {
			return fmt.Errorf("base URL cannot be empty: %w", ErrInvalidConfiguration)
		}
		c.API.BaseURL = strings.TrimSuffix(url, "/")
		return nil
	}
}

// WithTimeout sets the HTTP client timeout for all gateways.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		if timeout <= 0 {
			return fmt.Errorf("timeout must be positive: %w", ErrInvalidConfiguration)
		}
		c.API.Timeout = timeout
		return nil
	}
}

// WithPageSize sets the default catalog page size.
func WithPageSize(size int) Option {
	return func(c *Config) error {
		if size <= 0 {
			return fmt.Errorf("page size must be positive: %w", ErrInvalidConfiguration)
		}
		c.Catalog.PageSize = size
		return nil
	}
}

// WithStaleFetchGuard toggles discarding of out-of-order catalog responses.
func WithStaleFetchGuard(enabled bool) Option {
	return func(c *Config) error {
		c.Catalog.StaleFetchGuard = enabled
		return nil
	}
}

// WithRedisURL points both session persistence and the catalog cache at Redis.
func WithRedisURL(url string) Option {
	return func(c *Config) error {
		if url == "" {
			return fmt.Errorf("redis URL cannot be empty: %w", ErrInvalidConfiguration)
		}
		c.Session.Provider = "redis"
		c.Session.RedisURL = url
		c.Cache.Provider = "redis"
		c.Cache.RedisURL = url
		return nil
	}
}

// WithTaxRate overrides the fixed order tax rate.
func WithTaxRate(rate float64) Option {
	return func(c *Config) error {
		if rate < 0 {
			return fmt.Errorf("tax rate must be non-negative: %w", ErrInvalidConfiguration)
		}
		c.Pricing.TaxRate = rate
		return nil
	}
}

// WithTelemetry enables OTLP telemetry export to the given endpoint.
func WithTelemetry(endpoint string) Option {
	return func(c *Config) error {
		c.Telemetry.Enabled = true
		c.Telemetry.Endpoint = endpoint
		return nil
	}
}

// WithConfigFile layers a YAML file over defaults and environment.
func WithConfigFile(path string) Option {
	return func(c *Config) error {
		return c.LoadConfigFile(path)
	}
}

func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}

func firstEnv(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}
