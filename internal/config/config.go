package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port     string `validate:"required,numeric"`
	Provider string `validate:"oneof=ergast fixture"`
	Upstream UpstreamConfig
	Cache    CacheConfig
	Warmer   WarmerConfig
	Charts   bool
	Metrics  MetricsConfig
	Log      LogConfig
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present; real
// environment variables win over it.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:     envOrDefault(envPort, defaultPort),
		Provider: strings.ToLower(envOrDefault(envProvider, defaultProvider)),
		Upstream: loadUpstream(),
		Cache:    loadCache(),
		Warmer:   loadWarmer(),
		Charts:   boolEnvOrDefault(envChartsEnabled, false),
		Metrics:  loadMetrics(),
		Log:      loadLog(),
	}
}

var validate = validator.New()

// Validate reports configuration values that would make the server unusable.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
