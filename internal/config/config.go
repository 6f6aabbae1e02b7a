// Package config loads application configuration from environment
// variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the api and worker binaries need.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	DatabaseURL string `env:"DATABASE_URL" envDefault:"postgres://localhost:5432/dressage_journey?sslmode=disable"`
	RedisAddr   string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	JWTSecret   string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`

	SMTPAddr string `env:"SMTP_ADDR" envDefault:"localhost:1025"`
	SMTPFrom string `env:"SMTP_FROM" envDefault:"no-reply@dressage-journey.local"`

	Anthropic AnthropicConfig `envPrefix:"ANTHROPIC_"`

	// GenCacheDir enables the local generation-reply cache when set.
	GenCacheDir string        `env:"GENCACHE_DIR"`
	GenCacheTTL time.Duration `env:"GENCACHE_TTL" envDefault:"24h"`
}

// AnthropicConfig configures the generation client.
type AnthropicConfig struct {
	APIKey    string `env:"API_KEY"`
	Model     string `env:"MODEL"`
	BaseURL   string `env:"BASE_URL"`
	MaxTokens int    `env:"MAX_TOKENS" envDefault:"4096"`
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ValidateWorker checks the settings the worker cannot run without. The api
// binary can start without an API key; the worker cannot generate plans
// without one.
func (c Config) ValidateWorker() error {
	if c.Anthropic.APIKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY is required")
	}
	return nil
}
