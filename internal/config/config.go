package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config aggregates runtime configuration for the auth service.
type Config struct {
	Environment        string        `env:"APP_ENV" envDefault:"development"`
	HTTPPort           int           `env:"PORT" envDefault:"8080"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"info"`
	DataStore          string        `env:"DATA_STORE" envDefault:"memory"`
	DatabaseURL        string        `env:"DATABASE_URL"`
	GoogleClientID     string        `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string        `env:"GOOGLE_CLIENT_SECRET"`
	GoogleCallbackURL  string        `env:"GOOGLE_CALLBACK_URL"`
	JWTSecret          string        `env:"JWT_SECRET"`
	TokenTTL           time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	AllowedOrigins     []string      `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:8080"`
}

// Load reads configuration from environment variables and validates the
// startup preconditions. A missing signing secret, or a postgres store
// without a connection string, must prevent the process from accepting
// traffic at all.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.DataStore = strings.ToLower(strings.TrimSpace(cfg.DataStore))
	cfg.JWTSecret = strings.TrimSpace(cfg.JWTSecret)

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	switch cfg.DataStore {
	case "memory", "postgres":
	default:
		return Config{}, fmt.Errorf("invalid DATA_STORE %q (want memory or postgres)", cfg.DataStore)
	}

	if cfg.DataStore == "postgres" && cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATA_STORE is postgres but DATABASE_URL is not set")
	}

	if !cfg.IsDevelopment() {
		if cfg.GoogleClientID == "" {
			return Config{}, fmt.Errorf("GOOGLE_CLIENT_ID is required outside development")
		}
		if cfg.GoogleClientSecret == "" {
			return Config{}, fmt.Errorf("GOOGLE_CLIENT_SECRET is required outside development")
		}
		if cfg.GoogleCallbackURL == "" {
			return Config{}, fmt.Errorf("GOOGLE_CALLBACK_URL is required outside development")
		}
	}

	return cfg, nil
}

// HTTPAddress returns the address the HTTP server should bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// UseInMemoryStore returns true if the in-memory repository should be used.
func (c Config) UseInMemoryStore() bool {
	return c.DataStore == "memory"
}

// IsDevelopment reports whether the service runs in development mode.
func (c Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}
