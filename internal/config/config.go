// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/flight-search/cheapest-fly/internal/infrastructure/timeutil"
)

// Fare sources selectable through FARE_SOURCE.
const (
	SourceRyanair = "ryanair"
	SourceServer  = "server"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Timeouts TimeoutConfig
	Retry    RetryConfig
	Fares    FaresConfig
	Cache    CacheConfig
	Logging  LoggingConfig
	App      AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"15s"`
}

// TimeoutConfig bounds the fare lookup.
type TimeoutConfig struct {
	FareLookup time.Duration `env:"TIMEOUT_FARE_LOOKUP" envDefault:"10s"`
}

// RetryConfig controls repeats of a failed fare lookup.
// The default of one attempt never repeats a possibly metered call.
type RetryConfig struct {
	MaxAttempts  int           `env:"RETRY_MAX_ATTEMPTS" envDefault:"1"`
	InitialDelay time.Duration `env:"RETRY_INITIAL_DELAY" envDefault:"200ms"`
	MaxDelay     time.Duration `env:"RETRY_MAX_DELAY" envDefault:"2s"`
}

// FaresConfig selects and locates the fare lookup backend.
type FaresConfig struct {
	Source         string `env:"FARE_SOURCE" envDefault:"ryanair"`
	RyanairBaseURL string `env:"RYANAIR_BASE_URL" envDefault:"https://services-api.ryanair.com"`
	APIURL         string `env:"FARE_API_URL" envDefault:"http://localhost:8080"`
}

// CacheConfig enables the Redis fare cache when RedisURL is set.
type CacheConfig struct {
	RedisURL string        `env:"REDIS_URL"`
	TTL      time.Duration `env:"CACHE_TTL" envDefault:"15m"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
	File   string `env:"LOG_FILE"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Timezone string `env:"APP_TIMEZONE" envDefault:"Local"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}
	if cfg.Timeouts.FareLookup <= 0 {
		return fmt.Errorf("TIMEOUT_FARE_LOOKUP must be positive")
	}

	// A response cut off by the write deadline would hide the lookup's own timeout.
	if cfg.Timeouts.FareLookup >= cfg.Server.WriteTimeout {
		return fmt.Errorf("TIMEOUT_FARE_LOOKUP (%s) should be less than SERVER_WRITE_TIMEOUT (%s)",
			cfg.Timeouts.FareLookup, cfg.Server.WriteTimeout)
	}

	if cfg.Retry.MaxAttempts < 1 || cfg.Retry.MaxAttempts > 5 {
		return fmt.Errorf("RETRY_MAX_ATTEMPTS must be between 1 and 5, got %d", cfg.Retry.MaxAttempts)
	}
	if cfg.Retry.InitialDelay < 0 || cfg.Retry.MaxDelay < cfg.Retry.InitialDelay {
		return fmt.Errorf("RETRY_MAX_DELAY (%s) must not be less than RETRY_INITIAL_DELAY (%s)",
			cfg.Retry.MaxDelay, cfg.Retry.InitialDelay)
	}

	switch cfg.Fares.Source {
	case SourceRyanair:
		if err := validateURL("RYANAIR_BASE_URL", cfg.Fares.RyanairBaseURL); err != nil {
			return err
		}
	case SourceServer:
		if err := validateURL("FARE_API_URL", cfg.Fares.APIURL); err != nil {
			return err
		}
	default:
		return fmt.Errorf("FARE_SOURCE must be one of: ryanair, server; got %q", cfg.Fares.Source)
	}

	if cfg.Cache.RedisURL != "" && cfg.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive when REDIS_URL is set")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	if _, err := timeutil.GetLocation(cfg.App.Timezone); err != nil {
		return fmt.Errorf("APP_TIMEZONE: %w", err)
	}

	return nil
}

func validateURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s must be an absolute URL, got %q", name, raw)
	}
	return nil
}

// Location returns the timezone used to decide what "today" is.
func (c *Config) Location() *time.Location {
	return timeutil.MustGetLocation(c.App.Timezone)
}

// CacheEnabled reports whether the Redis fare cache is configured.
func (c *Config) CacheEnabled() bool {
	return c.Cache.RedisURL != ""
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
