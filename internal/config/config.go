package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"krishi-sakhi-backend/internal/content"
	"krishi-sakhi-backend/internal/core"
)

type Config struct {
	// Server
	Port string `envconfig:"PORT" default:"8080"`
	Env  string `envconfig:"ENV" default:"development"`

	// Frontend
	FrontendURL string `envconfig:"FRONTEND_URL" default:"http://localhost:5173"`

	// Redis (optional, enables cross-instance fan-out)
	RedisURL string `envconfig:"REDIS_URL"`

	// Conversation
	DefaultLanguage    string        `envconfig:"DEFAULT_LANGUAGE" default:"hi"`
	ResponseDelay      time.Duration `envconfig:"RESPONSE_DELAY" default:"1s"`
	SessionIdleTimeout time.Duration `envconfig:"SESSION_IDLE_TIMEOUT" default:"30m"`
	SubmitRateLimit    int           `envconfig:"SUBMIT_RATE_LIMIT" default:"30"`

	// Weather
	Weather WeatherConfig
}

type WeatherConfig struct {
	APIURL       string        `envconfig:"WEATHER_API_URL"`
	APIKey       string        `envconfig:"WEATHER_API_KEY"`
	City         string        `envconfig:"WEATHER_CITY" default:"Delhi"`
	PollInterval time.Duration `envconfig:"WEATHER_POLL_INTERVAL" default:"5m"`
}

// Environment returns the parsed deployment environment.
func (c *Config) Environment() core.Environment {
	return core.ParseEnvironment(c.Env)
}

// Language returns the validated default session language.
func (c *Config) Language() content.Language {
	lang, _ := content.ParseLanguage(c.DefaultLanguage)
	return lang
}

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if _, err := content.ParseLanguage(c.DefaultLanguage); err != nil {
		return fmt.Errorf("DEFAULT_LANGUAGE: %w", err)
	}
	if c.ResponseDelay < 0 {
		return fmt.Errorf("RESPONSE_DELAY must not be negative, got %s", c.ResponseDelay)
	}
	if c.SessionIdleTimeout <= 0 {
		return fmt.Errorf("SESSION_IDLE_TIMEOUT must be positive, got %s", c.SessionIdleTimeout)
	}
	if c.Weather.PollInterval <= 0 {
		return fmt.Errorf("WEATHER_POLL_INTERVAL must be positive, got %s", c.Weather.PollInterval)
	}
	if c.SubmitRateLimit <= 0 {
		return fmt.Errorf("SUBMIT_RATE_LIMIT must be positive, got %d", c.SubmitRateLimit)
	}
	return nil
}
