package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const DefaultAuditorModel = "gemini-2.5-flash"

// Settings is the process configuration, read once at startup.
type Settings struct {
	Port               string        `env:"PORT" envDefault:"8080"`
	Environment        string        `env:"GO_ENV" envDefault:"development"`
	CorsAllowedOrigins string        `env:"CORS_ALLOWED_ORIGINS"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"info"`
	GeminiAPIKey       string        `env:"GEMINI_API_KEY"`
	APIKey             string        `env:"API_KEY"`
	AuditorModel       string        `env:"AUDITOR_MODEL" envDefault:"gemini-2.5-flash"`
	AuditorTimeout     time.Duration `env:"AUDITOR_TIMEOUT" envDefault:"60s"`
	PhoneRegion        string        `env:"PHONE_REGION" envDefault:"ID"`
	CatalogPath        string        `env:"CATALOG_PATH"`
}

// IsProduction reports whether GO_ENV is "production".
func (s Settings) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(s.Environment), "production")
}

// AuditorKey prefers GEMINI_API_KEY and falls back to API_KEY.
func (s Settings) AuditorKey() string {
	if k := strings.TrimSpace(s.GeminiAPIKey); k != "" {
		return k
	}
	return strings.TrimSpace(s.APIKey)
}

// LoadSettings reads an optional .env file and then the process environment.
func LoadSettings() (Settings, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}
