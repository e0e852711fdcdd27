// Package config loads service configuration from the environment once
// at startup. The resulting Config is immutable and injected into the
// wiring; nothing reads the environment after Load returns.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Translator TranslatorConfig
	Marian     MarianConfig
	Google     GoogleConfig
}

type ServerConfig struct {
	Host string
	Port int
}

// TranslatorConfig selects the translation backend.
// Supported values: "marian" (default), "google".
type TranslatorConfig struct {
	Backend string
}

// MarianConfig holds the model bridge configuration.
type MarianConfig struct {
	URL     string
	Timeout time.Duration
}

// GoogleConfig holds Cloud Translation configuration. Credentials may
// also come from GOOGLE_APPLICATION_CREDENTIALS, so both are optional.
type GoogleConfig struct {
	Credentials string
	ProjectID   string
}

func Load() (*Config, error) {
	v := viper.New()

	defaults := map[string]interface{}{
		"SERVER_HOST":            "0.0.0.0",
		"SERVER_PORT":            8080,
		"TRANSLATOR_BACKEND":     "marian",
		"MARIAN_URL":             "http://localhost:5000",
		"MARIAN_TIMEOUT_SECONDS": 120,
		"GOOGLE_CREDENTIALS":     "",
		"GOOGLE_PROJECT_ID":      "",
	}
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Translator: TranslatorConfig{
			Backend: v.GetString("TRANSLATOR_BACKEND"),
		},
		Marian: MarianConfig{
			URL:     v.GetString("MARIAN_URL"),
			Timeout: time.Duration(v.GetInt("MARIAN_TIMEOUT_SECONDS")) * time.Second,
		},
		Google: GoogleConfig{
			Credentials: v.GetString("GOOGLE_CREDENTIALS"),
			ProjectID:   v.GetString("GOOGLE_PROJECT_ID"),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535")
	}
	switch cfg.Translator.Backend {
	case "marian":
		if cfg.Marian.URL == "" {
			return fmt.Errorf("MARIAN_URL is required")
		}
		if cfg.Marian.Timeout <= 0 {
			return fmt.Errorf("MARIAN_TIMEOUT_SECONDS must be positive")
		}
	case "google":
		// Credentials are resolved by the client library at startup.
	default:
		return fmt.Errorf("unsupported TRANSLATOR_BACKEND: %s", cfg.Translator.Backend)
	}
	return nil
}

// Addr returns the host:port the HTTP server binds to.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
