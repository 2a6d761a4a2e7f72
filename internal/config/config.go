package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all environment-based configuration for journey-sync.
// The ERP server URL saved through `journey server set` takes priority
// over JOURNEY_SERVER_URL; the env var is the pre-provisioned default.
type Config struct {
	// Default ERP server base URL. Optional; a URL saved in the local
	// store overrides it.
	ServerURL string `env:"JOURNEY_SERVER_URL"`

	// Directory holding the local database. Defaults to ~/.journey.
	StateDir string `env:"JOURNEY_STATE_DIR"`

	// Place-search endpoint (Nominatim-compatible).
	PlacesURL string `env:"JOURNEY_PLACES_URL" envDefault:"https://nominatim.openstreetmap.org/search"`

	// Environment controls log format.
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
}

// Load reads configuration from environment variables.
// It first attempts to load a .env file if present, then parses env vars.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	cfg.ServerURL = NormalizeServerURL(cfg.ServerURL)

	if cfg.StateDir != "" {
		absDir, err := filepath.Abs(cfg.StateDir)
		if err != nil {
			return nil, fmt.Errorf("resolving state dir to absolute path: %w", err)
		}

		cfg.StateDir = absDir
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.ServerURL != "" {
		if err := ValidateServerURL(c.ServerURL); err != nil {
			return fmt.Errorf("JOURNEY_SERVER_URL: %w", err)
		}
	}

	if c.PlacesURL != "" {
		if err := ValidateServerURL(c.PlacesURL); err != nil {
			return fmt.Errorf("JOURNEY_PLACES_URL: %w", err)
		}
	}

	return nil
}

// IsProduction returns true when the environment is set to production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// NormalizeServerURL trims whitespace and any trailing slash so
// endpoint paths can be appended directly.
func NormalizeServerURL(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}

// ValidateServerURL checks that a user-supplied URL is http or https
// with a host. Users type these by hand ("http://192.168.1.50:4000"),
// so the message names what is missing.
func ValidateServerURL(raw string) error {
	// Scheme-less forms like "192.168.1.50:4000" fail to parse outright,
	// so a parse error gets the same guidance as a wrong scheme.
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}

	if u.Host == "" {
		return fmt.Errorf("URL is missing a host")
	}

	return nil
}
