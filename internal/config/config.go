package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// SourceConfig holds one REST backend's endpoint and credentials.
type SourceConfig struct {
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
	PageSize int    `yaml:"page_size"`
}

// LocationConfig is the default search location used when no setting has
// been persisted yet.
type LocationConfig struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Name      string  `yaml:"name"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address of the aggregation API.
	Listen string `yaml:"listen"`

	Ticketmaster SourceConfig `yaml:"ticketmaster"`
	Eventia      SourceConfig `yaml:"eventia"`
	Geocode      SourceConfig `yaml:"geocode"`

	DefaultLocation LocationConfig `yaml:"default_location"`

	// RadiusKm is the search radius used when none is stored in settings.
	RadiusKm int `yaml:"radius_km"`

	// RefreshCron is a cron expression for the server's background refresh.
	RefreshCron string `yaml:"refresh"`
}

func Default() *Config {
	return &Config{
		Listen:      "localhost:9998",
		RadiusKm:    25,
		RefreshCron: "*/15 * * * *",
	}
}

// Load reads the YAML configuration at path, returning defaults when the
// file does not exist. Environment variables override the stored API keys
// so credentials can stay out of the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("unable to read config %s: %w", path, err)
		}
	} else if err = yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	if v := os.Getenv("TICKETMASTER_API_KEY"); v != "" {
		cfg.Ticketmaster.APIKey = v
	}
	if v := os.Getenv("EVENTIA_BASE_URL"); v != "" {
		cfg.Eventia.BaseURL = v
	}
	if v := os.Getenv("GEOCODE_API_KEY"); v != "" {
		cfg.Geocode.APIKey = v
	}
	if cfg.RadiusKm <= 0 {
		cfg.RadiusKm = Default().RadiusKm
	}
	return cfg, nil
}

// Save writes the configuration with owner-only permissions, the file can
// hold API keys.
func Save(cfg *Config, path string) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("unable to serialize config: %w", err)
	}
	return os.WriteFile(path, raw, 0600)
}
