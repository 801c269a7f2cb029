package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config is the persistent application configuration
type Config struct {
	// Auth settings for the local identity provider
	Auth AuthConfig `json:"auth"`

	// UI Preferences
	UI UIConfig `json:"ui"`

	// Catalogue settings
	Catalogue CatalogueConfig `json:"catalogue"`
}

// AuthConfig holds identity provider settings
type AuthConfig struct {
	// SessionSecret signs session tokens. Auto-populated from
	// DEALDROP_SESSION_SECRET when unset.
	SessionSecret string `json:"session_secret,omitempty"`

	// SignInPerMinute caps sign-in attempts per account (rate limit).
	SignInPerMinute int `json:"sign_in_per_minute"`
}

// UIConfig holds UI preferences
type UIConfig struct {
	Theme string `json:"theme"`

	// GestureWindowMs and SettlePeriodMs tune the wheel/drag coalescer.
	// Zero means the built-in defaults.
	GestureWindowMs int `json:"gesture_window_ms"`
	SettlePeriodMs  int `json:"settle_period_ms"`
}

// CatalogueConfig holds deal catalogue settings
type CatalogueConfig struct {
	// RefreshMinutes is the background re-select interval.
	RefreshMinutes int `json:"refresh_minutes"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Auth: AuthConfig{
			SignInPerMinute: 5,
		},
		UI: UIConfig{
			Theme: "dark",
		},
		Catalogue: CatalogueConfig{
			RefreshMinutes: 5,
		},
	}
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".dealdrop", "config.json")
}

// Load reads config from disk, or returns defaults
func Load() (*Config, error) {
	path := ConfigPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			cfg.AutoPopulateFromEnv()
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), nil
	}

	cfg.AutoPopulateFromEnv()
	return &cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	path := ConfigPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600) // Restrictive permissions for the session secret
}

// AutoPopulateFromEnv fills in secrets from environment variables
func (c *Config) AutoPopulateFromEnv() {
	if c.Auth.SessionSecret == "" {
		c.Auth.SessionSecret = os.Getenv("DEALDROP_SESSION_SECRET")
	}
	if c.Auth.SignInPerMinute <= 0 {
		c.Auth.SignInPerMinute = 5
	}
	if c.Catalogue.RefreshMinutes <= 0 {
		c.Catalogue.RefreshMinutes = 5
	}
}
