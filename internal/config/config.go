// Package config loads and saves the application configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigVersion is written into new config files.
const ConfigVersion = "1"

// Config represents the flat AgriMetrics configuration.
type Config struct {
	Version           string  `json:"version"`
	UserID            string  `json:"user_id,omitempty"`             // empty means anonymous, local-only
	RedisAddr         string  `json:"redis_addr,omitempty"`          // empty means no remote store
	RemoteTimeoutSecs int     `json:"remote_timeout_secs,omitempty"` // per remote call
	ProbeIntervalSecs int     `json:"probe_interval_secs,omitempty"` // connectivity probe loop
	FetchLimit        int     `json:"fetch_limit,omitempty"`         // records per remote load
	LowStockKg        float64 `json:"low_stock_kg,omitempty"`        // feed low-stock threshold
	LogLevel          string  `json:"log_level,omitempty"`           // debug, info, warn, error
}

// DefaultConfig returns a config suitable for a fresh, offline install.
func DefaultConfig() *Config {
	return &Config{
		Version:           ConfigVersion,
		RemoteTimeoutSecs: 15,
		ProbeIntervalSecs: 30,
		FetchLimit:        200,
		LowStockKg:        10,
		LogLevel:          "info",
	}
}

// Path returns the config file location.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".agrimetrics", "config.json"), nil
}

// Load reads the config file. A missing file yields the defaults; any other
// failure is surfaced.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads a config file from an explicit path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the config file, creating the data directory if needed.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveTo(path, cfg)
}

// SaveTo writes a config file to an explicit path.
func SaveTo(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
