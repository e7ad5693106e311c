package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

var (
	ErrNoConfig     = errors.New("config file not found")
	ErrInvalidJSON  = errors.New("invalid config JSON")
	ErrInvalidLimit = errors.New("default_limit must not be negative")
)

// Config holds the user-level hashline-tools configuration.
type Config struct {
	DefaultLimit int   `json:"default_limit"` // read window size when --limit is not given
	TokenStats   *bool `json:"token_stats"`   // report read window and token estimate as with --stats (default: false)
}

// Default returns the built-in configuration used when no config file exists.
func Default() *Config {
	f := false
	return &Config{DefaultLimit: 2000, TokenStats: &f}
}

// Load reads the config from ~/.config/hashline-tools/config.json.
func Load() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(homeDir, ".config", "hashline-tools", "config.json")
	return LoadFrom(configPath)
}

// LoadFrom reads the config from a specific path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoConfig
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, ErrInvalidJSON
	}

	// Set defaults
	if cfg.DefaultLimit < 0 {
		return nil, ErrInvalidLimit
	}
	if cfg.DefaultLimit == 0 {
		cfg.DefaultLimit = 2000
	}
	if cfg.TokenStats == nil {
		f := false
		cfg.TokenStats = &f
	}

	return &cfg, nil
}
