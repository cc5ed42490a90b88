// Package config loads optional engine defaults from a TOML file. Command
// line flags override anything set here; a missing file just yields the
// defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the engine defaults a user can pin in a config file.
type Config struct {
	HashMB     int     `toml:"hash_mb"`
	CoeffPath  string  `toml:"coeff_path"`
	BlendAlpha float64 `toml:"blend_alpha"`
	BookPath   string  `toml:"book_path"`
	Tablebase  bool    `toml:"tablebase"`
	StoreDir   string  `toml:"store_dir"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		HashMB:     64,
		BlendAlpha: 0.35,
	}
}

// DefaultPath returns the per-user config location (~/.meraki/config.toml).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".meraki", "config.toml")
}

// Load reads path over the defaults. A missing file is not an error; a
// malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
