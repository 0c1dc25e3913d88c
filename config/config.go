// Package config loads the user configuration from ~/.wayfarer/config.yaml.
// Every field has a sensible default; a missing file is not an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the user-facing configuration.
type Config struct {
	// SaveDir is where save slots and the slot index live.
	SaveDir string `yaml:"save_dir"`
	// Passphrase encrypts save files when set. An empty passphrase stores
	// saves unencrypted.
	Passphrase string `yaml:"passphrase"`
	// DefaultSlot is the slot used by /save and /load without an argument.
	DefaultSlot string `yaml:"default_slot"`
	// Plain disables the TUI and runs the line-oriented interface.
	Plain bool `yaml:"plain"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		SaveDir:     filepath.Join(home, ".wayfarer", "saves"),
		DefaultSlot: "quicksave",
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".wayfarer", "config.yaml")
}

// Load reads the config file at path, layering it over the defaults. A
// missing file yields the defaults; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.DefaultSlot == "" {
		cfg.DefaultSlot = "quicksave"
	}
	return cfg, nil
}
