// Package config handles global Deckhand configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// EnvConfigPath overrides the config file location when set.
const EnvConfigPath = "DECKHAND_CONFIG"

// Config represents the global Deckhand configuration.
type Config struct {
	// Collection is the path to the collection database.
	Collection string `toml:"collection"`

	// NormalizeText controls whether note text is Unicode-normalized when
	// notes are reconciled after a schema change. Defaults to true.
	NormalizeText *bool `toml:"normalize_text"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output. Supported values are
	// ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`
}

// NormalizeTextEnabled returns the normalize setting with its default applied.
func (c *Config) NormalizeTextEnabled() bool {
	return c.NormalizeText == nil || *c.NormalizeText
}

// CollectionPath returns the configured collection path, or the default
// location under the user data directory.
func (c *Config) CollectionPath() string {
	if c.Collection != "" {
		return c.Collection
	}
	return DefaultCollectionPath()
}

// Load loads the configuration from the default location. Returns a default
// config if the file doesn't exist.
func Load() (*Config, error) {
	path := DefaultPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// DefaultPath returns the config file path: the DECKHAND_CONFIG override,
// then ~/.config/deckhand/config.toml (XDG style), then the OS-specific
// config location.
func DefaultPath() string {
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env
	}
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "deckhand", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "deckhand", "config.toml")
	}
	return filepath.Join(".", "config.toml")
}

// DefaultCollectionPath returns the default collection database location.
func DefaultCollectionPath() string {
	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "deckhand", "collection.db")
	}
	return filepath.Join(".", "collection.db")
}
