package config

import (
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFile(t *testing.T) {
	if _, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deckhand", "config.toml")
	off := false
	cfg := &Config{
		Collection:    "/tmp/col.db",
		NormalizeText: &off,
		UI:            UIConfig{Accent: "#A78BFA"},
	}
	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Collection != cfg.Collection {
		t.Errorf("collection mismatch: %q", loaded.Collection)
	}
	if loaded.NormalizeTextEnabled() {
		t.Error("normalize_text=false not persisted")
	}
	if loaded.UI.Accent != "#A78BFA" {
		t.Errorf("accent mismatch: %q", loaded.UI.Accent)
	}
}

func TestNormalizeTextDefaultsTrue(t *testing.T) {
	cfg := &Config{}
	if !cfg.NormalizeTextEnabled() {
		t.Error("expected normalize_text to default to true")
	}
}

func TestDefaultPathEnvOverride(t *testing.T) {
	t.Setenv(EnvConfigPath, "/custom/config.toml")
	if got := DefaultPath(); got != "/custom/config.toml" {
		t.Errorf("env override ignored: %q", got)
	}
}

func TestCollectionPathFallback(t *testing.T) {
	cfg := &Config{}
	if cfg.CollectionPath() == "" {
		t.Error("expected a default collection path")
	}
	cfg.Collection = "/explicit.db"
	if got := cfg.CollectionPath(); got != "/explicit.db" {
		t.Errorf("explicit path ignored: %q", got)
	}
}
