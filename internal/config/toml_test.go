package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileIsNotAnError(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if cfg.History.Record != nil || cfg.Stats.Window != nil {
		t.Fatalf("expected zero config for missing file, got %+v", cfg)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[history]\nrecord = false\n\n[stats]\nwindow = 5\nlast = 20\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.History.Record == nil || *cfg.History.Record {
		t.Fatalf("expected record=false, got %+v", cfg.History.Record)
	}
	if cfg.Stats.Window == nil || *cfg.Stats.Window != 5 {
		t.Fatalf("expected window=5, got %+v", cfg.Stats.Window)
	}
	if cfg.Stats.Last == nil || *cfg.Stats.Last != 20 {
		t.Fatalf("expected last=20, got %+v", cfg.Stats.Last)
	}
}

func TestLoadConfigInvalidToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("history = ["), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected decode error for invalid TOML")
	}
}
