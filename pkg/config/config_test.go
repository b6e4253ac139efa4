package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.UI.Theme != "system" {
		t.Errorf("expected default theme 'system', got %q", cfg.UI.Theme)
	}
	if cfg.UI.DefaultTab != "all" {
		t.Errorf("expected default tab 'all', got %q", cfg.UI.DefaultTab)
	}
	if cfg.UI.RecentLimit != 20 {
		t.Errorf("expected recent limit 20, got %d", cfg.UI.RecentLimit)
	}
	if cfg.Session.Remember {
		t.Error("remember should default to false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFrom_NonExistent(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg.UI.Theme != "system" {
		t.Errorf("expected default config, got theme %q", cfg.UI.Theme)
	}
}

func TestLoadFrom_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
ui:
  theme: dark
  default_tab: recent
  recent_limit: 5

seeds:
  - ~/trees/work.yaml
  - /absolute/home.json

session:
  remember: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.UI.Theme != "dark" || cfg.UI.DefaultTab != "recent" || cfg.UI.RecentLimit != 5 {
		t.Errorf("unexpected ui config %+v", cfg.UI)
	}
	// Unset keys keep their defaults
	if cfg.UI.DateFormat != DefaultConfig().UI.DateFormat {
		t.Errorf("expected default date format, got %q", cfg.UI.DateFormat)
	}
	if !cfg.Session.Remember {
		t.Error("expected session.remember true")
	}

	if len(cfg.Seeds) != 2 {
		t.Fatalf("expected 2 seeds, got %d", len(cfg.Seeds))
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, "trees/work.yaml"); cfg.Seeds[0] != want {
		t.Errorf("expected expanded path %q, got %q", want, cfg.Seeds[0])
	}
	if cfg.Seeds[1] != "/absolute/home.json" {
		t.Errorf("expected absolute path preserved, got %q", cfg.Seeds[1])
	}
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(path, []byte("{{invalid yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
	if cfg.UI.Theme != "system" {
		t.Error("expected defaults alongside the error")
	}
}

func TestLoadFrom_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"theme", "ui:\n  theme: neon\n"},
		{"tab", "ui:\n  default_tab: trash\n"},
		{"limit", "ui:\n  recent_limit: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadFrom(path)
			if !errors.Is(err, ErrInvalidValue) {
				t.Errorf("expected ErrInvalidValue, got %v", err)
			}
		})
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.yaml")

	cfg := DefaultConfig()
	cfg.UI.Theme = "light"
	cfg.Seeds = []string{"/tmp/tree.yaml"}
	cfg.Session.Remember = true

	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.UI != cfg.UI {
		t.Errorf("ui mismatch: %+v vs %+v", loaded.UI, cfg.UI)
	}
	if len(loaded.Seeds) != 1 || loaded.Seeds[0] != "/tmp/tree.yaml" || !loaded.Session.Remember {
		t.Errorf("unexpected loaded config %+v", loaded)
	}
}

func TestNextTheme(t *testing.T) {
	tests := map[string]string{
		"system": "dark",
		"dark":   "light",
		"light":  "system",
		"bogus":  "system",
	}
	for in, want := range tests {
		if got := NextTheme(in); got != want {
			t.Errorf("NextTheme(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestXDGDirs(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_STATE_HOME", "/xdg/state")

	if got := ConfigPath(); got != "/xdg/config/folio/config.yaml" {
		t.Errorf("ConfigPath = %q", got)
	}
	if got := StateDir(); got != "/xdg/state/folio" {
		t.Errorf("StateDir = %q", got)
	}
}

func TestLoad_UsesXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg := DefaultConfig()
	cfg.UI.DefaultTab = "favorites"
	if err := Save(cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.UI.DefaultTab != "favorites" {
		t.Errorf("expected favorites tab, got %q", loaded.UI.DefaultTab)
	}
}
