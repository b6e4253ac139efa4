// Package config handles loading and saving folio configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/folio/config.yaml
//   - State:   ~/.local/state/folio/ (remembered session)
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

const appName = "folio"

// Themes accepted by ui.theme, in toggle order.
var Themes = []string{"system", "dark", "light"}

// Tabs accepted by ui.default_tab.
var Tabs = []string{"all", "recent", "favorites"}

// ErrInvalidValue is returned by Validate for out-of-range settings.
var ErrInvalidValue = errors.New("invalid config value")

// UIConfig holds UI preference settings.
type UIConfig struct {
	Theme       string `yaml:"theme,omitempty"`        // system, dark, light
	DefaultTab  string `yaml:"default_tab,omitempty"`  // all, recent, favorites
	DateFormat  string `yaml:"date_format,omitempty"`  // Go time layout for the modified column
	RecentLimit int    `yaml:"recent_limit,omitempty"` // rows on the Recent tab
}

// SessionConfig holds login defaults.
type SessionConfig struct {
	Remember bool `yaml:"remember,omitempty"`
}

// Config is the top-level configuration for folio.
type Config struct {
	UI      UIConfig      `yaml:"ui,omitempty"`
	Seeds   []string      `yaml:"seeds,omitempty"` // yaml/json files merged into the initial tree
	Session SessionConfig `yaml:"session,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		UI: UIConfig{
			Theme:       "system",
			DefaultTab:  "all",
			DateFormat:  "Jan 2, 2006",
			RecentLimit: 20,
		},
	}
}

// ConfigDir returns the XDG config directory for folio.
func ConfigDir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// StateDir returns the XDG state directory for folio.
func StateDir() string {
	return xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func xdgDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, fallback, appName)
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}

	for i := range cfg.Seeds {
		cfg.Seeds[i] = expandHome(cfg.Seeds[i])
	}

	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	if !slices.Contains(Themes, c.UI.Theme) {
		return fmt.Errorf("%w: ui.theme %q (want one of %s)", ErrInvalidValue, c.UI.Theme, strings.Join(Themes, ", "))
	}
	if !slices.Contains(Tabs, c.UI.DefaultTab) {
		return fmt.Errorf("%w: ui.default_tab %q (want one of %s)", ErrInvalidValue, c.UI.DefaultTab, strings.Join(Tabs, ", "))
	}
	if c.UI.RecentLimit < 0 {
		return fmt.Errorf("%w: ui.recent_limit %d", ErrInvalidValue, c.UI.RecentLimit)
	}
	return nil
}

// NextTheme returns the theme after t in toggle order.
func NextTheme(t string) string {
	i := slices.Index(Themes, t)
	return Themes[(i+1)%len(Themes)]
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
