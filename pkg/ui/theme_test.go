package ui

import (
	"io"
	"testing"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

func TestNewThemeModes(t *testing.T) {
	tests := []struct {
		mode       string
		systemDark bool
		wantMode   string
		wantDark   bool
	}{
		{"dark", false, "dark", true},
		{"light", true, "light", false},
		{"system", true, "system", true},
		{"system", false, "system", false},
		{"bogus", true, "system", true},
	}
	for _, tt := range tests {
		r := lipgloss.NewRenderer(io.Discard)
		th := NewTheme(r, tt.mode, tt.systemDark)
		if th.Mode != tt.wantMode || th.Dark != tt.wantDark {
			t.Errorf("NewTheme(%q, %v) = mode %q dark %v; want %q %v",
				tt.mode, tt.systemDark, th.Mode, th.Dark, tt.wantMode, tt.wantDark)
		}
		if r.HasDarkBackground() != tt.wantDark {
			t.Errorf("NewTheme(%q) did not set the renderer background", tt.mode)
		}
	}
}

func TestGlamourStyle(t *testing.T) {
	saved := TermProfile
	defer func() { TermProfile = saved }()

	TermProfile = colorprofile.TrueColor
	if got := NewTheme(lipgloss.NewRenderer(io.Discard), "light", true).GlamourStyle(); got != "light" {
		t.Errorf("light theme glamour style = %q", got)
	}
	if got := TestTheme().GlamourStyle(); got != "dark" {
		t.Errorf("dark theme glamour style = %q", got)
	}

	TermProfile = colorprofile.NoTTY
	if got := TestTheme().GlamourStyle(); got != "notty" {
		t.Errorf("NoTTY glamour style = %q", got)
	}
}

func TestThemeFg_TrueColor(t *testing.T) {
	saved := TermProfile
	defer func() { TermProfile = saved }()

	TermProfile = colorprofile.TrueColor

	got := ThemeFg("#FFD700")
	if _, ok := got.(lipgloss.ANSIColor); ok {
		t.Error("ThemeFg should return hex color in TrueColor mode, got ANSIColor")
	}
}

func TestThemeFg_ANSI(t *testing.T) {
	saved := TermProfile
	defer func() { TermProfile = saved }()

	TermProfile = colorprofile.ANSI

	got := ThemeFg("#FFD700")
	ansiColor, ok := got.(lipgloss.ANSIColor)
	if !ok {
		t.Errorf("ThemeFg should return ANSIColor in ANSI mode, got %T", got)
	} else if ansiColor != 7 {
		t.Errorf("ThemeFg should return ANSI white (7) in ANSI mode, got %d", ansiColor)
	}
}
