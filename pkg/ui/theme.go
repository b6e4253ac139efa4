package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeFg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

// Theme is the set of styles the view renders with. Adaptive colors resolve
// against the renderer's background setting, which NewTheme sets.
type Theme struct {
	Renderer *lipgloss.Renderer
	Mode     string
	Dark     bool

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Folder    lipgloss.AdaptiveColor
	File      lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Danger    lipgloss.AdaptiveColor
	Success   lipgloss.AdaptiveColor

	Base       lipgloss.Style
	Selected   lipgloss.Style
	Header     lipgloss.Style
	TabActive  lipgloss.Style
	TabIdle    lipgloss.Style
	ColumnHead lipgloss.Style
	FolderText lipgloss.Style
	FileText   lipgloss.Style
	MutedText  lipgloss.Style
	Favorite   lipgloss.Style
	StatusOK   lipgloss.Style
	StatusErr  lipgloss.Style
	Dialog     lipgloss.Style
	DialogHead lipgloss.Style
}

// NewTheme builds the theme for mode (system, dark or light). systemDark is
// what the terminal reported, used for the system mode.
func NewTheme(r *lipgloss.Renderer, mode string, systemDark bool) Theme {
	dark := systemDark
	switch mode {
	case "dark":
		dark = true
	case "light":
		dark = false
	default:
		mode = "system"
	}
	r.SetHasDarkBackground(dark)

	t := Theme{
		Renderer: r,
		Mode:     mode,
		Dark:     dark,

		Primary:   lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"},
		Secondary: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
		Folder:    lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#8BE9FD"},
		File:      lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"},
		Border:    lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#44475A"},
		Muted:     lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"},
		Danger:    lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"},
		Success:   lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"},
	}

	t.Base = r.NewStyle().Foreground(t.File)
	t.Selected = r.NewStyle().
		Background(t.Highlight).
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(t.Primary).
		Bold(true)
	t.Header = r.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Bold(true).
		Padding(0, 1)
	t.TabActive = r.NewStyle().Foreground(t.Primary).Bold(true).Underline(true).Padding(0, 1)
	t.TabIdle = r.NewStyle().Foreground(t.Muted).Padding(0, 1)
	t.ColumnHead = r.NewStyle().Foreground(t.Secondary).Bold(true)
	t.FolderText = r.NewStyle().Foreground(t.Folder).Bold(true)
	t.FileText = r.NewStyle().Foreground(t.File)
	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.Favorite = r.NewStyle().Foreground(ThemeFg("#FFD700"))
	t.StatusOK = r.NewStyle().Foreground(t.Success)
	t.StatusErr = r.NewStyle().Foreground(t.Danger).Bold(true)
	t.Dialog = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2)
	t.DialogHead = r.NewStyle().Foreground(t.Primary).Bold(true)

	return t
}

// GlamourStyle names the glamour standard style matching the theme.
func (t Theme) GlamourStyle() string {
	if TermProfile < colorprofile.ANSI {
		return "notty"
	}
	if t.Dark {
		return "dark"
	}
	return "light"
}

// TestTheme returns a dark theme suitable for use in tests.
func TestTheme() Theme {
	return NewTheme(lipgloss.NewRenderer(os.Stdout), "dark", true)
}
