package ui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/vanderheijden86/folio/pkg/debug"
)

const helpMarkdown = `# folio

## Navigation

| Key | Action |
|-----|--------|
| j / ↓ | Move down |
| k / ↑ | Move up |
| g / G | First / last row |
| space | Expand or collapse folder |
| l / → | Expand folder |
| h / ← | Collapse folder |
| enter / o | Open file, toggle folder |

## Files

| Key | Action |
|-----|--------|
| n | New file (top level) |
| d | Delete highlighted item |
| y | Copy name to clipboard |
| f | Pin or unpin favorite |
| r / m / N | Rename, move, new folder (not supported) |

## Views

| Key | Action |
|-----|--------|
| / | Search (esc clears) |
| 1 2 3 / tab | All files, Recent, Favorites |
| t | Cycle theme: system, dark, light |
| ? | Toggle this help |
| L | Log out and quit |
| q / ctrl+c | Quit |

## Editor

| Key | Action |
|-----|--------|
| ctrl+s | Save and close |
| esc | Discard changes |
`

// helpView wraps the rendered help in a scrollable viewport.
type helpView struct {
	vp       viewport.Model
	rendered string
	style    string
	width    int
}

func newHelpView() helpView {
	return helpView{vp: viewport.New(60, 20)}
}

// resize re-renders the markdown when width or style changed.
func (h *helpView) resize(width, height int, style string) {
	h.vp.Width = width
	h.vp.Height = height
	if h.rendered != "" && h.width == width && h.style == style {
		return
	}
	h.width, h.style = width, style
	h.rendered = renderMarkdown(helpMarkdown, width, style)
	h.vp.SetContent(h.rendered)
}

func (h helpView) update(msg tea.Msg) (helpView, tea.Cmd) {
	var cmd tea.Cmd
	h.vp, cmd = h.vp.Update(msg)
	return h, cmd
}

func (h helpView) view() string {
	return h.vp.View()
}

// renderMarkdown renders md with glamour, falling back to the raw text.
func renderMarkdown(md string, width int, style string) string {
	wrap := width - 4
	if wrap < 20 {
		wrap = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		debug.Log("help: glamour renderer: %v", err)
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		debug.Log("help: render: %v", err)
		return md
	}
	return out
}
