package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Search files..."
	ti.Prompt = "/ "
	ti.CharLimit = 256
	return ti
}

func newNameInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "untitled.txt"
	ti.Prompt = "› "
	ti.CharLimit = 255
	ti.Width = 40
	return ti
}

func newEditor() textarea.Model {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(60)
	ta.SetHeight(10)
	return ta
}

// dialogWidth is the outer width of modal boxes for a terminal width.
func dialogWidth(termWidth int) int {
	w := termWidth - 10
	if w > 72 {
		w = 72
	}
	if w < 30 {
		w = 30
	}
	return w
}

func (m Model) renderDialog(title, body, hint string) string {
	t := m.theme
	w := dialogWidth(m.width)
	content := lipgloss.JoinVertical(lipgloss.Left,
		t.DialogHead.Render(title),
		"",
		body,
		"",
		t.MutedText.Render(hint),
	)
	box := t.Dialog.Width(w).Render(content)
	return lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, box)
}

func (m Model) renderNewFileDialog() string {
	return m.renderDialog("New file", m.nameInput.View(), "enter create • esc cancel")
}

func (m Model) renderEditorDialog() string {
	title := "Edit"
	if n, ok := m.ws.OpenNode(); ok {
		title = "Edit " + n.Name
	}
	return m.renderDialog(title, m.editor.View(), "ctrl+s save • esc discard")
}

func (m Model) renderDeleteConfirm() string {
	n, ok := m.ws.Forest().Node(m.pendingDelete)
	if !ok {
		return ""
	}
	body := fmt.Sprintf("Delete %q?", n.Name)
	if count := len(m.ws.Forest().Subtree(n.ID)) - 1; count > 0 {
		body += fmt.Sprintf("\nIts %d nested item%s will be removed too.", count, plural(count))
	}
	return m.renderDialog("Confirm delete", body, "y delete • any other key cancels")
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// sanitizeName trims a typed file name. Path separators are not allowed
// since every file is created at the top level.
func sanitizeName(s string) string {
	s = strings.TrimSpace(s)
	return strings.ReplaceAll(s, "/", "_")
}
