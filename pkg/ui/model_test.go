package ui

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/folio/pkg/config"
	"github.com/vanderheijden86/folio/pkg/model"
	"github.com/vanderheijden86/folio/pkg/seed"
	"github.com/vanderheijden86/folio/pkg/selection"
	"github.com/vanderheijden86/folio/pkg/session"
	"github.com/vanderheijden86/folio/pkg/treestore"
	"github.com/vanderheijden86/folio/pkg/workspace"
)

type harness struct {
	m       Model
	copied  []string
	saved   []config.Config
	saveErr error
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	h := &harness{}
	store := treestore.New(
		treestore.WithIDGenerator(func() model.NodeID { return "new" }),
		treestore.WithClock(func() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) }),
	)
	ws := workspace.New(seed.Default(), store, nil)
	base := []Option{
		WithRenderer(lipgloss.NewRenderer(io.Discard), true),
		WithClipboard(func(s string) error {
			h.copied = append(h.copied, s)
			return nil
		}),
		WithConfigSaver(func(c config.Config) error {
			h.saved = append(h.saved, c)
			return h.saveErr
		}),
	}
	h.m = NewModel(ws, config.DefaultConfig(), append(base, opts...)...)
	h.send(tea.WindowSizeMsg{Width: 100, Height: 30})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	updated, cmd := h.m.Update(msg)
	h.m = updated.(Model)
	return cmd
}

func (h *harness) keys(keys ...string) {
	for _, k := range keys {
		switch k {
		case "enter":
			h.send(tea.KeyMsg{Type: tea.KeyEnter})
		case "esc":
			h.send(tea.KeyMsg{Type: tea.KeyEsc})
		case "tab":
			h.send(tea.KeyMsg{Type: tea.KeyTab})
		case "space":
			h.send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
		case "ctrl+s":
			h.send(tea.KeyMsg{Type: tea.KeyCtrlS})
		default:
			h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		}
	}
}

func (h *harness) rowNames() []string {
	var names []string
	for _, r := range h.m.rows() {
		names = append(names, r.Name)
	}
	return names
}

func (h *harness) find(t *testing.T, name string) model.NodeID {
	t.Helper()
	id, ok := h.m.ws.Forest().FindByName(name)
	if !ok {
		t.Fatalf("no node named %q", name)
	}
	return id
}

func TestInitialView(t *testing.T) {
	h := newHarness(t)
	if got := strings.Join(h.rowNames(), ","); got != "Documents,Work,Resume.pdf,Notes.txt,Pictures,Projects" {
		t.Fatalf("unexpected rows %s", got)
	}
	view := h.m.View()
	for _, want := range []string{"folio", "All Files", "Documents", "Resume.pdf", "420 KB"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if h.m.ws.Selection().State() != selection.Idle {
		t.Error("nothing should be selected at start")
	}
}

func TestNavigationSelects(t *testing.T) {
	h := newHarness(t)
	h.keys("j")
	if n, ok := h.m.ws.SelectedNode(); !ok || n.Name != "Work" {
		t.Fatalf("expected Work selected, got %+v", n)
	}
	h.keys("G")
	if n, _ := h.m.ws.SelectedNode(); n.Name != "Projects" {
		t.Errorf("expected Projects after G, got %s", n.Name)
	}
	h.keys("j")
	if h.m.cursor != 5 {
		t.Errorf("cursor should stop at the last row, got %d", h.m.cursor)
	}
	h.keys("g")
	if h.m.cursor != 0 {
		t.Errorf("expected cursor at top, got %d", h.m.cursor)
	}
}

func TestSpaceTogglesFolder(t *testing.T) {
	h := newHarness(t)
	h.keys("j", "space")
	if got := strings.Join(h.rowNames(), ","); !strings.Contains(got, "Work,Report.docx,Presentation.pptx") {
		t.Fatalf("expected Work expanded, rows %s", got)
	}
	h.keys("h")
	if len(h.rowNames()) != 6 {
		t.Errorf("expected Work collapsed again, rows %v", h.rowNames())
	}
	h.keys("l")
	if len(h.rowNames()) != 8 {
		t.Errorf("expected Work expanded by l, rows %v", h.rowNames())
	}
}

func TestSearchFiltersPerLevel(t *testing.T) {
	h := newHarness(t)
	h.keys("/", "r", "e", "p", "o", "r", "t")
	if h.m.ws.Query() != "report" {
		t.Fatalf("query = %q", h.m.ws.Query())
	}
	if rows := h.rowNames(); len(rows) != 0 {
		t.Errorf("Documents does not match, so Report.docx stays hidden: %v", rows)
	}
	if !strings.Contains(h.m.View(), `No matches for "report"`) {
		t.Error("expected empty-state message")
	}

	h.keys("esc")
	if h.m.ws.Query() != "" || h.m.focused != focusTree {
		t.Error("esc should clear the query and leave search")
	}

	h.keys("/", "P", "I", "C", "enter")
	if got := strings.Join(h.rowNames(), ","); got != "Pictures" {
		t.Errorf("case-insensitive search: got %s", got)
	}
	if h.m.focused != focusTree || h.m.ws.Query() != "PIC" {
		t.Error("enter should keep the query and return to the tree")
	}
}

func TestSearchKeepsSelection(t *testing.T) {
	h := newHarness(t)
	h.keys("j", "j", "j") // Notes.txt
	notes := h.find(t, "Notes.txt")
	h.keys("/", "z", "z")
	if h.m.ws.Selection().SelectedID() != notes {
		t.Error("typing a query must not change the selection")
	}
}

func TestCreateFile(t *testing.T) {
	h := newHarness(t)
	h.keys("j") // select Work; create still goes top level
	h.keys("n", "t", "o", "d", "o", ".", "t", "x", "t", "enter")

	f := h.m.ws.Forest()
	roots := f.Roots()
	n, _ := f.Node(roots[len(roots)-1])
	if n.Name != "todo.txt" || n.Size != "0 KB" {
		t.Fatalf("expected todo.txt last at top level, got %+v", n)
	}
	if sel, _ := h.m.ws.SelectedNode(); sel.Name != "todo.txt" {
		t.Errorf("new file should be selected, got %q", sel.Name)
	}
	if !strings.Contains(h.m.statusMsg, "Created todo.txt") {
		t.Errorf("status = %q", h.m.statusMsg)
	}
}

func TestCreateFileEmptyNameRejected(t *testing.T) {
	h := newHarness(t)
	before := h.m.ws.Forest()
	h.keys("n", "enter")
	if h.m.ws.Forest() != before {
		t.Error("empty name must not change the tree")
	}
	if !h.m.statusIsError {
		t.Error("expected an error status")
	}

	h.keys("n", "x", "esc")
	if h.m.ws.Forest() != before || h.m.focused != focusTree {
		t.Error("esc should cancel the dialog")
	}
}

func TestDeleteWithConfirm(t *testing.T) {
	h := newHarness(t)
	h.keys("j", "d")
	if h.m.focused != focusDeleteConfirm {
		t.Fatal("expected a confirmation prompt")
	}
	if !strings.Contains(h.m.View(), "2 nested items") {
		t.Error("confirmation should mention nested items")
	}
	h.keys("n")
	if _, ok := h.m.ws.Forest().FindByName("Work"); !ok {
		t.Fatal("cancelled delete removed Work")
	}

	h.keys("d", "y")
	f := h.m.ws.Forest()
	for _, name := range []string{"Work", "Report.docx", "Presentation.pptx"} {
		if _, ok := f.FindByName(name); ok {
			t.Errorf("%s survived delete", name)
		}
	}
	if h.m.ws.Selection().State() != selection.Idle {
		t.Error("selection should be cleared after deleting it")
	}
	if h.m.cursor >= len(h.m.rows()) {
		t.Error("cursor out of range after delete")
	}
}

func TestOpenEditSaveCancel(t *testing.T) {
	h := newHarness(t)
	h.keys("j", "j", "j", "enter") // Notes.txt
	if h.m.focused != focusEditor || h.m.ws.Selection().State() != selection.Editing {
		t.Fatalf("expected editor open, focus %v", h.m.focused)
	}
	if h.m.editor.Value() != "This is the content of Notes.txt" {
		t.Errorf("editor = %q", h.m.editor.Value())
	}

	h.keys("!")
	if !strings.HasSuffix(h.m.ws.Selection().Draft(), "!") {
		t.Errorf("draft should follow the editor, got %q", h.m.ws.Selection().Draft())
	}
	h.keys("ctrl+s")
	if h.m.focused != focusTree || h.m.ws.Selection().State() != selection.Selected {
		t.Error("ctrl+s should close the editor")
	}

	h.keys("o", "esc")
	if h.m.ws.Selection().State() != selection.Selected || h.m.statusMsg != "Changes discarded" {
		t.Errorf("esc should discard, status %q", h.m.statusMsg)
	}
}

func TestEnterOnFolderToggles(t *testing.T) {
	h := newHarness(t)
	h.keys("enter") // Documents
	if got := strings.Join(h.rowNames(), ","); got != "Documents,Pictures,Projects" {
		t.Errorf("expected Documents collapsed, rows %s", got)
	}
	if h.m.focused != focusTree {
		t.Error("folders never open the editor")
	}
}

func TestCopyName(t *testing.T) {
	h := newHarness(t)
	h.keys("j", "y")
	if len(h.copied) != 1 || h.copied[0] != "Work" {
		t.Errorf("copied %v", h.copied)
	}

	h.m.writeClipboard = func(string) error { return errors.New("no clipboard") }
	h.keys("y")
	if !h.m.statusIsError {
		t.Error("expected clipboard error in status")
	}
}

func TestFavoritesTab(t *testing.T) {
	h := newHarness(t)
	h.keys("3")
	if !strings.Contains(h.m.View(), "No favorites yet") {
		t.Error("expected favorites empty state")
	}
	h.keys("1", "G", "f", "k", "k", "f") // Projects, Notes.txt
	h.keys("3")
	if got := strings.Join(h.rowNames(), ","); got != "Notes.txt,Projects" {
		t.Errorf("favorites = %s", got)
	}
	if !strings.Contains(h.m.View(), markFavorite) {
		t.Error("favorite mark not rendered")
	}
}

func TestRecentTab(t *testing.T) {
	h := newHarness(t)
	h.keys("2")
	rows := h.rowNames()
	if len(rows) != 6 || rows[0] != "Report.docx" {
		t.Errorf("recent rows = %v", rows)
	}
	h.keys("tab")
	if h.m.tab != tabFavorites {
		t.Errorf("tab should cycle to favorites, got %v", h.m.tab)
	}
}

func TestUnsupportedActions(t *testing.T) {
	h := newHarness(t)
	before := h.m.ws.Forest()
	for key, want := range map[string]string{"r": "Rename", "m": "Move", "N": "New folder"} {
		h.keys(key)
		if !strings.Contains(h.m.statusMsg, want) || !strings.Contains(h.m.statusMsg, "not supported") {
			t.Errorf("%s: status %q", key, h.m.statusMsg)
		}
	}
	if h.m.ws.Forest() != before {
		t.Error("unsupported actions must not change the tree")
	}
}

func TestThemeCycleSaves(t *testing.T) {
	h := newHarness(t)
	h.keys("t")
	if h.m.theme.Mode != "dark" || len(h.saved) != 1 || h.saved[0].UI.Theme != "dark" {
		t.Fatalf("theme %s, saved %v", h.m.theme.Mode, h.saved)
	}
	h.keys("t")
	if h.m.theme.Mode != "light" || h.m.theme.Dark {
		t.Errorf("expected light theme, got %s", h.m.theme.Mode)
	}

	h.saveErr = errors.New("read-only")
	h.keys("t")
	if h.m.theme.Mode != "system" || !h.m.statusIsError {
		t.Error("theme should still change when saving fails")
	}
}

func TestHelpOverlay(t *testing.T) {
	h := newHarness(t)
	h.keys("?")
	if h.m.focused != focusHelp {
		t.Fatal("expected help")
	}
	if !strings.Contains(h.m.View(), "Navigation") {
		t.Error("help content not rendered")
	}
	h.keys("j")
	if h.m.focused != focusHelp {
		t.Error("j scrolls help")
	}
	h.keys("x")
	if h.m.focused != focusTree {
		t.Error("other keys dismiss help")
	}
}

func TestLogout(t *testing.T) {
	dir := t.TempDir()
	gate := session.NewGate(filepath.Join(dir, "p.json"), filepath.Join(dir, "e.json"))
	if err := gate.Login("ada", true); err != nil {
		t.Fatal(err)
	}
	h := newHarness(t, WithGate(gate))
	if !strings.Contains(h.m.View(), "ada") {
		t.Error("header should show the user")
	}

	h.keys("L")
	if !h.m.LoggedOut() || gate.Authenticated() {
		t.Error("expected logout")
	}
}

func TestQuitKeys(t *testing.T) {
	h := newHarness(t)
	cmd := h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
	if cmd := h.send(tea.KeyMsg{Type: tea.KeyCtrlC}); cmd == nil {
		t.Error("ctrl+c should quit")
	}
}

func TestConfigReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	cfg := config.DefaultConfig()
	cfg.UI.Theme = "light"
	cfg.UI.RecentLimit = 2
	if err := config.SaveTo(cfg, path); err != nil {
		t.Fatal(err)
	}

	h := newHarness(t, WithWatcher(nil, path))
	h.send(ConfigChangedMsg{})
	if h.m.theme.Mode != "light" || h.m.cfg.UI.RecentLimit != 2 {
		t.Errorf("config not applied: theme %s", h.m.theme.Mode)
	}
	h.keys("2")
	if len(h.rowNames()) != 2 {
		t.Errorf("recent limit not applied: %v", h.rowNames())
	}
}

func TestSmallWindowScrolls(t *testing.T) {
	h := newHarness(t)
	h.send(tea.WindowSizeMsg{Width: 60, Height: 7}) // three rows visible
	h.keys("G")
	if h.m.offset == 0 {
		t.Error("expected the list to scroll")
	}
	if !strings.Contains(h.m.View(), "Projects") {
		t.Error("last row should be visible")
	}
}
