// Package ui is the folio terminal interface: a bubbletea model over a
// workspace, with tabs for all files, recent files and favorites, live
// search, and modal dialogs for new files and the content editor.
package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/folio/pkg/config"
	"github.com/vanderheijden86/folio/pkg/debug"
	"github.com/vanderheijden86/folio/pkg/metrics"
	"github.com/vanderheijden86/folio/pkg/model"
	"github.com/vanderheijden86/folio/pkg/search"
	"github.com/vanderheijden86/folio/pkg/selection"
	"github.com/vanderheijden86/folio/pkg/session"
	"github.com/vanderheijden86/folio/pkg/watcher"
	"github.com/vanderheijden86/folio/pkg/workspace"
)

// focus tracks which component receives key input.
type focus int

const (
	focusTree focus = iota
	focusSearch
	focusNewFile
	focusEditor
	focusDeleteConfirm
	focusHelp
)

type tab int

const (
	tabAll tab = iota
	tabRecent
	tabFavorites
)

var tabTitles = []string{"All Files", "Recent", "Favorites"}

func tabFromConfig(name string) tab {
	switch name {
	case "recent":
		return tabRecent
	case "favorites":
		return tabFavorites
	default:
		return tabAll
	}
}

// chrome is the number of lines around the body: header, search bar and
// status bar.
const chrome = 3

// Option configures a Model.
type Option func(*Model)

// WithGate enables logout from the UI.
func WithGate(g *session.Gate) Option {
	return func(m *Model) { m.gate = g }
}

// WithWatcher reloads config when the watched file changes.
func WithWatcher(w *watcher.Watcher, configPath string) Option {
	return func(m *Model) {
		m.watcher = w
		m.configPath = configPath
	}
}

// WithConfigSaver sets how theme changes are persisted.
func WithConfigSaver(save func(config.Config) error) Option {
	return func(m *Model) { m.saveConfig = save }
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) { m.writeClipboard = write }
}

// WithRenderer sets the lipgloss renderer, and what the terminal reported
// about its background.
func WithRenderer(r *lipgloss.Renderer, systemDark bool) Option {
	return func(m *Model) {
		m.renderer = r
		m.systemDark = systemDark
	}
}

// Model is the bubbletea model.
type Model struct {
	ws  *workspace.Workspace
	cfg config.Config

	gate           *session.Gate
	watcher        *watcher.Watcher
	configPath     string
	saveConfig     func(config.Config) error
	writeClipboard func(string) error

	renderer   *lipgloss.Renderer
	systemDark bool
	theme      Theme

	focused       focus
	tab           tab
	cursor        int
	offset        int
	pendingDelete model.NodeID

	searchInput textinput.Model
	nameInput   textinput.Model
	editor      textarea.Model
	help        helpView

	width, height int

	statusMsg     string
	statusIsError bool
	loggedOut     bool
}

// NewModel returns a model over ws.
func NewModel(ws *workspace.Workspace, cfg config.Config, opts ...Option) Model {
	m := Model{
		ws:             ws,
		cfg:            cfg,
		saveConfig:     config.Save,
		writeClipboard: clipboard.WriteAll,
		systemDark:     true,
		tab:            tabFromConfig(cfg.UI.DefaultTab),
		searchInput:    newSearchInput(),
		nameInput:      newNameInput(),
		editor:         newEditor(),
		help:           newHelpView(),
		width:          100,
		height:         30,
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.renderer == nil {
		m.renderer = lipgloss.DefaultRenderer()
	}
	m.theme = NewTheme(m.renderer, cfg.UI.Theme, m.systemDark)
	return m
}

// LoggedOut reports whether the user logged out before quitting.
func (m Model) LoggedOut() bool { return m.loggedOut }

// Workspace returns the workspace the model drives.
func (m Model) Workspace() *workspace.Workspace { return m.ws }

// ConfigChangedMsg is sent when the watched config file changes.
type ConfigChangedMsg struct{}

// WatchConfigCmd waits for the next config change.
func WatchConfigCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return ConfigChangedMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	if m.watcher != nil {
		return WatchConfigCmd(m.watcher)
	}
	return nil
}

func (m Model) bodyHeight() int {
	h := m.height - chrome
	if h < 1 {
		h = 1
	}
	return h
}

// listHeight is the number of rows below the column header.
func (m Model) listHeight() int {
	return max(1, m.bodyHeight()-1)
}

// rows returns what the active tab shows.
func (m Model) rows() []search.Row {
	switch m.tab {
	case tabRecent:
		return m.ws.Recent(m.cfg.UI.RecentLimit)
	case tabFavorites:
		return m.ws.Favorites()
	default:
		return m.ws.Projection().Rows
	}
}

func (m Model) current() (search.Row, bool) {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return search.Row{}, false
	}
	return rows[m.cursor], true
}

// syncCursor keeps the cursor on the selected node when it is visible and
// inside the row range otherwise, then scrolls it into view.
func (m *Model) syncCursor() {
	rows := m.rows()
	if id := m.ws.Selection().SelectedID(); id != "" {
		for i, r := range rows {
			if r.ID == id {
				m.cursor = i
				break
			}
		}
	}
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	if m.offset > 0 && m.offset > len(rows)-h {
		m.offset = max(0, len(rows)-h)
	}
}

// moveCursor moves by delta rows and selects the row under the cursor.
func (m *Model) moveCursor(delta int) {
	rows := m.rows()
	if len(rows) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(rows)-1)
	m.ws.Select(rows[m.cursor].ID)
	m.syncCursor()
}

func (m *Model) setStatus(format string, args ...any) {
	m.statusMsg = fmt.Sprintf(format, args...)
	m.statusIsError = false
}

func (m *Model) setError(format string, args ...any) {
	m.statusMsg = fmt.Sprintf(format, args...)
	m.statusIsError = true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.searchInput.Width = max(10, m.width-4)
		m.editor.SetWidth(dialogWidth(m.width) - 6)
		m.editor.SetHeight(max(3, m.bodyHeight()-10))
		m.help.resize(m.width, m.bodyHeight(), m.theme.GlamourStyle())
		m.syncCursor()
		return m, nil

	case ConfigChangedMsg:
		m.reloadConfig()
		if m.watcher != nil {
			return m, WatchConfigCmd(m.watcher)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.focused {
		case focusSearch:
			return m.handleSearchKeys(msg)
		case focusNewFile:
			return m.handleNewFileKeys(msg)
		case focusEditor:
			return m.handleEditorKeys(msg)
		case focusDeleteConfirm:
			return m.handleDeleteConfirmKeys(msg), nil
		case focusHelp:
			return m.handleHelpKeys(msg)
		default:
			return m.handleTreeKeys(msg)
		}
	}

	// Non-key messages (cursor blink and the like) go to the focused input.
	var cmd tea.Cmd
	switch m.focused {
	case focusSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case focusNewFile:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case focusEditor:
		m.editor, cmd = m.editor.Update(msg)
	}
	return m, cmd
}

func (m *Model) reloadConfig() {
	if m.configPath == "" {
		return
	}
	cfg, err := config.LoadFrom(m.configPath)
	if err != nil {
		m.setError("Config not reloaded: %v", err)
		return
	}
	themeChanged := cfg.UI.Theme != m.cfg.UI.Theme
	debug.LogIf(themeChanged, "ui: theme %s -> %s", m.cfg.UI.Theme, cfg.UI.Theme)
	m.cfg = cfg
	if themeChanged {
		m.applyTheme(cfg.UI.Theme)
	}
	m.syncCursor()
	debug.Log("ui: config reloaded from %s", m.configPath)
	m.setStatus("Config reloaded")
}

func (m *Model) applyTheme(mode string) {
	m.theme = NewTheme(m.renderer, mode, m.systemDark)
	m.help.resize(m.width, m.bodyHeight(), m.theme.GlamourStyle())
}

func (m Model) handleTreeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMsg = ""
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "g", "home":
		m.moveCursor(-len(m.rows()))
	case "G", "end":
		m.moveCursor(len(m.rows()))
	case "pgdown", "ctrl+d":
		m.moveCursor(m.listHeight() / 2)
	case "pgup", "ctrl+u":
		m.moveCursor(-m.listHeight() / 2)

	case " ", "space":
		if r, ok := m.current(); ok {
			m.ws.Select(r.ID)
			m.ws.ToggleExpand(r.ID)
		}
	case "l", "right":
		if r, ok := m.current(); ok && r.Kind == model.KindFolder && !r.Expanded {
			m.ws.Select(r.ID)
			m.ws.ToggleExpand(r.ID)
		}
	case "h", "left":
		if r, ok := m.current(); ok && r.Kind == model.KindFolder && r.Expanded {
			m.ws.Select(r.ID)
			m.ws.ToggleExpand(r.ID)
		}
	case "enter", "o":
		return m.openCurrent()

	case "/":
		m.focused = focusSearch
		m.syncCursor()
		return m, m.searchInput.Focus()
	case "esc":
		if m.ws.Query() != "" {
			m.clearSearch()
		}
	case "n":
		m.focused = focusNewFile
		m.nameInput.Reset()
		return m, m.nameInput.Focus()
	case "d", "delete":
		if r, ok := m.current(); ok {
			m.ws.Select(r.ID)
			m.pendingDelete = r.ID
			m.focused = focusDeleteConfirm
		}
	case "y":
		if r, ok := m.current(); ok {
			if err := m.writeClipboard(r.Name); err != nil {
				m.setError("Clipboard error: %v", err)
			} else {
				m.setStatus("Copied %q to clipboard", r.Name)
			}
		}
	case "f":
		if r, ok := m.current(); ok {
			m.ws.ToggleFavorite(r.ID)
			if m.ws.Selection().IsFavorite(r.ID) {
				m.setStatus("Pinned %s", r.Name)
			} else {
				m.setStatus("Unpinned %s", r.Name)
			}
		}
	case "r":
		m.setError("Rename is not supported")
	case "m":
		m.setError("Move is not supported")
	case "N":
		m.setError("New folder is not supported")

	case "1":
		m.switchTab(tabAll)
	case "2":
		m.switchTab(tabRecent)
	case "3":
		m.switchTab(tabFavorites)
	case "tab":
		m.switchTab((m.tab + 1) % tab(len(tabTitles)))
	case "shift+tab":
		m.switchTab((m.tab + tab(len(tabTitles)) - 1) % tab(len(tabTitles)))

	case "t":
		m.cycleTheme()
	case "?", "f1":
		m.focused = focusHelp
		m.help.resize(m.width, m.bodyHeight(), m.theme.GlamourStyle())
		m.help.vp.GotoTop()
	case "L":
		return m.logout()
	}
	m.syncCursor()
	return m, nil
}

func (m Model) openCurrent() (tea.Model, tea.Cmd) {
	r, ok := m.current()
	if !ok {
		return m, nil
	}
	if r.Kind == model.KindFolder {
		m.ws.Select(r.ID)
		m.ws.ToggleExpand(r.ID)
		m.syncCursor()
		return m, nil
	}
	if _, err := m.ws.Open(r.ID); err != nil {
		m.setError("%v", err)
		return m, nil
	}
	if m.ws.Selection().State() != selection.Editing {
		return m, nil
	}
	m.editor.SetValue(m.ws.Selection().Draft())
	m.focused = focusEditor
	return m, m.editor.Focus()
}

func (m *Model) switchTab(t tab) {
	if m.tab == t {
		return
	}
	m.tab = t
	m.cursor, m.offset = 0, 0
	m.syncCursor()
}

func (m *Model) cycleTheme() {
	next := config.NextTheme(m.cfg.UI.Theme)
	m.cfg.UI.Theme = next
	m.applyTheme(next)
	if err := m.saveConfig(m.cfg); err != nil {
		m.setError("Theme %s (not saved: %v)", next, err)
		return
	}
	m.setStatus("Theme: %s", next)
}

func (m Model) logout() (tea.Model, tea.Cmd) {
	if m.gate == nil {
		m.setError("Logout unavailable")
		return m, nil
	}
	if err := m.gate.Logout(); err != nil {
		m.setError("%v", err)
		return m, nil
	}
	m.loggedOut = true
	return m, tea.Quit
}

func (m *Model) clearSearch() {
	m.searchInput.Reset()
	m.ws.SetQuery("")
	m.syncCursor()
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.clearSearch()
		m.searchInput.Blur()
		m.focused = focusTree
		return m, nil
	case "enter":
		m.searchInput.Blur()
		m.focused = focusTree
		return m, nil
	case "down":
		m.moveCursor(1)
		return m, nil
	case "up":
		m.moveCursor(-1)
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.ws.SetQuery(m.searchInput.Value())
	m.syncCursor()
	return m, cmd
}

func (m Model) handleNewFileKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.nameInput.Blur()
		m.focused = focusTree
		return m, nil
	case "enter":
		name := sanitizeName(m.nameInput.Value())
		m.nameInput.Blur()
		m.focused = focusTree
		if !m.ws.CreateFile(name) {
			m.setError("A file needs a name")
			return m, nil
		}
		roots := m.ws.Forest().Roots()
		m.ws.Select(roots[len(roots)-1])
		m.setStatus("Created %s", name)
		m.syncCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m Model) handleEditorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.ws.CancelEdit()
		m.editor.Blur()
		m.focused = focusTree
		m.setStatus("Changes discarded")
		return m, nil
	case "ctrl+s":
		m.ws.SetDraft(m.editor.Value())
		name := ""
		if n, ok := m.ws.OpenNode(); ok {
			name = n.Name
		}
		if err := m.ws.SaveDraft(); err != nil {
			m.setError("%v", err)
			return m, nil
		}
		m.editor.Blur()
		m.focused = focusTree
		m.setStatus("Saved %s", name)
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	m.ws.SetDraft(m.editor.Value())
	return m, cmd
}

func (m Model) handleDeleteConfirmKeys(msg tea.KeyMsg) Model {
	id := m.pendingDelete
	m.pendingDelete = ""
	m.focused = focusTree
	if msg.String() != "y" {
		m.setStatus("Delete cancelled")
		return m
	}
	n, _ := m.ws.Forest().Node(id)
	if m.ws.DeleteNode(id) {
		m.setStatus("Deleted %s", n.Name)
	}
	m.syncCursor()
	return m
}

func (m Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down", "k", "up", "pgdown", "pgup", "ctrl+d", "ctrl+u":
		var cmd tea.Cmd
		m.help, cmd = m.help.update(msg)
		return m, cmd
	case "g", "home":
		m.help.vp.GotoTop()
		return m, nil
	case "G", "end":
		m.help.vp.GotoBottom()
		return m, nil
	}
	// Any other key dismisses help.
	m.focused = focusTree
	return m, nil
}

func (m Model) View() string {
	defer metrics.Timer(metrics.UIRender)()

	var body string
	switch m.focused {
	case focusHelp:
		body = m.help.view()
	case focusNewFile:
		body = m.renderNewFileDialog()
	case focusEditor:
		body = m.renderEditorDialog()
	case focusDeleteConfirm:
		body = m.renderDeleteConfirm()
	default:
		l := newRowLayout(m.width, m.cfg.UI.DateFormat)
		body = m.renderColumnHeader(l) + "\n" + m.renderRows(m.rows(), m.listHeight(), l)
	}
	body = lipgloss.NewStyle().Height(m.bodyHeight()).MaxHeight(m.bodyHeight()).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderSearchBar(),
		body,
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	t := m.theme
	title := t.Header.Render("folio")
	var tabs []string
	for i, name := range tabTitles {
		label := fmt.Sprintf("%d %s", i+1, name)
		if tab(i) == m.tab {
			tabs = append(tabs, t.TabActive.Render(label))
		} else {
			tabs = append(tabs, t.TabIdle.Render(label))
		}
	}
	right := t.MutedText.Render("theme:" + m.theme.Mode)
	if m.gate != nil {
		if u := m.gate.User(); u != "" {
			right = t.MutedText.Render(u+" • ") + right
		}
	}
	left := lipgloss.JoinHorizontal(lipgloss.Top, append([]string{title, " "}, tabs...)...)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderSearchBar() string {
	if m.focused == focusSearch || m.ws.Query() != "" {
		return m.searchInput.View()
	}
	return m.theme.MutedText.Render("/ search")
}

func (m Model) renderFooter() string {
	t := m.theme
	if m.statusMsg != "" {
		if m.statusIsError {
			return t.StatusErr.Render(m.statusMsg)
		}
		return t.StatusOK.Render(m.statusMsg)
	}

	var hints string
	switch m.focused {
	case focusSearch:
		hints = "type to filter • enter keep • esc clear"
	case focusHelp:
		hints = "j/k scroll • any key close"
	case focusTree:
		hints = "n new • d delete • enter open • / search • ? help • q quit"
	}
	counts := fmt.Sprintf("%d items", m.ws.Forest().Len())
	if n, ok := m.ws.SelectedNode(); ok {
		counts = truncate(n.Name, 30) + " • " + counts
	}
	gap := m.width - lipgloss.Width(hints) - lipgloss.Width(counts)
	if gap < 1 {
		return t.MutedText.Render(hints)
	}
	return t.MutedText.Render(hints + strings.Repeat(" ", gap) + counts)
}
