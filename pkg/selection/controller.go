// Package selection tracks which node is selected, which file is open in the
// editor and the editor draft. It also keeps the set of pinned favorites.
//
// The controller holds only ids. Every read resolves them against the
// current forest snapshot, and Reconcile drops ids that no longer resolve.
package selection

import (
	"fmt"

	"github.com/vanderheijden86/folio/pkg/debug"
	"github.com/vanderheijden86/folio/pkg/model"
)

// State is the controller state.
type State int

const (
	Idle State = iota
	Selected
	Editing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Selected:
		return "selected"
	case Editing:
		return "editing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ContentStore loads and saves file content. No implementation ships with
// folio; without one the editor shows placeholder text and discards drafts.
type ContentStore interface {
	Load(id model.NodeID) (string, error)
	Save(id model.NodeID, content string) error
}

// Option configures a Controller.
type Option func(*Controller)

// WithContentStore injects a content backend.
func WithContentStore(cs ContentStore) Option {
	return func(c *Controller) {
		c.content = cs
	}
}

// Controller is the selection/edit state machine.
type Controller struct {
	selected  model.NodeID
	open      model.NodeID
	draft     string
	favorites map[model.NodeID]struct{}
	content   ContentStore
}

// New returns an idle controller.
func New(opts ...Option) *Controller {
	c := &Controller{favorites: make(map[model.NodeID]struct{})}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Placeholder is the draft shown when no ContentStore is configured.
func Placeholder(name string) string {
	return "This is the content of " + name
}

// State reports the current state.
func (c *Controller) State() State {
	switch {
	case c.open != "":
		return Editing
	case c.selected != "":
		return Selected
	default:
		return Idle
	}
}

func (c *Controller) SelectedID() model.NodeID { return c.selected }
func (c *Controller) OpenID() model.NodeID     { return c.open }
func (c *Controller) Draft() string            { return c.draft }

// Select marks id as selected. It returns false, leaving state unchanged,
// when id is not in f or the editor is open.
func (c *Controller) Select(f *model.Forest, id model.NodeID) bool {
	if c.open != "" || !f.Has(id) {
		return false
	}
	c.selected = id
	return true
}

// Open selects id and, when it is a file, opens it for editing. Opening a
// folder only selects it.
func (c *Controller) Open(f *model.Forest, id model.NodeID) (bool, error) {
	if !c.Select(f, id) {
		return false, nil
	}
	n, _ := f.Node(id)
	if !n.IsFile() {
		return true, nil
	}

	draft := Placeholder(n.Name)
	if c.content != nil {
		text, err := c.content.Load(id)
		if err != nil {
			return true, fmt.Errorf("loading content of %s: %w", n.Name, err)
		}
		draft = text
	}
	c.open = id
	c.draft = draft
	debug.Log("selection: editing %s", id)
	return true, nil
}

// SetDraft replaces the draft. It is ignored unless editing.
func (c *Controller) SetDraft(text string) {
	if c.open == "" {
		return
	}
	c.draft = text
}

// Save leaves the editor. With a ContentStore the draft is saved first and
// the editor stays open if that fails.
func (c *Controller) Save() error {
	if c.open == "" {
		return nil
	}
	if c.content != nil {
		if err := c.content.Save(c.open, c.draft); err != nil {
			return fmt.Errorf("saving content: %w", err)
		}
	}
	debug.Log("selection: saved %s", c.open)
	c.closeEditor()
	return nil
}

// CancelEdit leaves the editor and discards the draft.
func (c *Controller) CancelEdit() {
	if c.open == "" {
		return
	}
	debug.Log("selection: cancelled edit of %s", c.open)
	c.closeEditor()
}

func (c *Controller) closeEditor() {
	c.open = ""
	c.draft = ""
}

// Reconcile clears every held id that does not resolve in f.
func (c *Controller) Reconcile(f *model.Forest) {
	if c.open != "" && !f.Has(c.open) {
		debug.Log("selection: open node %s is gone", c.open)
		c.closeEditor()
	}
	if c.selected != "" && !f.Has(c.selected) {
		debug.Log("selection: selected node %s is gone", c.selected)
		c.selected = ""
	}
	for id := range c.favorites {
		if !f.Has(id) {
			delete(c.favorites, id)
		}
	}
}

// ToggleFavorite pins or unpins id. It returns false when id is not in f.
func (c *Controller) ToggleFavorite(f *model.Forest, id model.NodeID) bool {
	if !f.Has(id) {
		return false
	}
	if _, ok := c.favorites[id]; ok {
		delete(c.favorites, id)
	} else {
		c.favorites[id] = struct{}{}
	}
	return true
}

func (c *Controller) IsFavorite(id model.NodeID) bool {
	_, ok := c.favorites[id]
	return ok
}

// Favorites returns the pinned ids present in f, in document order.
func (c *Controller) Favorites(f *model.Forest) []model.NodeID {
	if len(c.favorites) == 0 {
		return nil
	}
	var out []model.NodeID
	f.Walk(func(n model.Node, _ int) {
		if _, ok := c.favorites[n.ID]; ok {
			out = append(out, n.ID)
		}
	})
	return out
}
