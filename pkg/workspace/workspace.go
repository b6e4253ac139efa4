// Package workspace is the single entry point the view uses to drive the
// core. It owns the current forest snapshot, the search query and the
// selection controller, and hands out derived views of them.
//
// A Workspace is not safe for concurrent use; the UI update loop is its
// only caller.
package workspace

import (
	"github.com/vanderheijden86/folio/pkg/debug"
	"github.com/vanderheijden86/folio/pkg/metrics"
	"github.com/vanderheijden86/folio/pkg/model"
	"github.com/vanderheijden86/folio/pkg/search"
	"github.com/vanderheijden86/folio/pkg/selection"
	"github.com/vanderheijden86/folio/pkg/treestore"
)

// Workspace binds a forest to the operations that replace it.
type Workspace struct {
	forest *model.Forest
	store  *treestore.Store
	sel    *selection.Controller
	query  string

	// projection cache, valid while forest and query are unchanged
	cached      *search.Projection
	cachedFor   *model.Forest
	cachedQuery string
}

// New returns a workspace over f. A nil store or controller gets defaults.
func New(f *model.Forest, store *treestore.Store, sel *selection.Controller) *Workspace {
	if f == nil {
		f = model.Empty()
	}
	if store == nil {
		store = treestore.New()
	}
	if sel == nil {
		sel = selection.New()
	}
	return &Workspace{forest: f, store: store, sel: sel}
}

// Forest returns the current snapshot.
func (w *Workspace) Forest() *model.Forest { return w.forest }

// Query returns the current search text.
func (w *Workspace) Query() string { return w.query }

// Selection exposes the controller for read access.
func (w *Workspace) Selection() *selection.Controller { return w.sel }

func (w *Workspace) replace(f *model.Forest) bool {
	if f == w.forest {
		return false
	}
	w.forest = f
	return true
}

// CreateFile adds a top-level file. It reports whether the tree changed.
func (w *Workspace) CreateFile(name string) bool {
	stop := metrics.Timer(metrics.CreateFile)
	changed := w.replace(w.store.CreateFile(w.forest, name))
	stop()
	return changed
}

// DeleteNode removes id and its subtree, then drops selection state that
// referred to removed nodes.
func (w *Workspace) DeleteNode(id model.NodeID) bool {
	stop := metrics.Timer(metrics.DeleteNode)
	changed := w.replace(w.store.DeleteNode(w.forest, id))
	stop()
	if changed {
		w.sel.Reconcile(w.forest)
	}
	return changed
}

// ToggleExpand flips a folder open or closed.
func (w *Workspace) ToggleExpand(id model.NodeID) bool {
	stop := metrics.Timer(metrics.ToggleExpand)
	changed := w.replace(w.store.ToggleExpand(w.forest, id))
	stop()
	return changed
}

func (w *Workspace) Select(id model.NodeID) bool {
	return w.sel.Select(w.forest, id)
}

// Open selects id and opens it in the editor when it is a file.
func (w *Workspace) Open(id model.NodeID) (bool, error) {
	return w.sel.Open(w.forest, id)
}

// SetQuery replaces the search text. Selection is left alone.
func (w *Workspace) SetQuery(text string) {
	if text == w.query {
		return
	}
	debug.Log("workspace: query %q", text)
	w.query = text
}

func (w *Workspace) SetDraft(text string) { w.sel.SetDraft(text) }
func (w *Workspace) SaveDraft() error     { return w.sel.Save() }
func (w *Workspace) CancelEdit()          { w.sel.CancelEdit() }

func (w *Workspace) ToggleFavorite(id model.NodeID) bool {
	return w.sel.ToggleFavorite(w.forest, id)
}

// Projection returns the filtered tree rows for the current query.
func (w *Workspace) Projection() search.Projection {
	if w.cached != nil && w.cachedFor == w.forest && w.cachedQuery == w.query {
		return *w.cached
	}
	p := search.Project(w.forest, w.query)
	w.cached, w.cachedFor, w.cachedQuery = &p, w.forest, w.query
	return p
}

// Recent lists the newest files, filtered by the current query.
func (w *Workspace) Recent(limit int) []search.Row {
	return filterRows(search.Recent(w.forest, 0), w.query, limit)
}

// Favorites lists pinned nodes in document order, filtered by the query.
func (w *Workspace) Favorites() []search.Row {
	return filterRows(search.Rows(w.forest, w.sel.Favorites(w.forest)), w.query, 0)
}

func filterRows(rows []search.Row, query string, limit int) []search.Row {
	out := rows[:0]
	for _, r := range rows {
		if search.Matches(r.Name, query) {
			out = append(out, r)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SelectedNode resolves the selection against the current snapshot.
func (w *Workspace) SelectedNode() (model.Node, bool) {
	return w.resolve(w.sel.SelectedID())
}

// OpenNode resolves the file open in the editor.
func (w *Workspace) OpenNode() (model.Node, bool) {
	return w.resolve(w.sel.OpenID())
}

func (w *Workspace) resolve(id model.NodeID) (model.Node, bool) {
	if id == "" {
		return model.Node{}, false
	}
	return w.forest.Node(id)
}
