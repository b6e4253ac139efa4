// Package search derives display projections of a forest: the per-level
// name filter used by the tree view and the recent-files listing.
//
// Nothing here mutates the forest. Projections are recomputed from the
// snapshot each time they are needed.
package search

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/vanderheijden86/folio/pkg/metrics"
	"github.com/vanderheijden86/folio/pkg/model"
)

// Row is one visible line of a projection.
type Row struct {
	ID          model.NodeID
	Name        string
	Kind        model.Kind
	Size        string
	ModifiedAt  time.Time
	Depth       int
	Expanded    bool
	HasChildren bool
}

// Projection is the filtered, flattened view of a forest for one query.
type Projection struct {
	Query string
	Rows  []Row
}

// Index returns the row index of id, or -1 when id is not visible.
func (p Projection) Index(id model.NodeID) int {
	return slices.IndexFunc(p.Rows, func(r Row) bool { return r.ID == id })
}

// Contains reports whether id is visible in the projection.
func (p Projection) Contains(id model.NodeID) bool {
	return p.Index(id) >= 0
}

// Matches reports whether name contains query, ignoring case. The empty
// query matches every name.
func Matches(name, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(query))
}

// Level filters one sibling sequence: it keeps, in order, the ids whose own
// name matches query. Descendants play no part in the decision.
func Level(f *model.Forest, ids []model.NodeID, query string) []model.NodeID {
	out := make([]model.NodeID, 0, len(ids))
	for _, id := range ids {
		n, ok := f.Node(id)
		if ok && Matches(n.Name, query) {
			out = append(out, id)
		}
	}
	return out
}

// Project flattens f for display under query. Each level is filtered on
// its own; a folder appears only if its name matches, and its children are
// considered only when it appears and is expanded. A folder that does not
// match therefore hides its whole subtree, even matching descendants.
func Project(f *model.Forest, query string) Projection {
	defer metrics.Timer(metrics.Project)()

	p := Projection{Query: query}
	var walk func(ids []model.NodeID, depth int)
	walk = func(ids []model.NodeID, depth int) {
		for _, id := range Level(f, ids, query) {
			n, _ := f.Node(id)
			p.Rows = append(p.Rows, rowOf(n, depth))
			if n.IsFolder() && n.Expanded {
				walk(n.Children, depth+1)
			}
		}
	}
	walk(f.Roots(), 0)
	return p
}

// Recent lists files, newest first, ties kept in document order. limit <= 0
// means no limit.
func Recent(f *model.Forest, limit int) []Row {
	var rows []Row
	f.Walk(func(n model.Node, _ int) {
		if n.IsFile() {
			rows = append(rows, rowOf(n, 0))
		}
	})
	slices.SortStableFunc(rows, func(a, b Row) int {
		return cmp.Compare(b.ModifiedAt.UnixNano(), a.ModifiedAt.UnixNano())
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

// Rows resolves ids against f, skipping ids that are no longer present.
func Rows(f *model.Forest, ids []model.NodeID) []Row {
	rows := make([]Row, 0, len(ids))
	for _, id := range ids {
		if n, ok := f.Node(id); ok {
			rows = append(rows, rowOf(n, 0))
		}
	}
	return rows
}

func rowOf(n model.Node, depth int) Row {
	return Row{
		ID:          n.ID,
		Name:        n.Name,
		Kind:        n.Kind,
		Size:        n.Size,
		ModifiedAt:  n.ModifiedAt,
		Depth:       depth,
		Expanded:    n.Expanded,
		HasChildren: n.HasChildren(),
	}
}
