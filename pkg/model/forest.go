package model

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Validation and construction errors.
var (
	ErrEmptyName     = errors.New("empty name")
	ErrUnknownParent = errors.New("unknown parent")
	ErrNotFolder     = errors.New("parent is not a folder")
	ErrDuplicateID   = errors.New("duplicate id")
	ErrUnknownKind   = errors.New("unknown node kind")
	ErrCorrupt       = errors.New("forest invariant violated")
)

// Forest is an immutable snapshot of the namespace: an arena of node
// records keyed by id, a parent index, and the ordered top-level ids.
//
// Snapshots derived through Edit share every map, slice and record that the
// edit did not touch, so holding on to old snapshots is cheap.
type Forest struct {
	nodes   map[NodeID]*Node
	parents map[NodeID]NodeID // root ids have no entry
	roots   []NodeID
}

var empty = &Forest{
	nodes:   map[NodeID]*Node{},
	parents: map[NodeID]NodeID{},
}

// Empty returns the forest with no nodes.
func Empty() *Forest {
	return empty
}

// Len returns the total number of nodes.
func (f *Forest) Len() int {
	return len(f.nodes)
}

// Roots returns the top-level ids in display order.
func (f *Forest) Roots() []NodeID {
	return slices.Clone(f.roots)
}

// Has reports whether id is present anywhere in the forest.
func (f *Forest) Has(id NodeID) bool {
	_, ok := f.nodes[id]
	return ok
}

// Node resolves id to a copy of its record.
func (f *Forest) Node(id NodeID) (Node, bool) {
	n, ok := f.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// Children returns the ordered child ids of a folder (nil for files and
// unknown ids).
func (f *Forest) Children(id NodeID) []NodeID {
	n, ok := f.nodes[id]
	if !ok {
		return nil
	}
	return slices.Clone(n.Children)
}

// Parent returns the parent of id. ok is false for top-level and unknown ids.
func (f *Forest) Parent(id NodeID) (NodeID, bool) {
	p, ok := f.parents[id]
	return p, ok
}

// Depth returns the nesting level of id (0 for top level), or -1 when absent.
func (f *Forest) Depth(id NodeID) int {
	if !f.Has(id) {
		return -1
	}
	depth := 0
	for {
		p, ok := f.parents[id]
		if !ok {
			return depth
		}
		depth++
		id = p
	}
}

// Walk visits every node depth-first in document order.
func (f *Forest) Walk(fn func(n Node, depth int)) {
	var walk func(ids []NodeID, depth int)
	walk = func(ids []NodeID, depth int) {
		for _, id := range ids {
			n, ok := f.nodes[id]
			if !ok {
				continue
			}
			fn(*n, depth)
			walk(n.Children, depth+1)
		}
	}
	walk(f.roots, 0)
}

// Subtree returns id followed by all of its descendants in document order.
// It returns nil when id is absent.
func (f *Forest) Subtree(id NodeID) []NodeID {
	n, ok := f.nodes[id]
	if !ok {
		return nil
	}
	out := []NodeID{id}
	for _, child := range n.Children {
		out = append(out, f.Subtree(child)...)
	}
	return out
}

// FindByName returns the first node named name in document order.
func (f *Forest) FindByName(name string) (NodeID, bool) {
	var found NodeID
	f.Walk(func(n Node, _ int) {
		if found == "" && n.Name == name {
			found = n.ID
		}
	})
	return found, found != ""
}

// Equal reports structural equality: same top-level order and identical
// records for every id.
func (f *Forest) Equal(o *Forest) bool {
	if f == o {
		return true
	}
	if f == nil || o == nil {
		return false
	}
	if len(f.nodes) != len(o.nodes) || !slices.Equal(f.roots, o.roots) {
		return false
	}
	for id, n := range f.nodes {
		m, ok := o.nodes[id]
		if !ok || !n.equal(*m) {
			return false
		}
	}
	return true
}

// Validate checks the structural invariants: every node reachable from
// exactly one place, no cycles, files childless, parent index consistent.
func (f *Forest) Validate() error {
	seen := make(map[NodeID]bool, len(f.nodes))
	var visit func(id, parent NodeID) error
	visit = func(id, parent NodeID) error {
		if seen[id] {
			return fmt.Errorf("%w: %s reachable twice", ErrCorrupt, id)
		}
		seen[id] = true
		n, ok := f.nodes[id]
		if !ok {
			return fmt.Errorf("%w: dangling id %s", ErrCorrupt, id)
		}
		if n.ID != id {
			return fmt.Errorf("%w: record %s stored under %s", ErrCorrupt, n.ID, id)
		}
		if n.Name == "" {
			return fmt.Errorf("%w: %s: %w", ErrCorrupt, id, ErrEmptyName)
		}
		if n.IsFile() && len(n.Children) > 0 {
			return fmt.Errorf("%w: file %s has children", ErrCorrupt, id)
		}
		got, hasParent := f.parents[id]
		switch {
		case parent == "" && hasParent:
			return fmt.Errorf("%w: root %s has parent %s", ErrCorrupt, id, got)
		case parent != "" && got != parent:
			return fmt.Errorf("%w: %s indexed under %q, found under %s", ErrCorrupt, id, got, parent)
		}
		for _, child := range n.Children {
			if err := visit(child, id); err != nil {
				return err
			}
		}
		return nil
	}
	for _, id := range f.roots {
		if err := visit(id, ""); err != nil {
			return err
		}
	}
	if len(seen) != len(f.nodes) {
		return fmt.Errorf("%w: %d of %d nodes unreachable", ErrCorrupt, len(f.nodes)-len(seen), len(f.nodes))
	}
	if len(f.parents) != len(f.nodes)-len(f.roots) {
		return fmt.Errorf("%w: parent index has %d entries for %d children", ErrCorrupt, len(f.parents), len(f.nodes)-len(f.roots))
	}
	return nil
}

// Editor derives a new snapshot from a base forest. Each of the base's maps
// and the roots slice is copied on first write only.
type Editor struct {
	base    *Forest
	nodes   map[NodeID]*Node
	parents map[NodeID]NodeID
	roots   []NodeID

	nodesOwned, parentsOwned, rootsOwned bool
}

// Edit starts a copy-on-write edit of f. f itself is never modified.
func (f *Forest) Edit() *Editor {
	return &Editor{
		base:    f,
		nodes:   f.nodes,
		parents: f.parents,
		roots:   f.roots,
	}
}

// Node resolves id against the edit in progress.
func (e *Editor) Node(id NodeID) (Node, bool) {
	n, ok := e.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// Put inserts or replaces the record for n.ID with a fresh record.
func (e *Editor) Put(n Node) {
	if !e.nodesOwned {
		e.nodes = maps.Clone(e.nodes)
		e.nodesOwned = true
	}
	n.Children = slices.Clone(n.Children)
	e.nodes[n.ID] = &n
}

// Remove drops the record and parent entry for id. Callers are responsible
// for unlinking id from its parent or from the roots.
func (e *Editor) Remove(id NodeID) {
	if _, ok := e.nodes[id]; ok {
		if !e.nodesOwned {
			e.nodes = maps.Clone(e.nodes)
			e.nodesOwned = true
		}
		delete(e.nodes, id)
	}
	e.SetParent(id, "")
}

// SetParent records parent as the parent of child; "" clears the entry.
func (e *Editor) SetParent(child, parent NodeID) {
	if cur, ok := e.parents[child]; (ok && cur == parent) || (!ok && parent == "") {
		return
	}
	if !e.parentsOwned {
		e.parents = maps.Clone(e.parents)
		e.parentsOwned = true
	}
	if parent == "" {
		delete(e.parents, child)
		return
	}
	e.parents[child] = parent
}

// Roots returns the top-level ids of the edit in progress.
func (e *Editor) Roots() []NodeID {
	return slices.Clone(e.roots)
}

// SetRoots replaces the top-level sequence.
func (e *Editor) SetRoots(ids []NodeID) {
	e.roots = slices.Clone(ids)
	e.rootsOwned = true
}

// Commit publishes the edit. With no writes it returns the base snapshot.
// The editor must not be used afterwards.
func (e *Editor) Commit() *Forest {
	if !e.nodesOwned && !e.parentsOwned && !e.rootsOwned {
		return e.base
	}
	return &Forest{nodes: e.nodes, parents: e.parents, roots: e.roots}
}
