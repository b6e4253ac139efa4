// Package treestore implements the namespace operations: create, delete and
// toggle-expand. Every operation takes a snapshot and returns a snapshot;
// the input is never modified and untouched structure is shared.
//
// Operations are total. Invalid input (empty name, unknown id, a file where
// a folder is needed) returns the input snapshot itself.
package treestore

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/vanderheijden86/folio/pkg/debug"
	"github.com/vanderheijden86/folio/pkg/model"
)

// DefaultFileSize is the informational size given to newly created files.
const DefaultFileSize = "0 KB"

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator sets the source of fresh node ids.
func WithIDGenerator(next func() model.NodeID) Option {
	return func(s *Store) {
		s.nextID = next
	}
}

// WithClock sets the clock used for ModifiedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Store carries the id source and clock used by CreateFile. It holds no
// tree state of its own.
type Store struct {
	nextID func() model.NodeID
	now    func() time.Time
}

// New returns a Store using random UUIDs and the wall clock.
func New(opts ...Option) *Store {
	s := &Store{
		nextID: func() model.NodeID { return model.NodeID(uuid.NewString()) },
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateFile appends a new file named name to the top level of f.
// The target is always the top level, whatever is selected or expanded.
func (s *Store) CreateFile(f *model.Forest, name string) *model.Forest {
	if name == "" {
		debug.Log("create: empty name, no-op")
		return f
	}

	id := s.nextID()
	for id == "" || f.Has(id) {
		id = s.nextID()
	}

	ed := f.Edit()
	ed.Put(model.Node{
		ID:         id,
		Name:       name,
		Kind:       model.KindFile,
		Size:       DefaultFileSize,
		ModifiedAt: s.now(),
	})
	ed.SetRoots(append(ed.Roots(), id))

	debug.Log("create: %q as %s", name, id)
	return ed.Commit()
}

// DeleteNode removes id and, for folders, its whole subtree. The node is
// unlinked from its parent's children or from the top level.
func (s *Store) DeleteNode(f *model.Forest, id model.NodeID) *model.Forest {
	if !f.Has(id) {
		debug.Log("delete: %s not found, no-op", id)
		return f
	}

	ed := f.Edit()
	if parentID, ok := f.Parent(id); ok {
		parent, _ := f.Node(parentID)
		parent.Children = without(parent.Children, id)
		ed.Put(parent)
	} else {
		ed.SetRoots(without(f.Roots(), id))
	}

	doomed := f.Subtree(id)
	for _, gone := range doomed {
		ed.Remove(gone)
	}

	debug.Log("delete: %s (%d nodes)", id, len(doomed))
	return ed.Commit()
}

// ToggleExpand flips the expanded flag of folder id. Files and unknown ids
// are left alone.
func (s *Store) ToggleExpand(f *model.Forest, id model.NodeID) *model.Forest {
	n, ok := f.Node(id)
	if !ok || !n.IsFolder() {
		debug.Log("toggle: %s is not a folder, no-op", id)
		return f
	}

	n.Expanded = !n.Expanded
	ed := f.Edit()
	ed.Put(n)

	debug.Log("toggle: %s expanded=%v", id, n.Expanded)
	return ed.Commit()
}

func without(ids []model.NodeID, id model.NodeID) []model.NodeID {
	return slices.DeleteFunc(slices.Clone(ids), func(x model.NodeID) bool { return x == id })
}
