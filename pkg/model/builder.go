package model

import (
	"fmt"
	"strconv"
	"time"
)

// Builder assembles an initial forest for seeding and tests. Unlike the
// store operations it reports invalid input as errors.
type Builder struct {
	ed     *Editor
	nextID func() NodeID
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithIDs sets the id source used for new nodes.
func WithIDs(next func() NodeID) BuilderOption {
	return func(b *Builder) {
		b.nextID = next
	}
}

// SequentialIDs returns an id source yielding "1", "2", "3", ...
func SequentialIDs() func() NodeID {
	n := 0
	return func() NodeID {
		n++
		return NodeID(strconv.Itoa(n))
	}
}

// NewBuilder returns a builder over an empty forest. Ids default to
// SequentialIDs.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		ed:     Empty().Edit(),
		nextID: SequentialIDs(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddFolder appends a folder under parent ("" for top level).
func (b *Builder) AddFolder(parent NodeID, name string, modified time.Time, expanded bool) (NodeID, error) {
	return b.add(parent, Node{
		Name:       name,
		Kind:       KindFolder,
		ModifiedAt: modified,
		Expanded:   expanded,
	})
}

// AddFile appends a file under parent ("" for top level).
func (b *Builder) AddFile(parent NodeID, name, size string, modified time.Time) (NodeID, error) {
	return b.add(parent, Node{
		Name:       name,
		Kind:       KindFile,
		Size:       size,
		ModifiedAt: modified,
	})
}

func (b *Builder) add(parent NodeID, n Node) (NodeID, error) {
	if n.Name == "" {
		return "", ErrEmptyName
	}
	n.ID = b.nextID()
	if _, exists := b.ed.Node(n.ID); exists {
		return "", fmt.Errorf("%w: %s", ErrDuplicateID, n.ID)
	}

	if parent == "" {
		b.ed.Put(n)
		b.ed.SetRoots(append(b.ed.Roots(), n.ID))
		return n.ID, nil
	}

	p, ok := b.ed.Node(parent)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownParent, parent)
	}
	if !p.IsFolder() {
		return "", fmt.Errorf("%w: %s (%s)", ErrNotFolder, p.Name, parent)
	}
	p.Children = append(p.Children, n.ID)
	b.ed.Put(p)
	b.ed.Put(n)
	b.ed.SetParent(n.ID, parent)
	return n.ID, nil
}

// Build publishes the assembled forest. The builder keeps working on a
// private copy, so further adds do not affect the returned snapshot.
func (b *Builder) Build() *Forest {
	f := b.ed.Commit()
	b.ed = f.Edit()
	return f
}
