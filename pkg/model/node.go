// Package model defines the namespace data types: nodes and the immutable
// forest snapshot that owns them.
package model

import (
	"fmt"
	"time"
)

// NodeID is an opaque identifier, unique across a whole forest.
type NodeID string

// Kind distinguishes files from folders.
type Kind int

const (
	KindFile Kind = iota
	KindFolder
)

// String returns the text form used in seeds and dumps ("file" / "folder").
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindFolder:
		return "folder"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind parses "file" or "folder".
func ParseKind(s string) (Kind, error) {
	switch s {
	case "file":
		return KindFile, nil
	case "folder":
		return KindFolder, nil
	default:
		return KindFile, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Node is a single file or folder record.
//
// Records are owned by a Forest and never modified once the forest is
// published; operations that change a node publish a new record instead.
// Values handed out by Forest accessors share the Children slice with the
// record and must be treated as read-only.
type Node struct {
	ID         NodeID    `json:"id"`
	Name       string    `json:"name"`
	Kind       Kind      `json:"type"`
	Size       string    `json:"size,omitempty"`
	ModifiedAt time.Time `json:"modified"`
	Expanded   bool      `json:"expanded,omitempty"` // display state, folders only
	Children   []NodeID  `json:"children,omitempty"` // always empty for files
}

// IsFolder reports whether the node is a folder.
func (n Node) IsFolder() bool {
	return n.Kind == KindFolder
}

// IsFile reports whether the node is a file.
func (n Node) IsFile() bool {
	return n.Kind == KindFile
}

// HasChildren reports whether a folder has at least one child.
func (n Node) HasChildren() bool {
	return len(n.Children) > 0
}

func (n Node) equal(o Node) bool {
	if n.ID != o.ID || n.Name != o.Name || n.Kind != o.Kind || n.Size != o.Size ||
		n.Expanded != o.Expanded || !n.ModifiedAt.Equal(o.ModifiedAt) ||
		len(n.Children) != len(o.Children) {
		return false
	}
	for i := range n.Children {
		if n.Children[i] != o.Children[i] {
			return false
		}
	}
	return true
}
