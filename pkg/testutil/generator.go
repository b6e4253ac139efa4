// Package testutil provides forest fixtures and generators for tests.
// Fixture builders are deterministic; the rapid generators drive
// property-based tests.
package testutil

import (
	"fmt"
	"time"

	"pgregory.net/rapid"

	"github.com/vanderheijden86/folio/pkg/model"
)

// BaseTime is the fixed modification time used by fixtures.
var BaseTime = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

// Tree builds a balanced namespace: breadth top-level folders, each holding
// breadth children per level down to depth. The deepest level holds files.
// All folders start expanded.
func Tree(depth, breadth int) *model.Forest {
	b := model.NewBuilder()
	var fill func(parent model.NodeID, level int, prefix string)
	fill = func(parent model.NodeID, level int, prefix string) {
		for i := 0; i < breadth; i++ {
			name := fmt.Sprintf("%s%d", prefix, i)
			modified := BaseTime.Add(time.Duration(level*breadth+i) * time.Minute)
			if level == depth {
				mustAdd(b.AddFile(parent, name+".txt", "1 KB", modified))
				continue
			}
			id := mustAdd(b.AddFolder(parent, "dir"+name, modified, true))
			fill(id, level+1, name+"-")
		}
	}
	fill("", 0, "")
	return b.Build()
}

// Chain builds a single path of nested folders depth deep, ending in a file.
func Chain(depth int) *model.Forest {
	b := model.NewBuilder()
	parent := model.NodeID("")
	for i := 0; i < depth; i++ {
		parent = mustAdd(b.AddFolder(parent, fmt.Sprintf("level%d", i), BaseTime, true))
	}
	mustAdd(b.AddFile(parent, "leaf.txt", "1 KB", BaseTime))
	return b.Build()
}

func mustAdd(id model.NodeID, err error) model.NodeID {
	if err != nil {
		panic(fmt.Sprintf("testutil: fixture build failed: %v", err))
	}
	return id
}

// NameGen draws short mixed-case names from a small alphabet so that
// substring queries hit often.
func NameGen() *rapid.Generator[string] {
	return rapid.StringMatching(`[A-Da-d]{1,5}`)
}

// ForestGen draws arbitrary valid forests of up to maxNodes nodes.
func ForestGen(maxNodes int) *rapid.Generator[*model.Forest] {
	return rapid.Custom(func(t *rapid.T) *model.Forest {
		b := model.NewBuilder()
		folders := []model.NodeID{""} // "" is the top level
		n := rapid.IntRange(0, maxNodes).Draw(t, "size")
		for i := 0; i < n; i++ {
			parent := rapid.SampledFrom(folders).Draw(t, "parent")
			name := NameGen().Draw(t, "name")
			modified := BaseTime.Add(time.Duration(rapid.IntRange(0, 1000).Draw(t, "age")) * time.Hour)
			if rapid.Bool().Draw(t, "folder") {
				id, err := b.AddFolder(parent, name, modified, rapid.Bool().Draw(t, "expanded"))
				if err != nil {
					t.Fatalf("AddFolder: %v", err)
				}
				folders = append(folders, id)
				continue
			}
			if _, err := b.AddFile(parent, name, "1 KB", modified); err != nil {
				t.Fatalf("AddFile: %v", err)
			}
		}
		return b.Build()
	})
}

// IDs returns every id in f in document order.
func IDs(f *model.Forest) []model.NodeID {
	var ids []model.NodeID
	f.Walk(func(n model.Node, _ int) {
		ids = append(ids, n.ID)
	})
	return ids
}

// FolderIDs returns the folder ids of f in document order.
func FolderIDs(f *model.Forest) []model.NodeID {
	var ids []model.NodeID
	f.Walk(func(n model.Node, _ int) {
		if n.IsFolder() {
			ids = append(ids, n.ID)
		}
	})
	return ids
}

// PickID draws an id present in f, or an absent one when f is empty or the
// draw says so.
func PickID(t *rapid.T, f *model.Forest, label string) model.NodeID {
	ids := IDs(f)
	if len(ids) == 0 || rapid.IntRange(0, 9).Draw(t, label+"-absent") == 0 {
		return model.NodeID("absent-" + rapid.StringMatching(`[0-9]{1,3}`).Draw(t, label+"-suffix"))
	}
	return rapid.SampledFrom(ids).Draw(t, label)
}
