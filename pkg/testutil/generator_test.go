package testutil

import (
	"testing"

	"pgregory.net/rapid"
)

func TestTreeFixture(t *testing.T) {
	f := Tree(2, 3)
	AssertValid(t, f)
	// 3 + 9 folders, 27 files
	AssertNodeCount(t, f, 39)
	if len(f.Roots()) != 3 {
		t.Errorf("expected 3 roots, got %d", len(f.Roots()))
	}
}

func TestChainFixture(t *testing.T) {
	f := Chain(5)
	AssertValid(t, f)
	leaf := MustFind(t, f, "leaf.txt")
	if f.Depth(leaf) != 5 {
		t.Errorf("expected leaf at depth 5, got %d", f.Depth(leaf))
	}
}

func TestForestGenProducesValidForests(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		f := ForestGen(40).Draw(rt, "forest")
		if err := f.Validate(); err != nil {
			rt.Fatalf("generated invalid forest: %v", err)
		}
		if len(IDs(f)) != f.Len() {
			rt.Fatalf("walk saw %d of %d nodes", len(IDs(f)), f.Len())
		}
	})
}
