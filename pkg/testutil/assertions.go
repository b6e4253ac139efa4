package testutil

import (
	"testing"

	"github.com/vanderheijden86/folio/pkg/model"
)

// AssertValid fails the test if f violates a forest invariant.
func AssertValid(t testing.TB, f *model.Forest) {
	t.Helper()
	if err := f.Validate(); err != nil {
		t.Fatalf("invalid forest: %v", err)
	}
}

// AssertNodeCount fails the test if f does not hold exactly want nodes.
func AssertNodeCount(t testing.TB, f *model.Forest, want int) {
	t.Helper()
	if got := f.Len(); got != want {
		t.Errorf("expected %d nodes, got %d", want, got)
	}
}

// AssertAbsent fails the test if any of ids is still present in f.
func AssertAbsent(t testing.TB, f *model.Forest, ids ...model.NodeID) {
	t.Helper()
	for _, id := range ids {
		if f.Has(id) {
			t.Errorf("expected %s to be gone", id)
		}
	}
}

// MustFind returns the id of the first node named name, failing if absent.
func MustFind(t testing.TB, f *model.Forest, name string) model.NodeID {
	t.Helper()
	id, ok := f.FindByName(name)
	if !ok {
		t.Fatalf("no node named %q", name)
	}
	return id
}

// Names resolves ids to names, using "?" for ids not in f.
func Names(f *model.Forest, ids []model.NodeID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		n, ok := f.Node(id)
		if !ok {
			out = append(out, "?")
			continue
		}
		out = append(out, n.Name)
	}
	return out
}
