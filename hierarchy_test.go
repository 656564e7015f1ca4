package arbor

import (
	"slices"
	"testing"
)

// graphState captures what a rejected Reparent must leave unchanged.
type graphState struct {
	roots    []NodeID
	parents  map[NodeID]NodeID
	children map[NodeID][]NodeID
	dirty    map[NodeID]bool
}

func captureState(g *Graph) graphState {
	s := graphState{
		roots:    g.Roots(),
		parents:  make(map[NodeID]NodeID),
		children: make(map[NodeID][]NodeID),
		dirty:    make(map[NodeID]bool),
	}
	for id := range g.nodes {
		s.parents[id], _ = g.Parent(id)
		s.children[id] = g.Children(id)
		s.dirty[id] = g.IsDirty(id)
	}
	return s
}

func assertUnchanged(t *testing.T, g *Graph, before graphState) {
	t.Helper()
	after := captureState(g)
	if !slices.Equal(before.roots, after.roots) {
		t.Errorf("roots changed: %v -> %v", before.roots, after.roots)
	}
	if len(before.parents) != len(after.parents) {
		t.Fatalf("node count changed: %d -> %d", len(before.parents), len(after.parents))
	}
	for id, p := range before.parents {
		if after.parents[id] != p {
			t.Errorf("parent of %d changed: %d -> %d", id, p, after.parents[id])
		}
		if !slices.Equal(before.children[id], after.children[id]) {
			t.Errorf("children of %d changed: %v -> %v", id, before.children[id], after.children[id])
		}
		if before.dirty[id] != after.dirty[id] {
			t.Errorf("dirty flag of %d changed", id)
		}
	}
}

// --- Reparent failures ---

func TestReparentRejections(t *testing.T) {
	g := NewGraph()
	a := g.Create(NoParent, IdentityTransform())
	b := g.Create(a, IdentityTransform())
	c := g.Create(b, IdentityTransform())
	other := g.Create(NoParent, IdentityTransform())
	g.Recompute()

	tests := []struct {
		name          string
		child, parent NodeID
	}{
		{"unknown child", 999, other},
		{"unknown parent", b, 999},
		{"self", a, a},
		{"direct child as parent", a, b},
		{"grandchild as parent", a, c},
		{"unknown child to root", 999, NoParent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := captureState(g)
			if g.Reparent(tt.child, tt.parent) {
				t.Fatalf("Reparent(%d, %d) succeeded, want failure", tt.child, tt.parent)
			}
			assertUnchanged(t, g, before)
			if err := g.Validate(); err != nil {
				t.Fatal(err)
			}
		})
	}
}

// --- Reparent success ---

func TestReparentMovesBetweenParents(t *testing.T) {
	g := NewGraph()
	a := g.Create(NoParent, IdentityTransform())
	b := g.Create(NoParent, IdentityTransform())
	c := g.Create(a, IdentityTransform())

	if !g.Reparent(c, b) {
		t.Fatal("Reparent failed")
	}
	if g.NumChildren(a) != 0 {
		t.Errorf("old parent still has %d children", g.NumChildren(a))
	}
	if got := g.Children(b); !slices.Equal(got, []NodeID{c}) {
		t.Errorf("Children(b) = %v", got)
	}
	if p, _ := g.Parent(c); p != b {
		t.Errorf("Parent(c) = %d, want %d", p, b)
	}
	if err := g.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestReparentToRootAppends(t *testing.T) {
	g := NewGraph()
	a := g.Create(NoParent, IdentityTransform())
	b := g.Create(NoParent, IdentityTransform())
	c := g.Create(a, IdentityTransform())

	if !g.Reparent(c, NoParent) {
		t.Fatal("Reparent to root failed")
	}
	if got := g.Roots(); !slices.Equal(got, []NodeID{a, b, c}) {
		t.Errorf("Roots = %v, want [%d %d %d]", got, a, b, c)
	}
	if g.NumChildren(a) != 0 {
		t.Error("c still listed under a")
	}
}

func TestReparentRootToRootMovesToEnd(t *testing.T) {
	g := NewGraph()
	a := g.Create(NoParent, IdentityTransform())
	b := g.Create(NoParent, IdentityTransform())
	c := g.Create(NoParent, IdentityTransform())

	if !g.Reparent(a, NoParent) {
		t.Fatal("Reparent failed")
	}
	if got := g.Roots(); !slices.Equal(got, []NodeID{b, c, a}) {
		t.Errorf("Roots = %v, want [%d %d %d]", got, b, c, a)
	}
}

func TestReparentRootUnderRoot(t *testing.T) {
	g := NewGraph()
	a := g.Create(NoParent, IdentityTransform())
	b := g.Create(NoParent, IdentityTransform())
	c := g.Create(NoParent, IdentityTransform())

	if !g.Reparent(a, c) {
		t.Fatal("Reparent failed")
	}
	if got := g.Roots(); !slices.Equal(got, []NodeID{b, c}) {
		t.Errorf("Roots = %v, want [%d %d]", got, b, c)
	}
	if got := g.Children(c); !slices.Equal(got, []NodeID{a}) {
		t.Errorf("Children(c) = %v", got)
	}
}

func TestReparentSameParentMovesToEnd(t *testing.T) {
	g := NewGraph()
	p := g.Create(NoParent, IdentityTransform())
	x := g.Create(p, IdentityTransform())
	y := g.Create(p, IdentityTransform())

	if !g.Reparent(x, p) {
		t.Fatal("Reparent failed")
	}
	if got := g.Children(p); !slices.Equal(got, []NodeID{y, x}) {
		t.Errorf("Children = %v, want [%d %d]", got, y, x)
	}
}

func TestReparentDescendantOfSibling(t *testing.T) {
	// Moving a node under a sibling's descendant is legal.
	g := NewGraph()
	r := g.Create(NoParent, IdentityTransform())
	a := g.Create(r, IdentityTransform())
	b := g.Create(r, IdentityTransform())
	b1 := g.Create(b, IdentityTransform())

	if !g.Reparent(a, b1) {
		t.Fatal("Reparent under sibling's child failed")
	}
	if !g.Reparent(r, NoParent) {
		t.Fatal("Reparent of a root to the root set failed")
	}
	if err := g.Validate(); err != nil {
		t.Fatal(err)
	}
}

// --- Remove ---

func TestRemoveSubtree(t *testing.T) {
	g := NewGraph()
	r := g.Create(NoParent, IdentityTransform())
	a := g.Create(r, IdentityTransform())
	a1 := g.Create(a, IdentityTransform())
	a2 := g.Create(a1, IdentityTransform())
	b := g.Create(r, IdentityTransform())

	if !g.Remove(a) {
		t.Fatal("Remove failed")
	}
	for _, id := range []NodeID{a, a1, a2} {
		if g.Exists(id) {
			t.Errorf("node %d should be gone", id)
		}
	}
	if !g.Exists(r) || !g.Exists(b) {
		t.Error("ancestor and sibling must survive")
	}
	if got := g.Children(r); !slices.Equal(got, []NodeID{b}) {
		t.Errorf("Children(r) = %v, want [%d]", got, b)
	}
	if g.Len() != 2 {
		t.Errorf("Len = %d, want 2", g.Len())
	}
	if err := g.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestRemoveRoot(t *testing.T) {
	g := NewGraph()
	a := g.Create(NoParent, IdentityTransform())
	b := g.Create(NoParent, IdentityTransform())
	g.Create(a, IdentityTransform())

	if !g.Remove(a) {
		t.Fatal("Remove failed")
	}
	if got := g.Roots(); !slices.Equal(got, []NodeID{b}) {
		t.Errorf("Roots = %v, want [%d]", got, b)
	}
	if g.Len() != 1 {
		t.Errorf("Len = %d, want 1", g.Len())
	}
}

func TestRemoveUnknownAndTwice(t *testing.T) {
	g := NewGraph()
	n := g.Create(NoParent, IdentityTransform())
	if g.Remove(999) {
		t.Error("Remove(unknown) should fail")
	}
	if !g.Remove(n) {
		t.Fatal("first Remove failed")
	}
	if g.Remove(n) {
		t.Error("second Remove should fail")
	}
}

func TestRemovedIDsRejectedEverywhere(t *testing.T) {
	g := NewGraph()
	a := g.Create(NoParent, IdentityTransform())
	b := g.Create(NoParent, IdentityTransform())
	g.Remove(a)

	if g.Reparent(a, b) {
		t.Error("Reparent of removed child succeeded")
	}
	if g.Reparent(b, a) {
		t.Error("Reparent under removed parent succeeded")
	}
	if id := g.Create(a, IdentityTransform()); !slices.Contains(g.Roots(), id) {
		t.Error("Create under removed parent should fall back to root")
	}
}

func TestRemoveChildren(t *testing.T) {
	g := NewGraph()
	r := g.Create(NoParent, IdentityTransform())
	a := g.Create(r, IdentityTransform())
	g.Create(a, IdentityTransform())
	g.Create(r, IdentityTransform())

	if n := g.RemoveChildren(r); n != 3 {
		t.Errorf("RemoveChildren = %d, want 3", n)
	}
	if !g.Exists(r) || g.NumChildren(r) != 0 || g.Len() != 1 {
		t.Error("RemoveChildren should keep only the node itself")
	}
	if g.RemoveChildren(999) != 0 {
		t.Error("RemoveChildren(unknown) should return 0")
	}
}

// --- SetChildIndex ---

func TestSetChildIndex(t *testing.T) {
	g := NewGraph()
	p := g.Create(NoParent, IdentityTransform())
	a := g.Create(p, IdentityTransform())
	b := g.Create(p, IdentityTransform())
	c := g.Create(p, IdentityTransform())

	tests := []struct {
		name  string
		child NodeID
		index int
		want  []NodeID
		ok    bool
	}{
		{"last to first", c, 0, []NodeID{c, a, b}, true},
		{"first to last", c, 2, []NodeID{a, b, c}, true},
		{"same index", b, 1, []NodeID{a, b, c}, true},
		{"out of range", a, 3, []NodeID{a, b, c}, false},
		{"negative", a, -1, []NodeID{a, b, c}, false},
		{"not a child", p, 0, []NodeID{a, b, c}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if ok := g.SetChildIndex(p, tt.child, tt.index); ok != tt.ok {
				t.Errorf("SetChildIndex ok = %v, want %v", ok, tt.ok)
			}
			if got := g.Children(p); !slices.Equal(got, tt.want) {
				t.Errorf("Children = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetChildIndexRoots(t *testing.T) {
	g := NewGraph()
	a := g.Create(NoParent, IdentityTransform())
	b := g.Create(NoParent, IdentityTransform())
	if !g.SetChildIndex(NoParent, b, 0) {
		t.Fatal("SetChildIndex on roots failed")
	}
	g.Recompute()
	if got := g.Traversal(); !slices.Equal(got, []NodeID{b, a}) {
		t.Errorf("Traversal = %v, want [%d %d]", got, b, a)
	}
}
