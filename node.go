package arbor

import "github.com/go-gl/mathgl/mgl64"

// --- ID allocation ---

// idAllocator issues NodeIDs starting at 1. Plain counter, no atomics: the
// graph is single-threaded.
type idAllocator struct {
	last NodeID
}

func (a *idAllocator) next() NodeID {
	a.last++
	return a.last
}

// --- Node record ---

// node is the table's record. Parent and children are IDs into the same
// table, never pointers, so removal cannot leave a dangling reference.
type node struct {
	id       NodeID
	parent   NodeID // NoParent for roots
	children []NodeID

	local Transform

	// Computed, updated by Recompute
	world mgl64.Mat4
	dirty bool
}

// --- Table operations ---

// Create inserts a new node with the given local transform and returns its
// ID. The node is appended to parent's children when parent exists;
// otherwise (NoParent or an unknown ID) it is appended to the root set.
// The new node is dirty until the next Recompute.
func (g *Graph) Create(parent NodeID, local Transform) NodeID {
	// Look up the parent before inserting: the issued ID is never its own parent.
	p, ok := g.nodes[parent]

	id := g.ids.next()
	n := &node{
		id:    id,
		local: local,
		world: identityMatrix,
		dirty: true,
	}
	g.nodes[id] = n

	if ok && parent != NoParent {
		g.attach(n, p)
	} else {
		if parent != NoParent && g.cfg.Debug {
			g.logger.Warn("arbor: create with unknown parent, creating root",
				"node", id, "parent", parent)
		}
		g.roots = append(g.roots, id)
	}
	return id
}

// Exists reports whether id names a live node.
func (g *Graph) Exists(id NodeID) bool {
	_, ok := g.nodes[id]
	return ok
}

// SetLocal replaces the node's local transform and marks it dirty.
// No-op if id is unknown.
func (g *Graph) SetLocal(id NodeID, t Transform) {
	n, ok := g.nodes[id]
	if !ok {
		return
	}
	n.local = t
	n.dirty = true
}

// Local returns the node's current local transform.
func (g *Graph) Local(id NodeID) (Transform, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return Transform{}, false
	}
	return n.local, true
}

// World returns the world matrix cached by the last Recompute. Mutations
// made since then are not reflected. A node that has never been recomputed
// reports the identity matrix.
func (g *Graph) World(id NodeID) (mgl64.Mat4, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return mgl64.Mat4{}, false
	}
	return n.world, true
}

// SetPosition replaces only the local position. No-op if id is unknown.
func (g *Graph) SetPosition(id NodeID, p mgl64.Vec3) {
	if n, ok := g.nodes[id]; ok {
		g.SetLocal(id, n.local.WithPosition(p))
	}
}

// SetRotation replaces only the local rotation. No-op if id is unknown.
func (g *Graph) SetRotation(id NodeID, q mgl64.Quat) {
	if n, ok := g.nodes[id]; ok {
		g.SetLocal(id, n.local.WithRotation(q))
	}
}

// SetScale replaces only the local scale. No-op if id is unknown.
func (g *Graph) SetScale(id NodeID, s mgl64.Vec3) {
	if n, ok := g.nodes[id]; ok {
		g.SetLocal(id, n.local.WithScale(s))
	}
}

// MarkDirty forces the node (and, through inheritance, its subtree) to be
// recomputed on the next Recompute. No-op if id is unknown.
func (g *Graph) MarkDirty(id NodeID) {
	if n, ok := g.nodes[id]; ok {
		n.dirty = true
	}
}

// IsDirty reports whether the node's own dirty flag is set. A clean node may
// still be recomputed when an ancestor is dirty.
func (g *Graph) IsDirty(id NodeID) bool {
	n, ok := g.nodes[id]
	return ok && n.dirty
}

// Parent returns the node's parent, or NoParent for roots. ok is false for
// unknown IDs.
func (g *Graph) Parent(id NodeID) (parent NodeID, ok bool) {
	n, ok := g.nodes[id]
	if !ok {
		return NoParent, false
	}
	return n.parent, true
}

// Children returns a copy of the node's child list in order.
func (g *Graph) Children(id NodeID) []NodeID {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	return cloneIDs(n.children)
}

// NumChildren returns the number of direct children, 0 for unknown IDs.
func (g *Graph) NumChildren(id NodeID) int {
	if n, ok := g.nodes[id]; ok {
		return len(n.children)
	}
	return 0
}
