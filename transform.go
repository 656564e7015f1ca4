package arbor

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Recompute refreshes cached world matrices. Roots are walked in root-set
// order and each tree depth-first, pre-order, children in list order. A node
// is recomputed when its own dirty flag is set or its parent was recomputed
// in this pass; otherwise its cached matrix is left as is. The visitation
// order is recorded for Traversal.
//
// Call once per frame after all mutations.
func (g *Graph) Recompute() {
	var t0 time.Time
	if g.cfg.Debug {
		t0 = time.Now()
	}

	if g.walking > 0 {
		// A Walk is ranging over the current buffer.
		g.order = make([]NodeID, 0, cap(g.order))
	} else {
		g.order = g.order[:0]
	}
	g.stats = RecomputeStats{}
	for _, id := range g.roots {
		if n, ok := g.nodes[id]; ok {
			g.updateWorldTransform(n, identityMatrix, false)
		}
	}
	g.stats.Visited = len(g.order)
	g.recomputed = true

	if g.cfg.Debug {
		g.stats.Duration = time.Since(t0)
		g.debugLogStats()
	}
}

// updateWorldTransform recomputes n's world matrix when n is dirty or
// parentRecomputed is set, then descends into the children.
func (g *Graph) updateWorldTransform(n *node, parentWorld mgl64.Mat4, parentRecomputed bool) {
	g.order = append(g.order, n.id)

	recompute := n.dirty || parentRecomputed
	if recompute {
		n.world = parentWorld.Mul4(n.local.Matrix())
		n.dirty = false
		g.stats.Recomputed++
	}

	for _, cid := range n.children {
		if c, ok := g.nodes[cid]; ok {
			g.updateWorldTransform(c, n.world, recompute)
		}
	}
}

// --- Coordinate conversion ---

// WorldPosition returns the translation column of the cached world matrix.
func (g *Graph) WorldPosition(id NodeID) (mgl64.Vec3, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return mgl64.Vec3{}, false
	}
	return n.world.Col(3).Vec3(), true
}

// LocalToWorld converts a point in the node's local space to world space
// using the cached world matrix.
func (g *Graph) LocalToWorld(id NodeID, p mgl64.Vec3) (mgl64.Vec3, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return mgl64.Vec3{}, false
	}
	return mgl64.TransformCoordinate(p, n.world), true
}

// WorldToLocal converts a world-space point into the node's local space.
// Reports false for unknown IDs and for singular world matrices (zero
// scale).
func (g *Graph) WorldToLocal(id NodeID, p mgl64.Vec3) (mgl64.Vec3, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return mgl64.Vec3{}, false
	}
	if det := n.world.Det(); det > -1e-12 && det < 1e-12 {
		return mgl64.Vec3{}, false
	}
	return mgl64.TransformCoordinate(p, n.world.Inv()), true
}
