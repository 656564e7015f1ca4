package arbor

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// RecomputeStats describes the last Recompute.
type RecomputeStats struct {
	Visited    int           // nodes visited (length of the traversal)
	Recomputed int           // nodes whose world matrix was rebuilt
	Duration   time.Duration // wall time, measured only in debug mode
}

// Traversal returns the depth-first pre-order sequence visited by the last
// Recompute: roots in root-set order, each parent before its children,
// children in list order. Nil before the first Recompute. The slice is a
// copy and does not change with later mutations.
func (g *Graph) Traversal() []NodeID {
	return cloneIDs(g.order)
}

// Walk calls fn for each node of the last traversal in order, with its
// cached world matrix, until fn returns false. Nodes removed since the
// Recompute are skipped. If fn calls Recompute, the walk finishes over the
// order it started with while reading the refreshed matrices.
func (g *Graph) Walk(fn func(id NodeID, world mgl64.Mat4) bool) {
	g.walking++
	defer func() { g.walking-- }()
	for _, id := range g.order {
		n, ok := g.nodes[id]
		if !ok {
			continue
		}
		if !fn(id, n.world) {
			return
		}
	}
}

// LastStats returns the counters of the last Recompute.
func (g *Graph) LastStats() RecomputeStats {
	return g.stats
}

// HasRecomputed reports whether Recompute has run at least once.
func (g *Graph) HasRecomputed() bool {
	return g.recomputed
}
