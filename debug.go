package arbor

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
)

// debugReject logs a refused mutation. Only active in debug mode.
func (g *Graph) debugReject(op, reason string, child, parent NodeID) {
	if !g.cfg.Debug {
		return
	}
	g.logger.Warn("arbor: "+op+" rejected",
		"reason", reason, "child", child, "parent", parent)
}

// debugCheckTreeDepth warns if n sits deeper than the configured threshold.
func (g *Graph) debugCheckTreeDepth(n *node) {
	if d := g.depth(n); d > g.cfg.MaxTreeDepth {
		g.logger.Warn("arbor: tree depth exceeds threshold",
			"node", n.id, "depth", d, "threshold", g.cfg.MaxTreeDepth)
	}
}

// debugCheckChildCount warns if p has more children than the threshold.
func (g *Graph) debugCheckChildCount(p *node) {
	if c := len(p.children); c > g.cfg.MaxChildCount {
		g.logger.Warn("arbor: child count exceeds threshold",
			"node", p.id, "children", c, "threshold", g.cfg.MaxChildCount)
	}
}

func (g *Graph) debugLogStats() {
	g.logger.Debug("arbor: recompute",
		"visited", g.stats.Visited,
		"recomputed", g.stats.Recomputed,
		"took", g.stats.Duration)
}

// Validate checks the structural invariants: every root is parentless and
// listed once, every other node is listed exactly once by an existing
// parent, child links point back to their parent, and every node is
// reachable from the root set without revisiting (no cycles). Returns nil
// when the hierarchy is consistent. In debug mode the offending record is
// dumped to the logger.
func (g *Graph) Validate() error {
	seenRoot := make(map[NodeID]bool, len(g.roots))
	for _, id := range g.roots {
		n, ok := g.nodes[id]
		if !ok {
			return g.invalid(nil, "root %d does not exist", id)
		}
		if n.parent != NoParent {
			return g.invalid(n, "root %d has parent %d", id, n.parent)
		}
		if seenRoot[id] {
			return g.invalid(n, "root %d listed twice", id)
		}
		seenRoot[id] = true
	}

	for id, n := range g.nodes {
		if n.id != id {
			return g.invalid(n, "record keyed %d carries id %d", id, n.id)
		}
		for _, cid := range n.children {
			c, ok := g.nodes[cid]
			if !ok {
				return g.invalid(n, "node %d lists unknown child %d", id, cid)
			}
			if c.parent != id {
				return g.invalid(c, "child %d of %d points at parent %d", cid, id, c.parent)
			}
		}
		if n.parent == NoParent {
			if !seenRoot[id] {
				return g.invalid(n, "parentless node %d missing from root set", id)
			}
			continue
		}
		if seenRoot[id] {
			return g.invalid(n, "node %d has parent %d but is in the root set", id, n.parent)
		}
		p, ok := g.nodes[n.parent]
		if !ok {
			return g.invalid(n, "node %d has unknown parent %d", id, n.parent)
		}
		count := 0
		for _, cid := range p.children {
			if cid == id {
				count++
			}
		}
		if count != 1 {
			return g.invalid(n, "node %d listed %d times by parent %d", id, count, n.parent)
		}
	}

	visited := make(map[NodeID]bool, len(g.nodes))
	stack := cloneIDs(g.roots)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[id] {
			return g.invalid(g.nodes[id], "node %d reached twice", id)
		}
		visited[id] = true
		stack = append(stack, g.nodes[id].children...)
	}
	if len(visited) != len(g.nodes) {
		return errors.Errorf("arbor: %d of %d nodes unreachable from the root set",
			len(g.nodes)-len(visited), len(g.nodes))
	}
	return nil
}

func (g *Graph) invalid(n *node, format string, args ...any) error {
	err := errors.Errorf("arbor: "+format, args...)
	if g.cfg.Debug && n != nil {
		g.logger.Error(err.Error(), "record", spew.Sdump(n))
	}
	return err
}
