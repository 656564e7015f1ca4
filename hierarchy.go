package arbor

// --- Tree manipulation ---

// Reparent moves child under newParent, or to the end of the root set when
// newParent is NoParent. The child is appended to the end of the target
// list, even when the target is its current parent.
//
// Reparent reports false and leaves the graph untouched when child is
// unknown, newParent is unknown, newParent is child, or newParent lies in
// child's subtree (the move would create a cycle). On success only child is
// marked dirty; its descendants inherit the recompute.
func (g *Graph) Reparent(child, newParent NodeID) bool {
	c, ok := g.nodes[child]
	if !ok {
		g.debugReject("reparent", "unknown child", child, newParent)
		return false
	}

	var p *node
	if newParent != NoParent {
		if newParent == child {
			g.debugReject("reparent", "node cannot parent itself", child, newParent)
			return false
		}
		if p, ok = g.nodes[newParent]; !ok {
			g.debugReject("reparent", "unknown parent", child, newParent)
			return false
		}
		if g.inSubtree(c, newParent) {
			g.debugReject("reparent", "parent is a descendant of child", child, newParent)
			return false
		}
	}

	g.detach(c)
	if p != nil {
		g.attach(c, p)
	} else {
		g.roots = append(g.roots, child)
	}
	c.dirty = true
	return true
}

// Remove deletes the node and its entire subtree. Reports false if id is
// unknown. IDs of removed nodes are never reissued.
func (g *Graph) Remove(id NodeID) bool {
	n, ok := g.nodes[id]
	if !ok {
		return false
	}
	for _, cid := range n.children {
		g.removeSubtree(cid)
	}
	n.children = nil
	g.detach(n)
	delete(g.nodes, id)
	return true
}

// RemoveChildren deletes every descendant of id but keeps id itself.
// Returns the number of nodes removed; 0 for unknown IDs.
func (g *Graph) RemoveChildren(id NodeID) int {
	n, ok := g.nodes[id]
	if !ok {
		return 0
	}
	before := len(g.nodes)
	for _, cid := range n.children {
		g.removeSubtree(cid)
	}
	n.children = n.children[:0]
	return before - len(g.nodes)
}

// SetChildIndex moves child to index among parent's children, shifting the
// siblings in between. Pass NoParent as parent to reorder the root set.
// Reports false if child is not listed under parent or index is out of
// range. World matrices are unaffected; the new order shows in the next
// traversal.
func (g *Graph) SetChildIndex(parent, child NodeID, index int) bool {
	var list []NodeID
	if parent == NoParent {
		list = g.roots
	} else {
		p, ok := g.nodes[parent]
		if !ok {
			return false
		}
		list = p.children
	}
	if index < 0 || index >= len(list) {
		return false
	}
	oldIndex := indexOf(list, child)
	if oldIndex < 0 {
		return false
	}
	if oldIndex == index {
		return true
	}
	// Shift elements to fill the gap and open the target slot.
	if oldIndex < index {
		copy(list[oldIndex:], list[oldIndex+1:index+1])
	} else {
		copy(list[index+1:], list[index:oldIndex])
	}
	list[index] = child
	return true
}

// --- Helpers ---

// attach appends n to p's children. n must already be detached.
func (g *Graph) attach(n, p *node) {
	n.parent = p.id
	p.children = append(p.children, n.id)
	if g.cfg.Debug {
		g.debugCheckTreeDepth(n)
		g.debugCheckChildCount(p)
	}
}

// detach removes n from its parent's child list or from the root set and
// clears n.parent.
func (g *Graph) detach(n *node) {
	if n.parent == NoParent {
		g.roots = removeID(g.roots, n.id)
		return
	}
	if p, ok := g.nodes[n.parent]; ok {
		p.children = removeID(p.children, n.id)
	}
	n.parent = NoParent
}

// removeSubtree deletes id and its descendants, children first. Links from
// the subtree's own parent are left for the caller to clear.
func (g *Graph) removeSubtree(id NodeID) {
	n, ok := g.nodes[id]
	if !ok {
		return
	}
	for _, cid := range n.children {
		g.removeSubtree(cid)
	}
	n.children = nil
	delete(g.nodes, id)
}

// inSubtree reports whether target is a strict descendant of root. Only
// root's subtree is visited.
func (g *Graph) inSubtree(root *node, target NodeID) bool {
	stack := append([]NodeID(nil), root.children...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == target {
			return true
		}
		if n, ok := g.nodes[id]; ok {
			stack = append(stack, n.children...)
		}
	}
	return false
}

// depth returns the number of nodes from n up to its root, inclusive.
func (g *Graph) depth(n *node) int {
	d := 1
	for p := n.parent; p != NoParent; {
		pn, ok := g.nodes[p]
		if !ok {
			break
		}
		d++
		p = pn.parent
	}
	return d
}

func indexOf(ids []NodeID, id NodeID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

// removeID removes the first occurrence of id, preserving order.
func removeID(ids []NodeID, id NodeID) []NodeID {
	i := indexOf(ids, id)
	if i < 0 {
		return ids
	}
	copy(ids[i:], ids[i+1:])
	ids[len(ids)-1] = 0
	return ids[:len(ids)-1]
}
