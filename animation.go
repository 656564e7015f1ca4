package arbor

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates one component of a node's local transform. Create one
// via TweenPosition, TweenScale or TweenRotation and call Update(dt) each
// frame before Recompute. Each update writes through SetLocal, so the node
// is marked dirty like any other mutation. If the target node is removed,
// the group stops immediately.
//
// There is no global animation manager; users call Update themselves.
type TweenGroup struct {
	tweens [3]*gween.Tween
	count  int
	apply  func(vals [3]float64)
	graph  *Graph
	target NodeID
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values to the
// target node. If the target no longer exists, Done is set and nothing is
// written.
func (tg *TweenGroup) Update(dt float32) {
	if tg.Done {
		return
	}
	if !tg.graph.Exists(tg.target) {
		tg.Done = true
		return
	}

	var vals [3]float64
	allDone := true
	for i := 0; i < tg.count; i++ {
		val, finished := tg.tweens[i].Update(dt)
		vals[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	tg.Done = allDone
	tg.apply(vals)
}

// Target returns the animated node.
func (tg *TweenGroup) Target() NodeID {
	return tg.target
}

// TweenPosition creates a TweenGroup that moves the node's local position to
// `to` over duration seconds using the easing function. Returns a finished
// group if id is unknown.
func TweenPosition(g *Graph, id NodeID, to mgl64.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	local, ok := g.Local(id)
	if !ok {
		return &TweenGroup{graph: g, target: id, Done: true}
	}
	tg := newVec3Tween(g, id, local.Position, to, duration, fn)
	tg.apply = func(v [3]float64) {
		g.SetPosition(id, mgl64.Vec3(v))
	}
	return tg
}

// TweenScale creates a TweenGroup that animates the node's local scale to
// `to` over duration seconds using the easing function.
func TweenScale(g *Graph, id NodeID, to mgl64.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	local, ok := g.Local(id)
	if !ok {
		return &TweenGroup{graph: g, target: id, Done: true}
	}
	tg := newVec3Tween(g, id, local.Scale, to, duration, fn)
	tg.apply = func(v [3]float64) {
		g.SetScale(id, mgl64.Vec3(v))
	}
	return tg
}

// TweenRotation creates a TweenGroup that rotates the node from its current
// local rotation to `to` along the shortest arc. The easing function drives
// the slerp parameter.
func TweenRotation(g *Graph, id NodeID, to mgl64.Quat, duration float32, fn ease.TweenFunc) *TweenGroup {
	local, ok := g.Local(id)
	if !ok {
		return &TweenGroup{graph: g, target: id, Done: true}
	}
	from := local.Rotation
	if from.Dot(to) < 0 {
		to = to.Scale(-1)
	}
	tg := &TweenGroup{count: 1, graph: g, target: id}
	tg.tweens[0] = gween.New(0, 1, duration, fn)
	tg.apply = func(v [3]float64) {
		g.SetRotation(id, mgl64.QuatSlerp(from, to, v[0]).Normalize())
	}
	return tg
}

func newVec3Tween(g *Graph, id NodeID, from, to mgl64.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	tg := &TweenGroup{count: 3, graph: g, target: id}
	for i := 0; i < 3; i++ {
		tg.tweens[i] = gween.New(float32(from[i]), float32(to[i]), duration, fn)
	}
	return tg
}
