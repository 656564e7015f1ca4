package arbor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween/ease"
)

func assertVec3Within(t *testing.T, name string, got, want mgl64.Vec3, tol float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > tol {
			t.Errorf("%s = %v, want ~%v", name, got, want)
			return
		}
	}
}

func TestTweenPositionReachesTarget(t *testing.T) {
	g := NewGraph()
	n := g.Create(NoParent, TransformAt(10, 20, 0))
	g.Recompute()

	tw := TweenPosition(g, n, mgl64.Vec3{100, 200, -50}, 1.0, ease.Linear)

	// Exact halves avoid float32 accumulation drift.
	tw.Update(0.5)
	if tw.Done {
		t.Fatal("should not be Done halfway")
	}
	if !g.IsDirty(n) {
		t.Error("tween update should mark the node dirty")
	}
	local, _ := g.Local(n)
	assertVec3Within(t, "halfway", local.Position, mgl64.Vec3{55, 110, -25}, 0.01)

	tw.Update(0.5)
	if !tw.Done {
		t.Fatal("expected Done after full duration")
	}
	g.Recompute()
	assertVec3Within(t, "world", worldPos(t, g, n), mgl64.Vec3{100, 200, -50}, 0.01)
}

func TestTweenScaleReachesTarget(t *testing.T) {
	g := NewGraph()
	n := g.Create(NoParent, IdentityTransform())

	tw := TweenScale(g, n, mgl64.Vec3{2, 3, 4}, 0.5, ease.Linear)
	tw.Update(0.25)
	tw.Update(0.25)

	if !tw.Done {
		t.Fatal("expected Done after full duration")
	}
	local, _ := g.Local(n)
	assertVec3Within(t, "scale", local.Scale, mgl64.Vec3{2, 3, 4}, 0.01)
	assertVec3(t, "position untouched", local.Position, mgl64.Vec3{})
}

func TestTweenRotationSlerps(t *testing.T) {
	g := NewGraph()
	n := g.Create(NoParent, IdentityTransform())
	to := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})

	tw := TweenRotation(g, n, to, 1.0, ease.Linear)
	tw.Update(0.5)
	g.Recompute()
	half, _ := g.LocalToWorld(n, mgl64.Vec3{1, 0, 0})
	assertVec3Within(t, "halfway", half, mgl64.Vec3{math.Sqrt2 / 2, math.Sqrt2 / 2, 0}, 1e-4)

	tw.Update(0.5)
	if !tw.Done {
		t.Fatal("expected Done after full duration")
	}
	g.Recompute()
	end, _ := g.LocalToWorld(n, mgl64.Vec3{1, 0, 0})
	assertVec3Within(t, "end", end, mgl64.Vec3{0, 1, 0}, 1e-6)
}

func TestTweenStopsWhenNodeRemoved(t *testing.T) {
	g := NewGraph()
	n := g.Create(NoParent, IdentityTransform())
	tw := TweenPosition(g, n, mgl64.Vec3{10, 0, 0}, 1.0, ease.Linear)

	g.Remove(n)
	tw.Update(0.5)
	if !tw.Done {
		t.Error("tween should stop once its node is removed")
	}
	if g.Exists(n) {
		t.Error("tween must not resurrect the node")
	}
}

func TestTweenUnknownNodeStartsDone(t *testing.T) {
	g := NewGraph()
	for name, tw := range map[string]*TweenGroup{
		"position": TweenPosition(g, 9, mgl64.Vec3{}, 1, ease.Linear),
		"scale":    TweenScale(g, 9, mgl64.Vec3{}, 1, ease.Linear),
		"rotation": TweenRotation(g, 9, mgl64.QuatIdent(), 1, ease.Linear),
	} {
		if !tw.Done {
			t.Errorf("%s tween on unknown node should start Done", name)
		}
		tw.Update(1) // must not panic
		if tw.Target() != 9 {
			t.Errorf("%s Target = %d, want 9", name, tw.Target())
		}
	}
}

func TestTweenDoneIsSticky(t *testing.T) {
	g := NewGraph()
	n := g.Create(NoParent, IdentityTransform())
	tw := TweenPosition(g, n, mgl64.Vec3{1, 0, 0}, 0.5, ease.Linear)
	tw.Update(1)
	g.Recompute()

	g.SetPosition(n, mgl64.Vec3{7, 0, 0})
	tw.Update(1)
	local, _ := g.Local(n)
	assertVec3(t, "position after Done", local.Position, mgl64.Vec3{7, 0, 0})
}
