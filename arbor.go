package arbor

import "github.com/go-gl/mathgl/mgl64"

// NodeID identifies a node for its whole lifetime. IDs are issued in strictly
// increasing order per Graph and are never reused after removal.
type NodeID uint64

// NoParent is the reserved zero NodeID. Passing it as a parent creates or
// moves a node into the root set.
const NoParent NodeID = 0

// Transform is a node's position, rotation and scale relative to its parent,
// or to world space for roots.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat // unit quaternion
	Scale    mgl64.Vec3
}

// IdentityTransform returns the transform with no translation, no rotation
// and unit scale.
func IdentityTransform() Transform {
	return Transform{
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// TransformAt returns an identity transform translated to (x, y, z).
func TransformAt(x, y, z float64) Transform {
	t := IdentityTransform()
	t.Position = mgl64.Vec3{x, y, z}
	return t
}

// Matrix composes the local matrix as Translate · Rotate · Scale.
func (t Transform) Matrix() mgl64.Mat4 {
	translate := mgl64.Translate3D(t.Position[0], t.Position[1], t.Position[2])
	scale := mgl64.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2])
	return translate.Mul4(t.Rotation.Mat4()).Mul4(scale)
}

// WithPosition returns a copy of t with the position replaced.
func (t Transform) WithPosition(p mgl64.Vec3) Transform {
	t.Position = p
	return t
}

// WithRotation returns a copy of t with the rotation replaced.
func (t Transform) WithRotation(q mgl64.Quat) Transform {
	t.Rotation = q
	return t
}

// WithScale returns a copy of t with the scale replaced.
func (t Transform) WithScale(s mgl64.Vec3) Transform {
	t.Scale = s
	return t
}
