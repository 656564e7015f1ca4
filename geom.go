package arbor

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// GeoM projects the node's cached world matrix onto the XY plane as an
// ebiten.GeoM, dropping Z. 2D renderers use it as DrawImageOptions.GeoM to
// place sprites at the node.
func (g *Graph) GeoM(id NodeID) (ebiten.GeoM, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return ebiten.GeoM{}, false
	}
	return GeoMFromMatrix(n.world), true
}

// GeoMFromMatrix returns the XY affine part of m.
//
//	| m00  m01  m03 |
//	| m10  m11  m13 |
//	|  0    0    1  |
func GeoMFromMatrix(m mgl64.Mat4) ebiten.GeoM {
	var geo ebiten.GeoM
	geo.SetElement(0, 0, m.At(0, 0))
	geo.SetElement(0, 1, m.At(0, 1))
	geo.SetElement(0, 2, m.At(0, 3))
	geo.SetElement(1, 0, m.At(1, 0))
	geo.SetElement(1, 1, m.At(1, 1))
	geo.SetElement(1, 2, m.At(1, 3))
	return geo
}
