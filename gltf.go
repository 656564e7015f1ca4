package arbor

import (
	"fmt"
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
)

// gltfIDKey is the node extras key carrying the exporting NodeID.
const gltfIDKey = "arbor_id"

var identity16 = [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// ExportGLTF writes the current hierarchy into a new glTF document: one glTF
// node per graph node, in depth-first pre-order, with local TRS and child
// indices. Roots become the nodes of the default scene. Only structure and
// transforms are exported.
func (g *Graph) ExportGLTF() *gltf.Document {
	doc := gltf.NewDocument()
	index := make(map[NodeID]uint32, len(g.nodes))

	var visit func(id NodeID) uint32
	visit = func(id NodeID) uint32 {
		n := g.nodes[id]
		idx := uint32(len(doc.Nodes))
		index[id] = idx
		gn := &gltf.Node{
			Name:        fmt.Sprintf("node-%d", id),
			Translation: vec3ToGLTF(n.local.Position),
			Rotation: [4]float32{
				float32(n.local.Rotation.V[0]),
				float32(n.local.Rotation.V[1]),
				float32(n.local.Rotation.V[2]),
				float32(n.local.Rotation.W),
			},
			Scale:  vec3ToGLTF(n.local.Scale),
			Extras: map[string]any{gltfIDKey: uint64(id)},
		}
		doc.Nodes = append(doc.Nodes, gn)
		for _, cid := range n.children {
			if _, ok := g.nodes[cid]; ok {
				gn.Children = append(gn.Children, visit(cid))
			}
		}
		return idx
	}

	for _, id := range g.roots {
		if _, ok := g.nodes[id]; ok {
			doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, visit(id))
		}
	}
	return doc
}

// WriteGLTF encodes ExportGLTF to w, as .glb when binary is set.
func (g *Graph) WriteGLTF(w io.Writer, binary bool) error {
	enc := gltf.NewEncoder(w)
	enc.AsBinary = binary
	if err := enc.Encode(g.ExportGLTF()); err != nil {
		return errors.Wrap(err, "arbor: encode gltf")
	}
	return nil
}

// ImportGLTF instantiates the node tree of the document's default scene
// under parent (NoParent spawns new roots). The whole document is validated
// before any node is created, so a malformed hierarchy leaves the graph
// untouched. The result maps each glTF node index to the created NodeID;
// nodes outside the scene map to NoParent.
//
// Nodes given as a matrix are decomposed into translation, rotation and
// scale. Shear is lost.
func (g *Graph) ImportGLTF(doc *gltf.Document, parent NodeID) ([]NodeID, error) {
	if parent != NoParent && !g.Exists(parent) {
		return nil, errors.Wrapf(ErrUnknownNode, "import under %d", parent)
	}
	roots, err := gltfSceneRoots(doc)
	if err != nil {
		return nil, err
	}
	if err := validateGLTFTree(doc, roots); err != nil {
		return nil, err
	}

	ids := make([]NodeID, len(doc.Nodes))
	var spawn func(idx uint32, under NodeID)
	spawn = func(idx uint32, under NodeID) {
		gn := doc.Nodes[idx]
		id := g.Create(under, transformFromGLTF(gn))
		ids[idx] = id
		for _, c := range gn.Children {
			spawn(c, id)
		}
	}
	for _, r := range roots {
		spawn(r, parent)
	}
	return ids, nil
}

// ReadGLTF decodes a .gltf or .glb stream and imports it under parent.
func (g *Graph) ReadGLTF(r io.Reader, parent NodeID) ([]NodeID, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, errors.Wrap(err, "arbor: decode gltf")
	}
	return g.ImportGLTF(doc, parent)
}

// gltfSceneRoots returns the default scene's root nodes. Documents without
// scenes use every node that is nobody's child, in index order.
func gltfSceneRoots(doc *gltf.Document) ([]uint32, error) {
	if len(doc.Scenes) > 0 {
		scene := uint32(0)
		if doc.Scene != nil {
			scene = *doc.Scene
		}
		if int(scene) >= len(doc.Scenes) {
			return nil, errors.Errorf("arbor: gltf default scene %d out of range", scene)
		}
		return doc.Scenes[scene].Nodes, nil
	}
	referenced := make([]bool, len(doc.Nodes))
	for _, gn := range doc.Nodes {
		for _, c := range gn.Children {
			if int(c) < len(referenced) {
				referenced[c] = true
			}
		}
	}
	var roots []uint32
	for i, ref := range referenced {
		if !ref {
			roots = append(roots, uint32(i))
		}
	}
	return roots, nil
}

// validateGLTFTree rejects out-of-range indices, nodes with more than one
// parent and cycles reachable from roots.
func validateGLTFTree(doc *gltf.Document, roots []uint32) error {
	seen := make([]bool, len(doc.Nodes))
	stack := make([]uint32, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, roots[i])
	}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if int(idx) >= len(doc.Nodes) {
			return errors.Errorf("arbor: gltf node index %d out of range", idx)
		}
		if seen[idx] {
			return errors.Errorf("arbor: gltf node %d reached twice (shared or cyclic)", idx)
		}
		seen[idx] = true
		if doc.Nodes[idx] == nil {
			return errors.Errorf("arbor: gltf node %d is null", idx)
		}
		stack = append(stack, doc.Nodes[idx].Children...)
	}
	return nil
}

func transformFromGLTF(gn *gltf.Node) Transform {
	if gn.Matrix != identity16 && gn.Matrix != ([16]float32{}) {
		return decomposeMatrix(mat4FromGLTF(gn.Matrix))
	}
	t := IdentityTransform()
	t.Position = vec3FromGLTF(gn.Translation)
	if gn.Rotation != ([4]float32{}) {
		t.Rotation = mgl64.Quat{
			W: float64(gn.Rotation[3]),
			V: mgl64.Vec3{float64(gn.Rotation[0]), float64(gn.Rotation[1]), float64(gn.Rotation[2])},
		}.Normalize()
	}
	if gn.Scale != ([3]float32{}) {
		t.Scale = vec3FromGLTF(gn.Scale)
	}
	return t
}

// decomposeMatrix splits an affine matrix into translation, rotation and
// scale. A negative determinant is folded into the X scale.
func decomposeMatrix(m mgl64.Mat4) Transform {
	t := IdentityTransform()
	t.Position = m.Col(3).Vec3()

	c0, c1, c2 := m.Col(0).Vec3(), m.Col(1).Vec3(), m.Col(2).Vec3()
	sx, sy, sz := c0.Len(), c1.Len(), c2.Len()
	if m.Mat3().Det() < 0 {
		sx = -sx
	}
	t.Scale = mgl64.Vec3{sx, sy, sz}
	if sx == 0 || sy == 0 || sz == 0 || math.IsNaN(sx+sy+sz) {
		return t
	}

	rot := mgl64.Ident4()
	rot.SetCol(0, c0.Mul(1/sx).Vec4(0))
	rot.SetCol(1, c1.Mul(1/sy).Vec4(0))
	rot.SetCol(2, c2.Mul(1/sz).Vec4(0))
	t.Rotation = mgl64.Mat4ToQuat(rot).Normalize()
	return t
}

func mat4FromGLTF(m [16]float32) mgl64.Mat4 {
	var out mgl64.Mat4
	for i, v := range m {
		out[i] = float64(v)
	}
	return out
}

func vec3ToGLTF(v mgl64.Vec3) [3]float32 {
	return [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}
}

func vec3FromGLTF(v [3]float32) mgl64.Vec3 {
	return mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
}
