// Package arbor is a retained-mode 3D transform hierarchy: the scene graph
// core that renderers, physics, cameras and streaming systems share.
//
// Arbor tracks parent/child relationships between nodes, caches each node's
// world matrix, and recomputes only what changed, in a deterministic
// depth-first order that downstream systems can rely on for draw submission
// and debugging. It does no rendering and owns no GPU resources.
//
// # Quick start
//
//	g := arbor.NewGraph()
//	car := g.Create(arbor.NoParent, arbor.TransformAt(10, 0, 0))
//	wheel := g.Create(car, arbor.TransformAt(1, -0.5, 0))
//
//	// each frame:
//	g.SetPosition(car, mgl64.Vec3{11, 0, 0})
//	g.Recompute()
//	world, _ := g.World(wheel)
//
// # Graph
//
// A [Graph] owns every node record. Callers hold [NodeID] values only;
// parent and child links are IDs into the same table, so removing a node
// can never leave a live reference behind. IDs start at 1, increase
// strictly and are never reused. [NoParent] (0) means "no parent".
//
// Parentless nodes live in the root set, ordered by insertion. Reparenting
// always appends to the end of the target list, including the root set.
//
// Operations on unknown IDs are no-ops or report false; nothing panics.
// [Graph.Reparent] refuses any move that would make a node its own
// ancestor and leaves the graph unchanged.
//
// # Recompute
//
// Mutations mark only the touched node dirty. [Graph.Recompute] walks the
// roots in order, depth-first, pre-order, and rebuilds a node's world
// matrix when the node or any ancestor changed since the last pass. Clean
// subtrees keep their cached matrices bit for bit. The visit order is
// available from [Graph.Traversal] until the next Recompute.
//
// A Graph is single-threaded: apply the frame's mutations, call Recompute
// once, then read.
//
// # Adapters
//
// Tweens (via [gween]) animate local transforms. [Graph.GeoM] projects world
// matrices for [Ebitengine] 2D drawing. [Graph.ExportGLTF] and
// [Graph.ImportGLTF] move hierarchies in and out of [glTF] documents, and
// [Graph.DumpYAML] writes a readable debug dump. The arbor/ecs module
// mirrors world matrices into a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [glTF]: https://github.com/qmuntal/gltf
// [Donburi]: https://github.com/yohamta/donburi
package arbor
