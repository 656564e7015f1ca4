package arbor

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// NodeDump is the YAML shape of one node in DumpYAML.
type NodeDump struct {
	ID       NodeID      `yaml:"id"`
	Position [3]float64  `yaml:"position,flow"`
	Rotation [4]float64  `yaml:"rotation,flow"` // x, y, z, w
	Scale    [3]float64  `yaml:"scale,flow"`
	World    [3]float64  `yaml:"world,flow"` // cached world position
	Dirty    bool        `yaml:"dirty,omitempty"`
	Children []*NodeDump `yaml:"children,omitempty"`
}

// Snapshot returns the live hierarchy as nested NodeDumps, roots in root-set
// order and children in list order. World positions are the cached values
// from the last Recompute.
func (g *Graph) Snapshot() []*NodeDump {
	out := make([]*NodeDump, 0, len(g.roots))
	for _, id := range g.roots {
		if d := g.snapshotNode(id); d != nil {
			out = append(out, d)
		}
	}
	return out
}

// SnapshotNode returns the subtree rooted at id.
func (g *Graph) SnapshotNode(id NodeID) (*NodeDump, error) {
	d := g.snapshotNode(id)
	if d == nil {
		return nil, errors.Wrapf(ErrUnknownNode, "snapshot %d", id)
	}
	return d, nil
}

func (g *Graph) snapshotNode(id NodeID) *NodeDump {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	d := &NodeDump{
		ID:       id,
		Position: n.local.Position,
		Rotation: [4]float64{n.local.Rotation.V[0], n.local.Rotation.V[1], n.local.Rotation.V[2], n.local.Rotation.W},
		Scale:    n.local.Scale,
		World:    n.world.Col(3).Vec3(),
		Dirty:    n.dirty,
	}
	for _, cid := range n.children {
		if c := g.snapshotNode(cid); c != nil {
			d.Children = append(d.Children, c)
		}
	}
	return d
}

// DumpYAML writes Snapshot to w as YAML.
func (g *Graph) DumpYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(g.Snapshot()); err != nil {
		return errors.Wrap(err, "arbor: encode yaml dump")
	}
	return errors.Wrap(enc.Close(), "arbor: close yaml dump")
}
