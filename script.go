package arbor

import (
	"encoding/json"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// ErrStepRejected is returned by a ScriptRunner when a reparent or remove
// step is refused by the graph (or succeeds when expectFail was set).
var ErrStepRejected = errors.New("arbor: script step rejected")

// scriptStep is a single action in a mutation script.
type scriptStep struct {
	Action     string      `json:"action"`
	Label      string      `json:"label,omitempty"`
	Parent     string      `json:"parent,omitempty"`
	Position   *[3]float64 `json:"position,omitempty"`
	Rotation   *[4]float64 `json:"rotation,omitempty"` // x, y, z, w
	Scale      *[3]float64 `json:"scale,omitempty"`
	Frames     int         `json:"frames,omitempty"`
	ExpectFail bool        `json:"expectFail,omitempty"`
}

// script is the top-level JSON structure.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner replays a JSON mutation script against a Graph one step per
// frame. Nodes are referred to by labels bound when a create step runs.
//
// Script actions: create (label, optional parent, position, rotation,
// scale), set (label plus any of position/rotation/scale), reparent (label,
// parent; empty parent moves to the root set), remove (label), recompute,
// and wait (frames).
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
	labels    map[string]NodeID
}

// LoadScript parses a JSON mutation script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, errors.Wrap(err, "parse mutation script")
	}
	if len(s.Steps) == 0 {
		return nil, errors.New("parse mutation script: no steps")
	}
	created := make(map[string]int)
	for i, st := range s.Steps {
		switch st.Action {
		case "create":
			if st.Label == "" {
				break
			}
			if prev, dup := created[st.Label]; dup {
				return nil, errors.Errorf("parse mutation script: step %d: label %q already created at step %d", i, st.Label, prev)
			}
			created[st.Label] = i
		case "set", "reparent", "remove", "recompute", "wait":
		default:
			return nil, errors.Errorf("parse mutation script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps, labels: make(map[string]NodeID)}, nil
}

// Done reports whether every step has been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// ID returns the NodeID bound to label.
func (r *ScriptRunner) ID(label string) (NodeID, bool) {
	id, ok := r.labels[label]
	return id, ok
}

// Step advances the runner by one frame, executing at most one step. Wait
// steps consume frames without touching the graph.
func (r *ScriptRunner) Step(g *Graph) error {
	if r.done {
		return nil
	}
	if r.waitCount > 0 {
		r.waitCount--
		return nil
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return nil
	}

	st := r.steps[r.cursor]
	r.cursor++
	err := r.exec(g, st)
	if err != nil {
		err = errors.Wrapf(err, "step %d (%s %q)", r.cursor-1, st.Action, st.Label)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
	return err
}

// Run executes every remaining step, skipping waits, and stops at the first
// error.
func (r *ScriptRunner) Run(g *Graph) error {
	for !r.done {
		r.waitCount = 0
		if err := r.Step(g); err != nil {
			return err
		}
	}
	return nil
}

func (r *ScriptRunner) exec(g *Graph, st scriptStep) error {
	switch st.Action {
	case "create":
		parent, err := r.resolveParent(st.Parent)
		if err != nil {
			return err
		}
		r.labels[st.Label] = g.Create(parent, applyStep(IdentityTransform(), st))
	case "set":
		id, err := r.resolve(st.Label)
		if err != nil {
			return err
		}
		local, _ := g.Local(id)
		g.SetLocal(id, applyStep(local, st))
	case "reparent":
		id, err := r.resolve(st.Label)
		if err != nil {
			return err
		}
		parent, err := r.resolveParent(st.Parent)
		if err != nil {
			return err
		}
		return expect(g.Reparent(id, parent), st.ExpectFail)
	case "remove":
		id, err := r.resolve(st.Label)
		if err != nil {
			return err
		}
		return expect(g.Remove(id), st.ExpectFail)
	case "recompute":
		g.Recompute()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}
	return nil
}

func (r *ScriptRunner) resolve(label string) (NodeID, error) {
	id, ok := r.labels[label]
	if !ok {
		return NoParent, errors.Wrapf(ErrUnknownNode, "label %q", label)
	}
	return id, nil
}

func (r *ScriptRunner) resolveParent(label string) (NodeID, error) {
	if label == "" {
		return NoParent, nil
	}
	return r.resolve(label)
}

func expect(ok, expectFail bool) error {
	if ok == expectFail {
		return ErrStepRejected
	}
	return nil
}

func applyStep(t Transform, st scriptStep) Transform {
	if st.Position != nil {
		t.Position = mgl64.Vec3(*st.Position)
	}
	if st.Rotation != nil {
		q := *st.Rotation
		t.Rotation = mgl64.Quat{W: q[3], V: mgl64.Vec3{q[0], q[1], q[2]}}.Normalize()
	}
	if st.Scale != nil {
		t.Scale = mgl64.Vec3(*st.Scale)
	}
	return t
}
