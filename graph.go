package arbor

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
)

const defaultTraversalCap = 256

// Graph is the transform hierarchy. It owns every node record; callers only
// ever hold NodeIDs.
//
// A Graph is single-threaded. Apply the frame's mutations, call Recompute
// once, then read world matrices. Content produced on other goroutines must
// be handed to the owning goroutine and applied through Create, SetLocal and
// Reparent there. No method locks.
type Graph struct {
	nodes map[NodeID]*node
	roots []NodeID
	ids   idAllocator

	// Last recompute
	order      []NodeID
	stats      RecomputeStats
	recomputed bool
	walking    int // active Walk calls

	cfg    Config
	logger *slog.Logger
}

// NewGraph creates an empty graph with DefaultConfig.
func NewGraph() *Graph {
	return NewGraphWithConfig(DefaultConfig())
}

// NewGraphWithConfig creates an empty graph with the given configuration.
func NewGraphWithConfig(cfg Config) *Graph {
	return &Graph{
		nodes:  make(map[NodeID]*node),
		order:  make([]NodeID, 0, defaultTraversalCap),
		cfg:    cfg.withDefaults(),
		logger: slog.Default(),
	}
}

// SetDebugMode enables or disables debug checks and logging.
func (g *Graph) SetDebugMode(enabled bool) {
	g.cfg.Debug = enabled
}

// DebugMode reports whether debug checks are enabled.
func (g *Graph) DebugMode() bool {
	return g.cfg.Debug
}

// SetLogger replaces the logger used for debug output. A nil logger restores
// slog.Default().
func (g *Graph) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	g.logger = l
}

// Len returns the number of live nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Roots returns a copy of the root set in order.
func (g *Graph) Roots() []NodeID {
	return cloneIDs(g.roots)
}

// identityMatrix is the parent world of every root.
var identityMatrix = mgl64.Ident4()

func cloneIDs(ids []NodeID) []NodeID {
	if len(ids) == 0 {
		return nil
	}
	out := make([]NodeID, len(ids))
	copy(out, ids)
	return out
}
