package ecs

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/phanxgames/arbor"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// Node links an entity to an arbor node and mirrors its world matrix.
type Node struct {
	ID    arbor.NodeID
	World mgl64.Mat4

	// Missing is set by Sync once the node has left the graph.
	Missing bool
}

// NodeComponent is the Donburi component type holding a Node.
var NodeComponent = donburi.NewComponentType[Node]()

// NodeRemoved is published by Sync for every entity whose node no longer
// exists in the graph.
type NodeRemoved struct {
	Entity donburi.Entity
	ID     arbor.NodeID
}

// NodeRemovedEventType is the Donburi event type for NodeRemoved.
var NodeRemovedEventType = events.NewEventType[NodeRemoved]()

var nodeQuery = donburi.NewQuery(filter.Contains(NodeComponent))

// Attach creates an entity carrying a Node component for id. The world
// matrix is filled from the graph's current cache.
func Attach(world donburi.World, g *arbor.Graph, id arbor.NodeID) donburi.Entity {
	e := world.Create(NodeComponent)
	m, _ := g.World(id)
	NodeComponent.SetValue(world.Entry(e), Node{ID: id, World: m})
	return e
}

// Sync copies cached world matrices from g into every Node component.
// Entities whose node is gone keep their last matrix and are returned on
// every call until pruned. A NodeRemoved event is queued only on the first
// Sync that finds the node missing.
func Sync(world donburi.World, g *arbor.Graph) []donburi.Entity {
	var stale []donburi.Entity
	nodeQuery.Each(world, func(entry *donburi.Entry) {
		n := NodeComponent.Get(entry)
		m, ok := g.World(n.ID)
		if !ok {
			stale = append(stale, entry.Entity())
			if !n.Missing {
				n.Missing = true
				NodeRemovedEventType.Publish(world, NodeRemoved{Entity: entry.Entity(), ID: n.ID})
			}
			return
		}
		n.World = m
	})
	return stale
}

// Prune removes the given entities from world. Entities that are already
// invalid are skipped.
func Prune(world donburi.World, entities []donburi.Entity) {
	for _, e := range entities {
		if world.Valid(e) {
			world.Remove(e)
		}
	}
}
