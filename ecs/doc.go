// Package ecs binds arbor scene nodes to entities in a [Donburi] world.
//
// Attach an entity to a node with [Attach]. After each arbor Recompute,
// call [Sync] to copy the cached world matrices into the [Node] component
// so ECS systems can read them without touching the graph. Entities whose
// node was removed are reported through [NodeRemovedEventType] and can be
// destroyed with [Prune].
//
// Usage:
//
//	e := ecs.Attach(world, g, id)
//	g.Recompute()
//	stale := ecs.Sync(world, g)
//	ecs.NodeRemovedEventType.ProcessEvents(world)
//	ecs.Prune(world, stale)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
