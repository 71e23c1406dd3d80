/*
Package ecs provides the core of an archetype-based Entity-Component-System
runtime: entities are lightweight (position, version) handles, and their
data lives in contiguous per-archetype chunks keyed by the exact set of
component, array and tag types an entity carries.

Core Concepts:

  - Entity: a Handle{Position, Version} identity; its data lives in exactly
    one chunk per World.
  - Component: a fixed-size, pointer-free data blob stored in a chunk
    column; at most one per (entity, type).
  - Array: a resizeable per-entity buffer of fixed-size elements; presence
    is archetype-defining, same as a component.
  - Tag: a zero-size bit marking an archetype axis, with no data of its own.
  - Definition: the (components, arrays, tags) triple that keys a chunk.
  - Query: an include/exclude Definition matcher, iterated with a Cursor.

Basic Usage:

	schema := ecs.Factory.NewSchema()
	position, _ := ecs.RegisterComponent[Position](schema)
	velocity, _ := ecs.RegisterComponent[Velocity](schema)

	world, _ := ecs.Factory.NewWorld(schema)

	e, _ := world.CreateEntity()
	ecs.AddComponentValue(world, e, position, Position{X: 0, Y: 0})
	ecs.AddComponentValue(world, e, velocity, Velocity{X: 1, Y: 0})

	query := ecs.NewQuery().WithComponent(position).WithComponent(velocity)
	cursor := ecs.NewCursor(world, query)
	for cursor.Next() {
		pos, _ := ecs.Column[Position](cursor, position)
		vel, _ := ecs.Column[Velocity](cursor, velocity)
		row := cursor.Row()
		pos[row].X += vel[row].X
		pos[row].Y += vel[row].Y
	}

Entities also carry per-entity dynamic arrays (World.CreateArray), tags
(World.AddTag), stable cross-world references (World.AddReference), and a
parent/child hierarchy (World.SetParent). A World's EventBus carries typed
messages between systems, and WriteWorld/ReadWorld serialize an entire
World to and from a binary blob.
*/
package ecs
