package ecs

// factory implements the factory pattern the reference uses throughout
// (factory.go): one global Factory value exposing constructors, instead of
// a grab-bag of package-level New* functions.
type factory struct{}

// Factory is the global factory instance for constructing Schema, World,
// EventBus, Query and Cursor values (mirrors the reference's
// `warehouse.Factory`).
var Factory factory

// NewSchema builds an empty Schema.
func (f factory) NewSchema() *Schema { return NewSchema() }

// NewWorld builds an empty World over schema.
func (f factory) NewWorld(schema *Schema) (*World, error) { return NewWorld(schema) }

// NewEventBus builds a standalone EventBus. A World's own Events field
// covers the common case; this is for callers that want an event channel
// decoupled from any one World.
func (f factory) NewEventBus() *EventBus { return newEventBus() }

// NewQuery returns an empty Query.
func (f factory) NewQuery() Query { return NewQuery() }

// NewCursor builds a Cursor over world for query.
func (f factory) NewCursor(world *World, query Query) *Cursor { return NewCursor(world, query) }

// FactoryNewCache creates a new Cache with the given capacity — Schema uses
// this for each of its three id axes (§4.A).
func FactoryNewCache[T any](cap int) Cache[T] {
	return &SimpleCache[T]{
		itemIndices: make(map[string]int),
		maxCapacity: cap,
	}
}
