package ecs

// Query is Component F's three-axis archetype matcher (§4.F): a chunk's
// Definition matches iff it is a superset of Include on every axis and
// disjoint from Exclude on every axis — replacing the reference's
// And/Or/Not composite QueryNode tree (query.go) with the single
// include/exclude form the spec calls for.
type Query struct {
	Include Definition
	Exclude Definition
}

// NewQuery returns an empty Query, matching every archetype until narrowed
// by the With*/Without* builders.
func NewQuery() Query { return Query{} }

// WithComponent requires component id to be present.
func (q Query) WithComponent(id ComponentID) Query {
	q.Include = q.Include.withComponent(id)
	return q
}

// WithoutComponent requires component id to be absent.
func (q Query) WithoutComponent(id ComponentID) Query {
	q.Exclude = q.Exclude.withComponent(id)
	return q
}

// WithArray requires array id to be present.
func (q Query) WithArray(id ArrayID) Query {
	q.Include = q.Include.withArray(id)
	return q
}

// WithoutArray requires array id to be absent.
func (q Query) WithoutArray(id ArrayID) Query {
	q.Exclude = q.Exclude.withArray(id)
	return q
}

// WithTag requires tag id to be present.
func (q Query) WithTag(id TagID) Query {
	q.Include = q.Include.withTag(id)
	return q
}

// WithoutTag requires tag id to be absent. Queries that want only enabled
// entities pass DisabledTag here (§4.D, §9).
func (q Query) WithoutTag(id TagID) Query {
	q.Exclude = q.Exclude.withTag(id)
	return q
}

// Matches reports whether def satisfies q (§4.F).
func (q Query) Matches(def Definition) bool {
	return def.matches(q.Include, q.Exclude)
}
