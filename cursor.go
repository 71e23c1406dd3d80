package ecs

import "github.com/TheBitDrifter/bark"

// Cursor is Component F's iterator over a World's chunks matching a Query,
// grounded on the reference's Cursor (cursor.go): gather every matching
// archetype up front, then walk row 0..Length()-1 per chunk, flattening
// across the match set. Initialize locks the world the way the reference's
// storage.AddLock()/PopLock() does, except here a structural mutation
// attempted while locked doesn't silently queue (see
// World.requireUnlocked) — it panics with IteratorInvalidatedError, since
// §8 property 8 requires migration-during-iteration to fail loudly rather
// than be deferred.
type Cursor struct {
	world   *World
	query   Query
	matched []*chunk

	chunkIndex int
	row        int

	initialized   bool
	mutationStamp uint64
}

// NewCursor builds a Cursor over world for query. Initialize is called
// implicitly by the first Next/TotalMatched.
func NewCursor(world *World, query Query) *Cursor {
	return &Cursor{world: world, query: query}
}

// Initialize locks the world and snapshots the set of chunks matching the
// query, plus the world's current mutation stamp. A no-op if already
// initialized; call Reset first to re-scan.
func (c *Cursor) Initialize() {
	if c.initialized {
		return
	}
	c.world.locked++
	c.mutationStamp = c.world.mutationStamp
	c.matched = c.matched[:0]
	for def, ch := range c.world.chunks {
		if c.query.Matches(def) {
			c.matched = append(c.matched, ch)
		}
	}
	c.chunkIndex = 0
	c.row = -1
	c.initialized = true
}

// Next advances to the next matching row and reports whether one was
// found, exhausting empty chunks along the way. Panics with
// IteratorInvalidatedError if the world was structurally mutated since
// Initialize (§5, §8 property 8, scenario 1 "Chunk migration during
// iteration").
func (c *Cursor) Next() bool {
	if !c.initialized {
		c.Initialize()
	}
	if c.world.mutationStamp != c.mutationStamp {
		panic(bark.AddTrace(IteratorInvalidatedError{}))
	}
	c.row++
	for c.chunkIndex < len(c.matched) {
		if c.row < c.matched[c.chunkIndex].rowCount() {
			return true
		}
		c.chunkIndex++
		c.row = 0
	}
	c.Reset()
	return false
}

// Reset releases the world lock and clears cursor state. Idempotent; called
// automatically once iteration is exhausted.
func (c *Cursor) Reset() {
	if c.initialized {
		c.world.locked--
	}
	c.chunkIndex = 0
	c.row = 0
	c.matched = nil
	c.initialized = false
}

func (c *Cursor) currentChunk() *chunk {
	return c.matched[c.chunkIndex]
}

// Handle returns the entity Handle at the cursor's current position.
func (c *Cursor) Handle() (Handle, error) {
	entry, err := c.currentChunk().entryAt(c.row)
	if err != nil {
		return None, err
	}
	return Handle{Position: uint32(entry.ID()), Version: uint32(entry.Recycled())}, nil
}

// Row returns the cursor's current row offset within its current chunk —
// the index to use against a Column[T] slice.
func (c *Cursor) Row() int { return c.row }

// Column returns a typed view over the current chunk's component id
// column; index it with Row(). The slice is only valid until the next
// structural mutation of the world (mirrors ComponentBytes' aliasing rule,
// §4.D/§4.F).
func Column[T any](c *Cursor, id ComponentID) ([]T, error) {
	b, err := c.currentChunk().columnBytes(id)
	if err != nil {
		return nil, err
	}
	return bytesToSlice[T](b), nil
}

// TotalMatched counts every entity across every chunk the query matches,
// without consuming the iteration (mirrors the reference's
// Cursor.TotalMatched). Leaves the world unlocked again if this call is
// what triggered Initialize.
func (c *Cursor) TotalMatched() int {
	wasInitialized := c.initialized
	if !wasInitialized {
		c.Initialize()
	}
	total := 0
	for _, ch := range c.matched {
		total += ch.rowCount()
	}
	if !wasInitialized {
		c.Reset()
	}
	return total
}
