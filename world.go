package ecs

import (
	"unsafe"

	"github.com/TheBitDrifter/bark"
	"github.com/TheBitDrifter/table"
)

// entitySidecar holds the per-entity state §3's slot record needs that
// table.Entry doesn't track for us: hierarchy links, array payloads and the
// reference list. table.Entry (via the World's shared table.EntryIndex)
// already gives every live entity its version ("Recycled"), current chunk
// ("Table") and row ("Index") — the same indirection the reference uses in
// entity.go's entry()/globalEntryIndex pair — so World only layers on what
// that doesn't cover.
type entitySidecar struct {
	parent   uint32 // position, 0 = none
	children []uint32
	arrays   map[ArrayID]*arrayBuffer
	refs     []uint32 // refs[rint-1] = target position, 0 = no target
}

// World is Component E: it owns the schema, the archetype table of chunks,
// the entity slot indirection and everything built on top of it (arrays,
// tags, references, hierarchy, clone/append).
type World struct {
	Schema *Schema
	Events *EventBus

	entryIndex table.EntryIndex
	chunks     map[Definition]*chunk
	chunkOf    map[table.Table]*chunk
	nextID     archetypeID

	sidecars []entitySidecar // index 0 unused

	locked        int
	mutationStamp uint64
}

// NewWorld builds an empty World over schema, with the empty-definition
// chunk already materialized (new entities start there, per §4.D).
func NewWorld(schema *Schema) (*World, error) {
	w := &World{
		Schema:     schema,
		Events:     newEventBus(),
		entryIndex: table.Factory.NewEntryIndex(),
		chunks:     make(map[Definition]*chunk),
		chunkOf:    make(map[table.Table]*chunk),
		nextID:     1,
		sidecars:   make([]entitySidecar, 1),
	}
	if _, err := w.chunkFor(Definition{}); err != nil {
		return nil, err
	}
	return w, nil
}

// chunkFor returns the chunk for def, creating its backing table.Table on
// first demand (§3: "created lazily on first archetype demand").
func (w *World) chunkFor(def Definition) (*chunk, error) {
	if c, ok := w.chunks[def]; ok {
		return c, nil
	}
	c, err := newChunk(w.Schema, w.entryIndex, w.nextID, def, Config.tableEvents)
	if err != nil {
		return nil, err
	}
	w.chunks[def] = c
	w.chunkOf[c.tbl] = c
	w.nextID++
	return c, nil
}

// requireUnlocked enforces §5/§4.F: structural mutation while a Cursor is
// mid-iteration is a programmer error, not recoverable undefined behavior.
func (w *World) requireUnlocked() {
	if w.locked > 0 {
		panic(bark.AddTrace(IteratorInvalidatedError{}))
	}
}

func (w *World) bumpMutation() { w.mutationStamp++ }

// liveEntry resolves a Handle to its current table.Entry, validating the
// version the way §3 defines a valid handle.
func (w *World) liveEntry(h Handle) (table.Entry, error) {
	if h.Position == 0 || int(h.Position) >= len(w.sidecars) {
		return nil, InvalidHandleError{Handle: h}
	}
	entry, err := w.entryIndex.Entry(int(h.Position) - 1)
	if err != nil || uint32(entry.Recycled()) != h.Version {
		return nil, InvalidHandleError{Handle: h}
	}
	return entry, nil
}

func (w *World) growSidecars(pos uint32) {
	for uint32(len(w.sidecars)) <= pos {
		w.sidecars = append(w.sidecars, entitySidecar{})
	}
}

func (w *World) sidecar(pos uint32) *entitySidecar {
	return &w.sidecars[pos]
}

// CreateEntity allocates a new entity with no components, arrays or tags,
// enabled, parentless, placed in the empty-definition chunk (§4.D).
func (w *World) CreateEntity() (Handle, error) {
	w.requireUnlocked()
	empty, err := w.chunkFor(Definition{})
	if err != nil {
		return None, err
	}
	entries, err := empty.addRow(1)
	if err != nil {
		return None, err
	}
	entry := entries[0]
	pos := uint32(entry.ID())
	w.growSidecars(pos)
	w.sidecars[pos] = entitySidecar{}
	w.bumpMutation()
	h := Handle{Position: pos, Version: uint32(entry.Recycled())}
	w.Events.submitInternal(TopicEntityLifecycle, EntityLifecycleEvent{Handle: h, Created: true})
	return h, nil
}

// ContainsEntity reports whether h still addresses a live entity (§4.D).
func (w *World) ContainsEntity(h Handle) bool {
	_, err := w.liveEntry(h)
	return err == nil
}

// IsEnabled reports the entity's enabled bit, represented by the absence
// of the reserved Disabled tag (§4.D, §9).
func (w *World) IsEnabled(h Handle) (bool, error) {
	entry, err := w.liveEntry(h)
	if err != nil {
		return false, err
	}
	ch := w.chunkOf[entry.Table()]
	return !ch.definition.hasTag(DisabledTag), nil
}

// SetEnabled toggles the entity's enabled bit, migrating it across the
// Disabled tag boundary.
func (w *World) SetEnabled(h Handle, enabled bool) error {
	current, err := w.IsEnabled(h)
	if err != nil {
		return err
	}
	if current == enabled {
		return nil
	}
	if enabled {
		return w.RemoveTag(h, DisabledTag)
	}
	return w.AddTag(h, DisabledTag)
}

// migrate moves the entity at h into newDef's chunk, copying every
// component present in both (table.Table.TransferEntries' job), and
// returns the entry's fresh post-migration state.
func (w *World) migrate(h Handle, newDef Definition) (table.Entry, *chunk, error) {
	w.requireUnlocked()
	entry, err := w.liveEntry(h)
	if err != nil {
		return nil, nil, err
	}
	src := w.chunkOf[entry.Table()]
	dst, err := w.chunkFor(newDef)
	if err != nil {
		return nil, nil, err
	}
	if src == dst {
		return entry, src, nil
	}
	if err := src.transferRow(entry.Index(), dst); err != nil {
		return nil, nil, err
	}
	w.bumpMutation()
	fresh, err := w.liveEntry(h)
	if err != nil {
		return nil, nil, err
	}
	return fresh, dst, nil
}

// AddComponent adds a zero-initialized component i to the entity,
// migrating it to the (components ∪ {i}) archetype (§4.D).
func (w *World) AddComponent(h Handle, id ComponentID) error {
	entry, err := w.liveEntry(h)
	if err != nil {
		return err
	}
	ch := w.chunkOf[entry.Table()]
	if ch.definition.hasComponent(id) {
		return AlreadyHasComponentError{Handle: h, ID: id}
	}
	_, _, err = w.migrate(h, ch.definition.withComponent(id))
	return err
}

// RemoveComponent mirrors AddComponent (§4.D).
func (w *World) RemoveComponent(h Handle, id ComponentID) error {
	entry, err := w.liveEntry(h)
	if err != nil {
		return err
	}
	ch := w.chunkOf[entry.Table()]
	if !ch.definition.hasComponent(id) {
		return MissingComponentError{Handle: h, ID: id}
	}
	_, _, err = w.migrate(h, ch.definition.withoutComponent(id))
	return err
}

// ContainsComponent reports whether the entity currently carries i.
func (w *World) ContainsComponent(h Handle, id ComponentID) (bool, error) {
	entry, err := w.liveEntry(h)
	if err != nil {
		return false, err
	}
	return w.chunkOf[entry.Table()].definition.hasComponent(id), nil
}

// ComponentBytes returns the raw byte slice for component i on the entity,
// exactly size(i) bytes — the get_ref operation of §4.D. The returned
// slice is only valid until the next add/remove on this entity (it aliases
// the chunk's column storage directly).
func (w *World) ComponentBytes(h Handle, id ComponentID) ([]byte, error) {
	entry, err := w.liveEntry(h)
	if err != nil {
		return nil, err
	}
	ch := w.chunkOf[entry.Table()]
	if !ch.definition.hasComponent(id) {
		return nil, MissingComponentError{Handle: h, ID: id}
	}
	col, err := ch.columnBytes(id)
	if err != nil {
		return nil, err
	}
	size := int(w.Schema.ComponentSize(id))
	row := entry.Index()
	return col[row*size : (row+1)*size : (row+1)*size], nil
}

// SetComponentBytes overwrites a component's bytes in place.
func (w *World) SetComponentBytes(h Handle, id ComponentID, data []byte) error {
	b, err := w.ComponentBytes(h, id)
	if err != nil {
		return err
	}
	copy(b, data)
	return nil
}

// GetComponent returns a typed pointer into the entity's component i
// column. The pointer is invalidated by any subsequent add/remove on this
// entity (§4.D) — callers must not retain it across a migration.
func GetComponent[T any](w *World, h Handle, id ComponentID) (*T, error) {
	b, err := w.ComponentBytes(h, id)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		var zero T
		return &zero, nil
	}
	return (*T)(unsafe.Pointer(&b[0])), nil
}

// SetComponent overwrites the entity's component i with value.
func SetComponent[T any](w *World, h Handle, id ComponentID, value T) error {
	ptr, err := GetComponent[T](w, h, id)
	if err != nil {
		return err
	}
	*ptr = value
	return nil
}

// AddComponentValue adds a pre-registered component (id, obtained from
// RegisterComponent[T]) to the entity and sets its value in one call — the
// ergonomic entry point doc.go's usage example favors. It does not touch
// the Schema itself; callers register T before calling this.
func AddComponentValue[T any](w *World, h Handle, id ComponentID, value T) error {
	if err := w.AddComponent(h, id); err != nil {
		return err
	}
	return SetComponent(w, h, id, value)
}

// Parent returns the entity's parent handle, or None.
func (w *World) Parent(h Handle) (Handle, error) {
	entry, err := w.liveEntry(h)
	if err != nil {
		return None, err
	}
	parentPos := w.sidecar(uint32(entry.ID())).parent
	if parentPos == 0 {
		return None, nil
	}
	return w.handleAt(parentPos)
}

// Children returns the (ordered) positions of h's children as live Handles.
func (w *World) Children(h Handle) ([]Handle, error) {
	entry, err := w.liveEntry(h)
	if err != nil {
		return nil, err
	}
	positions := w.sidecar(uint32(entry.ID())).children
	out := make([]Handle, 0, len(positions))
	for _, pos := range positions {
		ch, err := w.handleAt(pos)
		if err == nil {
			out = append(out, ch)
		}
	}
	return out, nil
}

// handleAt resolves a bare position to its current live Handle.
func (w *World) handleAt(pos uint32) (Handle, error) {
	entry, err := w.entryIndex.Entry(int(pos) - 1)
	if err != nil {
		return None, InvalidHandleError{Handle: Handle{Position: pos}}
	}
	return Handle{Position: pos, Version: uint32(entry.Recycled())}, nil
}

// SetParent links child under parent. Cycles are rejected (§4.D).
func (w *World) SetParent(child, parent Handle) error {
	childEntry, err := w.liveEntry(child)
	if err != nil {
		return err
	}
	if _, err := w.liveEntry(parent); err != nil {
		return err
	}
	if w.wouldCycle(child, parent) {
		return WouldCycleError{Child: child, Parent: parent}
	}
	childSide := w.sidecar(uint32(childEntry.ID()))
	if childSide.parent != 0 {
		w.detachChild(childSide.parent, child.Position)
	}
	childSide.parent = parent.Position
	parentSide := w.sidecar(parent.Position)
	parentSide.children = append(parentSide.children, child.Position)
	return nil
}

func (w *World) wouldCycle(child, parent Handle) bool {
	if child.Position == parent.Position {
		return true
	}
	pos := parent.Position
	for pos != 0 {
		if pos == child.Position {
			return true
		}
		pos = w.sidecar(pos).parent
	}
	return false
}

func (w *World) detachChild(parentPos, childPos uint32) {
	side := w.sidecar(parentPos)
	for i, p := range side.children {
		if p == childPos {
			last := len(side.children) - 1
			side.children[i] = side.children[last]
			side.children = side.children[:last]
			return
		}
	}
}

// DestroyEntity destroys h and, recursively, every descendant (§4.D, §9:
// the core mandates recursive destroy). Emits EntityLifecycleEvent with
// Created=false for every destroyed entity.
func (w *World) DestroyEntity(h Handle) error {
	w.requireUnlocked()
	if !w.ContainsEntity(h) {
		return InvalidHandleError{Handle: h}
	}
	w.destroyOne(h)
	return nil
}

func (w *World) destroyOne(h Handle) {
	side := w.sidecar(h.Position)
	children := append([]uint32(nil), side.children...)
	for _, childPos := range children {
		if childHandle, err := w.handleAt(childPos); err == nil {
			w.destroyOne(childHandle)
		}
	}
	if side.parent != 0 {
		w.detachChild(side.parent, h.Position)
	}

	entry, err := w.liveEntry(h)
	if err == nil {
		ch := w.chunkOf[entry.Table()]
		ch.removeRow(entry.Index())
	}
	w.sidecars[h.Position] = entitySidecar{}
	w.bumpMutation()
	w.Events.submitInternal(TopicEntityLifecycle, EntityLifecycleEvent{Handle: h, Created: false})
}

// Stats is a lightweight, read-only snapshot of World size, supplementing
// the distilled spec the way vamplite's PerformanceMetrics/StorageStats
// expose runtime counters without a metrics dependency (SPEC_FULL.md).
type Stats struct {
	LiveEntities int
	ChunkCount   int
}

// Stats reports current entity/chunk counts.
func (w *World) Stats() Stats {
	live := 0
	for _, ch := range w.chunks {
		live += ch.rowCount()
	}
	return Stats{LiveEntities: live, ChunkCount: len(w.chunks)}
}
