package ecs

import (
	"reflect"
	"unsafe"

	"github.com/TheBitDrifter/table"
)

// chunk is Component C: the columnar storage for every entity of one
// archetype. It owns one table.Table built from the archetype's component
// axis (arrays and tags carry no column — see §3, "per-entity array
// payloads... stored on the slot, not in columns").
type chunk struct {
	id         archetypeID
	definition Definition
	schema     *Schema
	tbl        table.Table
}

type archetypeID uint32

// newChunk builds the table.Table backing one archetype, the same way the
// reference's newArchetype does (archetype.go), generalized to take a
// Schema instead of a raw component list.
func newChunk(schema *Schema, entryIndex table.EntryIndex, id archetypeID, def Definition, events table.TableEvents) (*chunk, error) {
	elems := schema.elementTypesFor(def.componentIDs())
	tbl, err := table.NewTableBuilder().
		WithSchema(schema.tableSchema).
		WithEntryIndex(entryIndex).
		WithElementTypes(elems...).
		WithEvents(events).
		Build()
	if err != nil {
		return nil, err
	}
	return &chunk{id: id, definition: def, schema: schema, tbl: tbl}, nil
}

// rowCount is the dense entity count currently held by the chunk.
func (c *chunk) rowCount() int { return c.tbl.Length() }

// addRow appends n new rows and returns the table.Entry tracking each;
// component bytes start zero-initialized by table.Table.
func (c *chunk) addRow(n int) ([]table.Entry, error) {
	return c.tbl.NewEntries(n)
}

// removeRow swap-removes the row at index and reports which entry (if any)
// was moved into that slot so the caller can fix up its chunk_ref/row
// (§4.C).
func (c *chunk) removeRow(index int) (moved table.Entry, hadMove bool, err error) {
	before := c.tbl.Length()
	if before == 0 {
		return nil, false, nil
	}
	lastIndex := before - 1
	if _, err := c.tbl.DeleteEntries(index); err != nil {
		return nil, false, err
	}
	if index == lastIndex {
		return nil, false, nil
	}
	entry, err := c.tbl.Entry(index)
	if err != nil {
		return nil, false, err
	}
	return entry, true, nil
}

// transferRow moves the entry at index into dst, copying every component
// present in both chunks' definitions (table.Table.TransferEntries already
// implements "copy shared columns, drop the rest, leave new columns zero",
// per §4.C).
func (c *chunk) transferRow(index int, dst *chunk) error {
	return c.tbl.TransferEntries(dst.tbl, index)
}

// columnBytes returns the raw byte slice backing a component id's column.
// table.Table exposes columns as table.Row (a reflect.Value of slice kind
// under the hood, per the reference's own use of
// reflect.Value(row).Index(...).Set(...) in entity.go); this reinterprets
// that slice's backing array as raw bytes, the same way a chunk's column is
// defined in §4.C ("parallel column arrays of raw bytes").
func (c *chunk) columnBytes(id ComponentID) ([]byte, error) {
	if !c.definition.hasComponent(id) {
		return nil, UnknownComponentError{ID: id}
	}
	desc := c.schema.caches[KindComponent].GetItem32(uint32(id))
	for _, row := range c.tbl.Rows() {
		rv := reflect.Value(row)
		if rv.Type().Elem() == desc.rtype {
			return sliceAsBytes(rv, desc.size), nil
		}
	}
	return nil, UnknownComponentError{ID: id}
}

// sliceAsBytes reinterprets a reflect.Value holding a []T slice as a []byte
// view over the same backing array, without copying.
func sliceAsBytes(rv reflect.Value, elemSize uint64) []byte {
	n := rv.Len()
	if n == 0 {
		return nil
	}
	ptr := unsafe.Pointer(rv.Pointer())
	return unsafe.Slice((*byte)(ptr), n*int(elemSize))
}

// entryAt resolves the table.Entry living at a given row, used to recover
// the entity position stored in that row during iteration.
func (c *chunk) entryAt(row int) (table.Entry, error) {
	return c.tbl.Entry(row)
}

// bytesToSlice reinterprets a raw byte column as a []T view over the same
// backing array, the inverse of sliceAsBytes, used by Cursor's Column[T] to
// hand callers a typed slice without copying.
func bytesToSlice[T any](b []byte) []T {
	if len(b) == 0 {
		return nil
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), len(b)/size)
}
