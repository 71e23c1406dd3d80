package ecs

// arrayBuffer is one entity's per-array payload: id identifies which
// registered array type it holds, length is the element count, and data is
// the raw byte backing (length*size(elemID) bytes), resized in place by
// ResizeArray (§3: "per-entity array payloads... stored on the slot, not in
// columns").
type arrayBuffer struct {
	id     ArrayID
	length int
	data   []byte
}

// CreateArray allocates a per-entity buffer of length*size(elemID) bytes
// and marks the array bit, migrating the entity since array presence is
// archetype-defining (§3, §4.D).
func (w *World) CreateArray(h Handle, elemID ArrayID, length int) error {
	entry, err := w.liveEntry(h)
	if err != nil {
		return err
	}
	ch := w.chunkOf[entry.Table()]
	if ch.definition.Arrays.ContainsAll(singleArrayMask(elemID)) {
		return AlreadyHasArrayError{Handle: h, ID: elemID}
	}
	newEntry, _, err := w.migrate(h, ch.definition.withArray(elemID))
	if err != nil {
		return err
	}
	side := w.sidecar(uint32(newEntry.ID()))
	if side.arrays == nil {
		side.arrays = make(map[ArrayID]*arrayBuffer)
	}
	elemSize := int(w.Schema.ArraySize(elemID))
	side.arrays[elemID] = &arrayBuffer{id: elemID, length: length, data: make([]byte, length*elemSize)}
	return nil
}

// ResizeArray grows or shrinks an existing array, preserving the
// overlapping prefix of bytes.
func (w *World) ResizeArray(h Handle, elemID ArrayID, length int) error {
	entry, err := w.liveEntry(h)
	if err != nil {
		return err
	}
	side := w.sidecar(uint32(entry.ID()))
	buf, ok := side.arrays[elemID]
	if !ok {
		return MissingArrayError{Handle: h, ID: elemID}
	}
	elemSize := int(w.Schema.ArraySize(elemID))
	newData := make([]byte, length*elemSize)
	copy(newData, buf.data)
	buf.length = length
	buf.data = newData
	return nil
}

// GetArray returns the raw bytes of an entity's array.
func (w *World) GetArray(h Handle, elemID ArrayID) ([]byte, error) {
	entry, err := w.liveEntry(h)
	if err != nil {
		return nil, err
	}
	side := w.sidecar(uint32(entry.ID()))
	buf, ok := side.arrays[elemID]
	if !ok {
		return nil, MissingArrayError{Handle: h, ID: elemID}
	}
	return buf.data, nil
}

// ContainsArray reports whether the entity carries array elemID.
func (w *World) ContainsArray(h Handle, elemID ArrayID) (bool, error) {
	entry, err := w.liveEntry(h)
	if err != nil {
		return false, err
	}
	ch := w.chunkOf[entry.Table()]
	return ch.definition.Arrays.ContainsAll(singleArrayMask(elemID)), nil
}

// DestroyArray frees an entity's array buffer and unmarks the array bit,
// migrating it back out of the array's archetype axis.
func (w *World) DestroyArray(h Handle, elemID ArrayID) error {
	entry, err := w.liveEntry(h)
	if err != nil {
		return err
	}
	ch := w.chunkOf[entry.Table()]
	if !ch.definition.Arrays.ContainsAll(singleArrayMask(elemID)) {
		return MissingArrayError{Handle: h, ID: elemID}
	}
	newEntry, _, err := w.migrate(h, ch.definition.withoutArray(elemID))
	if err != nil {
		return err
	}
	delete(w.sidecar(uint32(newEntry.ID())).arrays, elemID)
	return nil
}

func singleArrayMask(id ArrayID) BitMask {
	var m BitMask
	markArray(&m, id)
	return m
}
