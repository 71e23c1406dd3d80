package ecs

// AddTag flips tag id's bit, migrating the entity to the new archetype
// (§4.D).
func (w *World) AddTag(h Handle, id TagID) error {
	entry, err := w.liveEntry(h)
	if err != nil {
		return err
	}
	ch := w.chunkOf[entry.Table()]
	if ch.definition.hasTag(id) {
		return AlreadyHasTagError{Handle: h, ID: id}
	}
	_, _, err = w.migrate(h, ch.definition.withTag(id))
	return err
}

// RemoveTag mirrors AddTag.
func (w *World) RemoveTag(h Handle, id TagID) error {
	entry, err := w.liveEntry(h)
	if err != nil {
		return err
	}
	ch := w.chunkOf[entry.Table()]
	if !ch.definition.hasTag(id) {
		return MissingTagError{Handle: h, ID: id}
	}
	_, _, err = w.migrate(h, ch.definition.withoutTag(id))
	return err
}

// ContainsTag reports whether the entity carries tag id.
func (w *World) ContainsTag(h Handle, id TagID) (bool, error) {
	entry, err := w.liveEntry(h)
	if err != nil {
		return false, err
	}
	return w.chunkOf[entry.Table()].definition.hasTag(id), nil
}
