package ecs

// AddReference appends target to h's reference list and returns its rint —
// a stable 1-based index that survives append/deserialize (§3, GLOSSARY).
func (w *World) AddReference(h Handle, target Handle) (rint, error) {
	entry, err := w.liveEntry(h)
	if err != nil {
		return 0, err
	}
	if _, err := w.liveEntry(target); err != nil {
		return 0, err
	}
	side := w.sidecar(uint32(entry.ID()))
	side.refs = append(side.refs, target.Position)
	return rint(len(side.refs)), nil
}

// GetReference resolves rint to its current target position, as a live
// Handle.
func (w *World) GetReference(h Handle, r rint) (Handle, error) {
	entry, err := w.liveEntry(h)
	if err != nil {
		return None, err
	}
	side := w.sidecar(uint32(entry.ID()))
	if r == 0 || int(r) > len(side.refs) || side.refs[r-1] == 0 {
		return None, InvalidHandleError{Handle: h}
	}
	return w.handleAt(side.refs[r-1])
}

// ContainsReference reports whether rint currently addresses a reference.
func (w *World) ContainsReference(h Handle, r rint) (bool, error) {
	entry, err := w.liveEntry(h)
	if err != nil {
		return false, err
	}
	side := w.sidecar(uint32(entry.ID()))
	return r != 0 && int(r) <= len(side.refs) && side.refs[r-1] != 0, nil
}

// RemoveReference removes the reference at rint via swap-with-last,
// returning the rint that the swapped-in reference now occupies (0 if the
// removed slot was last, per §4.D: "removal is swap-with-last and returns
// the new assignment so callers holding old rints can be informed").
func (w *World) RemoveReference(h Handle, r rint) (movedTo rint, err error) {
	entry, err := w.liveEntry(h)
	if err != nil {
		return 0, err
	}
	side := w.sidecar(uint32(entry.ID()))
	if r == 0 || int(r) > len(side.refs) || side.refs[r-1] == 0 {
		return 0, InvalidHandleError{Handle: h}
	}
	return removeRefAt(side, int(r)-1), nil
}

// RemoveReferenceByTarget removes the first reference on h pointing at
// target's current position via swap-with-last, the same as RemoveReference
// but keyed by target handle instead of rint — §4.D specifies
// remove_reference(handle, rint | target), for callers that only hold the
// target handle. Returns InvalidHandleError if h carries no reference to
// target.
func (w *World) RemoveReferenceByTarget(h Handle, target Handle) (movedTo rint, err error) {
	entry, err := w.liveEntry(h)
	if err != nil {
		return 0, err
	}
	side := w.sidecar(uint32(entry.ID()))
	for i, pos := range side.refs {
		if pos != 0 && pos == target.Position {
			return removeRefAt(side, i), nil
		}
	}
	return 0, InvalidHandleError{Handle: target}
}

// removeRefAt swap-removes the reference at idx (0-based) from side.refs and
// returns the rint the swapped-in reference now occupies (0 if idx was last).
func removeRefAt(side *entitySidecar, idx int) rint {
	last := len(side.refs) - 1
	if idx == last {
		side.refs = side.refs[:last]
		return 0
	}
	side.refs[idx] = side.refs[last]
	side.refs = side.refs[:last]
	return rint(idx + 1)
}
