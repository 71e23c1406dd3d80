package ecs

import "sort"

// Clone deep-copies h's components and arrays into a freshly created entity
// in the same archetype, and copies its reference list verbatim (same-world
// positions, no remapping — §4.D). The clone starts parentless; it is not
// spliced into h's hierarchy.
func (w *World) Clone(h Handle) (Handle, error) {
	entry, err := w.liveEntry(h)
	if err != nil {
		return None, err
	}
	srcDef := w.chunkOf[entry.Table()].definition

	dst, err := w.CreateEntity()
	if err != nil {
		return None, err
	}
	if !srcDef.equals(Definition{}) {
		if _, _, err := w.migrate(dst, srcDef); err != nil {
			return None, err
		}
	}

	for _, cid := range srcDef.componentIDs() {
		b, err := w.ComponentBytes(h, cid)
		if err != nil {
			return None, err
		}
		if err := w.SetComponentBytes(dst, cid, b); err != nil {
			return None, err
		}
	}

	srcSide := w.sidecar(h.Position)
	if len(srcSide.arrays) > 0 {
		dstSide := w.sidecar(dst.Position)
		dstSide.arrays = make(map[ArrayID]*arrayBuffer, len(srcSide.arrays))
		for id, buf := range srcSide.arrays {
			dstSide.arrays[id] = &arrayBuffer{id: id, length: buf.length, data: append([]byte(nil), buf.data...)}
		}
	}
	if len(srcSide.refs) > 0 {
		w.sidecar(dst.Position).refs = append([]uint32(nil), srcSide.refs...)
	}

	return dst, nil
}

// Append copies every live entity of other into w, preserving components,
// arrays, tags, references and parent/child links, remapped to the new
// positions they're assigned in w (§4.D, testable property 5). Source
// entities are processed in ascending srcHandle.Position order, so which
// destination position a given source entity lands on is deterministic
// across runs. It runs in two passes — create every entity first, then copy
// relational data — so references and parent links can resolve to positions
// that didn't exist in w until the first pass finished (same order the
// reference's TransferEntities can't offer, since it moves entities rather
// than copying across independent worlds).
func (w *World) Append(other *World) error {
	w.requireUnlocked()

	type liveRow struct {
		srcHandle Handle
		def       Definition
	}
	var live []liveRow
	for def, ch := range other.chunks {
		for row := 0; row < ch.rowCount(); row++ {
			entry, err := ch.entryAt(row)
			if err != nil {
				return err
			}
			live = append(live, liveRow{
				srcHandle: Handle{Position: uint32(entry.ID()), Version: uint32(entry.Recycled())},
				def:       def,
			})
		}
	}
	sort.Slice(live, func(i, j int) bool { return live[i].srcHandle.Position < live[j].srcHandle.Position })

	mapping := make(map[uint32]uint32, len(live))
	for _, lr := range live {
		dst, err := w.CreateEntity()
		if err != nil {
			return err
		}
		mapping[lr.srcHandle.Position] = dst.Position
	}

	for _, lr := range live {
		srcH := lr.srcHandle
		dstPos := mapping[srcH.Position]
		dstH, err := w.handleAt(dstPos)
		if err != nil {
			return err
		}

		targetDef := Definition{Components: lr.def.Components, Arrays: lr.def.Arrays, Tags: lr.def.Tags}
		if !targetDef.equals(Definition{}) {
			if _, _, err := w.migrate(dstH, targetDef); err != nil {
				return err
			}
		}

		for _, cid := range lr.def.componentIDs() {
			b, err := other.ComponentBytes(srcH, cid)
			if err != nil {
				return err
			}
			if err := w.SetComponentBytes(dstH, cid, b); err != nil {
				return err
			}
		}

		srcSide := other.sidecar(srcH.Position)
		if len(srcSide.arrays) > 0 {
			dstSide := w.sidecar(dstH.Position)
			dstSide.arrays = make(map[ArrayID]*arrayBuffer, len(srcSide.arrays))
			for id, buf := range srcSide.arrays {
				dstSide.arrays[id] = &arrayBuffer{id: id, length: buf.length, data: append([]byte(nil), buf.data...)}
			}
		}

		if len(srcSide.refs) > 0 {
			dstRefs := make([]uint32, len(srcSide.refs))
			for i, targetPos := range srcSide.refs {
				if targetPos == 0 {
					continue
				}
				dstRefs[i] = mapping[targetPos]
			}
			w.sidecar(dstH.Position).refs = dstRefs
		}

		if srcSide.parent != 0 {
			if mappedParent, ok := mapping[srcSide.parent]; ok {
				if parentH, err := w.handleAt(mappedParent); err == nil {
					if err := w.SetParent(dstH, parentH); err != nil {
						return err
					}
				}
			}
		}
	}

	return nil
}
