package ecs

import "github.com/TheBitDrifter/mask"

// BitMask is the fixed-width bitset used for every axis of a Definition
// (§4.B). It is a thin, named alias over mask.Mask — the same bitset type
// the reference implementation uses for archetype masks — so the
// component/array/tag axes and the reference's own mask arithmetic share
// one representation.
type BitMask = mask.Mask

// markComponent/markArray/markTag set the bit for an id in a BitMask. They
// exist only to keep call sites readable (mask.Mask.Mark takes a bare
// uint32 bit index).
func markComponent(m *BitMask, id ComponentID) { m.Mark(uint32(id)) }
func markArray(m *BitMask, id ArrayID)         { m.Mark(uint32(id)) }
func markTag(m *BitMask, id TagID)             { m.Mark(uint32(id)) }

func unmarkComponent(m *BitMask, id ComponentID) { m.Unmark(uint32(id)) }
func unmarkArray(m *BitMask, id ArrayID)         { m.Unmark(uint32(id)) }
func unmarkTag(m *BitMask, id TagID)             { m.Unmark(uint32(id)) }

func testComponent(m BitMask, id ComponentID) bool {
	var single BitMask
	single.Mark(uint32(id))
	return m.ContainsAll(single)
}

func testTag(m BitMask, id TagID) bool {
	var single BitMask
	single.Mark(uint32(id))
	return m.ContainsAll(single)
}
