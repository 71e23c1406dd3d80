package ecs

import "fmt"

// Handle is an entity identity: a position (dense slot index, stable for
// the slot's lifetime) paired with a version that increments every time the
// position is recycled. A handle is valid iff the slot at Position still
// carries Version.
//
// Position 0 is reserved and never issued to a live entity.
type Handle struct {
	Position uint32
	Version  uint32
}

// None is the zero Handle, used to mean "no entity" for parent links and
// reference targets.
var None = Handle{}

func (h Handle) String() string {
	return fmt.Sprintf("Entity(%d@%d)", h.Position, h.Version)
}

// IsNone reports whether h is the reserved "no entity" handle.
func (h Handle) IsNone() bool {
	return h.Position == 0
}

// Kind distinguishes the three axes a Schema assigns ids across.
type Kind uint8

const (
	KindComponent Kind = iota
	KindArray
	KindTag
)

func (k Kind) String() string {
	switch k {
	case KindComponent:
		return "component"
	case KindArray:
		return "array"
	case KindTag:
		return "tag"
	default:
		return "unknown"
	}
}

// ComponentID, ArrayID and TagID are dense ids in [0,255] assigned by a
// Schema, one independent space per axis.
type ComponentID uint8
type ArrayID uint8
type TagID uint8

// DisabledTag is the single tag id the core reserves (§4.D, §9): entities
// bearing it are skipped by any Query whose exclude mask contains it.
const DisabledTag TagID = 0

// rint is a 1-based index into an entity's reference list. Index 0 is never
// issued; it means "no reference".
type rint = uint32
