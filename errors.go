package ecs

import "fmt"

// InvalidHandleError is returned when an entity handle's version no longer
// matches the slot, or its position is out of range.
type InvalidHandleError struct {
	Handle Handle
}

func (e InvalidHandleError) Error() string {
	return fmt.Sprintf("invalid entity handle: %v", e.Handle)
}

// MissingComponentError is returned by operations that require a component
// the entity does not carry.
type MissingComponentError struct {
	Handle Handle
	ID     ComponentID
}

func (e MissingComponentError) Error() string {
	return fmt.Sprintf("entity %v has no component %d", e.Handle, e.ID)
}

// AlreadyHasComponentError is returned when adding a component the entity
// already carries.
type AlreadyHasComponentError struct {
	Handle Handle
	ID     ComponentID
}

func (e AlreadyHasComponentError) Error() string {
	return fmt.Sprintf("entity %v already has component %d", e.Handle, e.ID)
}

// MissingArrayError is returned when an array operation targets an array
// the entity does not carry.
type MissingArrayError struct {
	Handle Handle
	ID     ArrayID
}

func (e MissingArrayError) Error() string {
	return fmt.Sprintf("entity %v has no array %d", e.Handle, e.ID)
}

// AlreadyHasArrayError is returned when creating an array the entity
// already carries.
type AlreadyHasArrayError struct {
	Handle Handle
	ID     ArrayID
}

func (e AlreadyHasArrayError) Error() string {
	return fmt.Sprintf("entity %v already has array %d", e.Handle, e.ID)
}

// MissingTagError is returned when removing a tag the entity does not carry.
type MissingTagError struct {
	Handle Handle
	ID     TagID
}

func (e MissingTagError) Error() string {
	return fmt.Sprintf("entity %v has no tag %d", e.Handle, e.ID)
}

// AlreadyHasTagError is returned when adding a tag the entity already
// carries.
type AlreadyHasTagError struct {
	Handle Handle
	ID     TagID
}

func (e AlreadyHasTagError) Error() string {
	return fmt.Sprintf("entity %v already has tag %d", e.Handle, e.ID)
}

// UnknownTypeError is returned by schema lookups and by the deserializer
// when a wire type name has no registered counterpart.
type UnknownTypeError struct {
	Name string
}

func (e UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown type: %q", e.Name)
}

// UnknownComponentError is returned by chunk.columnBytes for a component id
// the chunk's definition does not carry.
type UnknownComponentError struct {
	ID ComponentID
}

func (e UnknownComponentError) Error() string {
	return fmt.Sprintf("chunk has no column for component %d", e.ID)
}

// SchemaFullError is returned when a kind's 256 ids are exhausted.
type SchemaFullError struct {
	Kind Kind
}

func (e SchemaFullError) Error() string {
	return fmt.Sprintf("schema full for kind %v (256 ids exhausted)", e.Kind)
}

// SizeTooLargeError is returned when a registered type's size exceeds the
// implementation cap.
type SizeTooLargeError struct {
	Size uint64
	Cap  uint64
}

func (e SizeTooLargeError) Error() string {
	return fmt.Sprintf("size %d exceeds cap %d", e.Size, e.Cap)
}

// WouldCycleError is returned by SetParent when the requested link would
// create a parent/child cycle.
type WouldCycleError struct {
	Child, Parent Handle
}

func (e WouldCycleError) Error() string {
	return fmt.Sprintf("setting %v as parent of %v would create a cycle", e.Parent, e.Child)
}

// IteratorInvalidatedError fires when the world was mutated (an archetype
// migration occurred) while a Cursor was mid-iteration.
type IteratorInvalidatedError struct{}

func (e IteratorInvalidatedError) Error() string {
	return "query iterator invalidated by a chunk migration during iteration"
}

// MalformedDataError is returned by the serializer on a corrupt or
// truncated binary blob.
type MalformedDataError struct {
	Reason string
}

func (e MalformedDataError) Error() string {
	return fmt.Sprintf("malformed world data: %s", e.Reason)
}
