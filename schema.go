package ecs

import (
	"reflect"
	"sort"
	"sync"

	"github.com/TheBitDrifter/table"
)

// maxIDsPerKind mirrors the single-byte id space every axis gets (§4.A).
const maxIDsPerKind = 256

// maxComponentSize is the implementation cap the spec suggests (§4.A).
const maxComponentSize = 1 << 16

// typeDescriptor is a Schema's record for one registered type: which axis
// it belongs to, its dense id within that axis, its byte size (0 for tags),
// and the fully qualified name used as its wire identity (§4.A, §6).
type typeDescriptor struct {
	kind  Kind
	id    uint8
	size  uint64
	rtype reflect.Type
	name  string
	elem  table.ElementType // only populated for KindComponent
}

// Schema is the registry described in §4.A: it assigns stable, dense ids
// per kind to user types, and is the sole source of truth for component
// byte sizes (needed by Chunk to size its columns) and for the qualified
// names the Serializer uses as wire identity.
//
// Each kind's id assignment is delegated to a Cache[typeDescriptor]
// (cache.go) — the reference's own name→index registry — rather than a
// hand-rolled counter-plus-two-maps: Cache.Register already is "assign the
// next free id, remember it by name", and Cache.GetItem/GetItem32 already
// is "look a descriptor up by id", which is exactly what register() and
// every Schema accessor need.
//
// Ids are stable for the schema's lifetime but are process-local; they are
// never persisted directly (see Serializer).
type Schema struct {
	mu sync.RWMutex

	tableSchema table.Schema // backs the component axis's table.ElementType ids

	caches map[Kind]Cache[typeDescriptor]
	byType map[Kind]map[reflect.Type]*typeDescriptor
}

// NewSchema builds an empty Schema.
func NewSchema() *Schema {
	s := &Schema{
		tableSchema: table.Factory.NewSchema(),
		caches: map[Kind]Cache[typeDescriptor]{
			KindComponent: FactoryNewCache[typeDescriptor](maxIDsPerKind),
			KindArray:     FactoryNewCache[typeDescriptor](maxIDsPerKind),
			KindTag:       FactoryNewCache[typeDescriptor](maxIDsPerKind),
		},
		byType: map[Kind]map[reflect.Type]*typeDescriptor{KindComponent: {}, KindArray: {}, KindTag: {}},
	}
	// Tag id 0 is DisabledTag: claim it up front so RegisterTag never hands
	// it to a user type. It has no Go type, so byType has no entry for it.
	const disabledName = "ecs.Disabled"
	s.caches[KindTag].Register(disabledName, typeDescriptor{kind: KindTag, id: uint8(DisabledTag), name: disabledName})
	return s
}

func qualifiedName(t reflect.Type) string {
	if t.PkgPath() == "" {
		return t.Name()
	}
	return t.PkgPath() + "." + t.Name()
}

// register is idempotent: a type already registered under kind returns its
// existing id. elem is only honored (and must be non-nil) for KindComponent.
func (s *Schema) register(kind Kind, t reflect.Type, elem table.ElementType) (*typeDescriptor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.byType[kind][t]; ok {
		return existing, nil
	}

	size := uint64(0)
	if kind != KindTag {
		size = uint64(t.Size())
		if size > maxComponentSize {
			return nil, SizeTooLargeError{Size: size, Cap: maxComponentSize}
		}
	}

	name := qualifiedName(t)
	cache := s.caches[kind]
	idx, err := cache.Register(name, typeDescriptor{kind: kind, size: size, rtype: t, name: name})
	if err != nil {
		return nil, SchemaFullError{Kind: kind}
	}

	desc := cache.GetItem(idx)
	desc.id = uint8(idx)
	if kind == KindComponent {
		s.tableSchema.Register(elem)
		desc.elem = elem
	}

	s.byType[kind][t] = desc
	return desc, nil
}

// RegisterComponent assigns (or reuses) a ComponentID for T.
func RegisterComponent[T any](s *Schema) (ComponentID, error) {
	var zero T
	elem := table.FactoryNewElementType[T]()
	desc, err := s.register(KindComponent, reflect.TypeOf(zero), elem)
	if err != nil {
		return 0, err
	}
	return ComponentID(desc.id), nil
}

// RegisterArray assigns (or reuses) an ArrayID for element type T.
func RegisterArray[T any](s *Schema) (ArrayID, error) {
	var zero T
	desc, err := s.register(KindArray, reflect.TypeOf(zero), nil)
	if err != nil {
		return 0, err
	}
	return ArrayID(desc.id), nil
}

// RegisterTag assigns (or reuses) a TagID for marker type T.
func RegisterTag[T any](s *Schema) (TagID, error) {
	var zero T
	desc, err := s.register(KindTag, reflect.TypeOf(zero), nil)
	if err != nil {
		return 0, err
	}
	return TagID(desc.id), nil
}

// LookupComponent returns the ComponentID previously registered for T, or
// UnknownTypeError.
func LookupComponent[T any](s *Schema) (ComponentID, error) {
	var zero T
	s.mu.RLock()
	desc, ok := s.byType[KindComponent][reflect.TypeOf(zero)]
	s.mu.RUnlock()
	if !ok {
		return 0, UnknownTypeError{Name: qualifiedName(reflect.TypeOf(zero))}
	}
	return ComponentID(desc.id), nil
}

// ComponentSize returns the byte width of a registered component id.
func (s *Schema) ComponentSize(id ComponentID) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.caches[KindComponent].GetItem32(uint32(id)).size
}

// ArraySize returns the byte width of one element of a registered array id.
func (s *Schema) ArraySize(id ArrayID) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.caches[KindArray].GetItem32(uint32(id)).size
}

// ComponentName returns the fully qualified wire name of a component id.
func (s *Schema) ComponentName(id ComponentID) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.caches[KindComponent].GetItem32(uint32(id)).name
}

// ArrayName returns the fully qualified wire name of an array id.
func (s *Schema) ArrayName(id ArrayID) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.caches[KindArray].GetItem32(uint32(id)).name
}

// TagName returns the fully qualified wire name of a tag id.
func (s *Schema) TagName(id TagID) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.caches[KindTag].GetItem32(uint32(id)).name
}

// ComponentByName resolves a wire name back to an id, for deserialization.
func (s *Schema) ComponentByName(name string) (ComponentID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.caches[KindComponent].GetIndex(name)
	return ComponentID(idx), ok
}

// ArrayByName resolves a wire name back to an id, for deserialization.
func (s *Schema) ArrayByName(name string) (ArrayID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.caches[KindArray].GetIndex(name)
	return ArrayID(idx), ok
}

// TagByName resolves a wire name back to an id, for deserialization.
func (s *Schema) TagByName(name string) (TagID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.caches[KindTag].GetIndex(name)
	return TagID(idx), ok
}

// elementTypesFor returns the table.ElementType for each id, sorted
// ascending by id — the ordering §4.D requires for chunk columns.
func (s *Schema) elementTypesFor(ids []ComponentID) []table.ElementType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sorted := append([]ComponentID(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	out := make([]table.ElementType, 0, len(sorted))
	for _, id := range sorted {
		out = append(out, s.caches[KindComponent].GetItem32(uint32(id)).elem)
	}
	return out
}
