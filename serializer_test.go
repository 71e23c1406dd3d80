package ecs

import (
	"bytes"
	"reflect"
	"testing"
)

func TestRoundTripPreservesComponentsArraysTagsAndHierarchy(t *testing.T) {
	schema := NewSchema()
	position, _ := RegisterComponent[Position](schema)
	floats, _ := RegisterArray[float64](schema)
	frozen, _ := RegisterTag[Frozen](schema)

	world, err := NewWorld(schema)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}

	parent, _ := world.CreateEntity()
	_ = AddComponentValue(world, parent, position, Position{X: 1, Y: 2})

	// Leave a hole in the middle of the position space so the reader must
	// reconstruct it via filler entities, rather than all positions being
	// contiguous by coincidence.
	hole, _ := world.CreateEntity()
	_ = world.DestroyEntity(hole)

	child, _ := world.CreateEntity()
	_ = world.CreateArray(child, floats, 3)
	_ = world.AddTag(child, frozen)
	_ = world.SetParent(child, parent)
	_, _ = world.AddReference(child, parent)
	_ = world.SetEnabled(child, false)

	var buf bytes.Buffer
	if err := WriteWorld(world, &buf); err != nil {
		t.Fatalf("WriteWorld: %v", err)
	}

	readSchema := NewSchema()
	if _, err := RegisterComponent[Position](readSchema); err != nil {
		t.Fatalf("RegisterComponent: %v", err)
	}
	if _, err := RegisterArray[float64](readSchema); err != nil {
		t.Fatalf("RegisterArray: %v", err)
	}
	if _, err := RegisterTag[Frozen](readSchema); err != nil {
		t.Fatalf("RegisterTag: %v", err)
	}

	loaded, err := ReadWorld(readSchema, &buf)
	if err != nil {
		t.Fatalf("ReadWorld: %v", err)
	}

	readPosition, _ := LookupComponent[Position](readSchema)

	loadedParent, err := loaded.handleAt(parent.Position)
	if err != nil {
		t.Fatalf("expected parent position to still resolve: %v", err)
	}
	gotPos, err := GetComponent[Position](loaded, loadedParent, readPosition)
	if err != nil || gotPos.X != 1 || gotPos.Y != 2 {
		t.Fatalf("expected parent's position preserved, got %+v, err %v", gotPos, err)
	}

	loadedChild, err := loaded.handleAt(child.Position)
	if err != nil {
		t.Fatalf("expected child position to still resolve: %v", err)
	}
	loadedFrozen, ok := readSchema.TagByName(qualifiedName(reflect.TypeOf(Frozen{})))
	if !ok {
		t.Fatal("expected Frozen tag name to resolve on the read schema")
	}
	if has, _ := loaded.ContainsTag(loadedChild, loadedFrozen); !has {
		t.Fatal("expected Frozen tag preserved across round-trip")
	}
	if enabled, _ := loaded.IsEnabled(loadedChild); enabled {
		t.Fatal("expected disabled state preserved across round-trip")
	}

	var zeroFloat float64
	loadedArrayID, ok := readSchema.ArrayByName(qualifiedName(reflect.TypeOf(zeroFloat)))
	if !ok {
		t.Fatal("expected float64 array name to resolve on the read schema")
	}
	data, err := loaded.GetArray(loadedChild, loadedArrayID)
	if err != nil || len(data) != 3*8 {
		t.Fatalf("expected 3-element float64 array preserved, got %d bytes, err %v", len(data), err)
	}

	gotParent, err := loaded.Parent(loadedChild)
	if err != nil || gotParent.Position != loadedParent.Position {
		t.Fatalf("expected parent link preserved, got %+v, err %v", gotParent, err)
	}

	ref, err := loaded.GetReference(loadedChild, 1)
	if err != nil || ref.Position != loadedParent.Position {
		t.Fatalf("expected reference preserved, got %+v, err %v", ref, err)
	}

	if loaded.ContainsEntity(Handle{Position: hole.Position, Version: hole.Version}) {
		t.Fatal("expected the destroyed hole to not be resurrected")
	}
}

func TestReadWorldRejectsUnknownType(t *testing.T) {
	writeSchema := NewSchema()
	position, _ := RegisterComponent[Position](writeSchema)
	world, _ := NewWorld(writeSchema)
	h, _ := world.CreateEntity()
	_ = AddComponentValue(world, h, position, Position{X: 1})

	var buf bytes.Buffer
	if err := WriteWorld(world, &buf); err != nil {
		t.Fatalf("WriteWorld: %v", err)
	}

	emptySchema := NewSchema()
	if _, err := ReadWorld(emptySchema, &buf); err == nil {
		t.Fatal("expected UnknownTypeError reading into a schema missing the component type")
	}
}
