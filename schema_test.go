package ecs

import "testing"

func TestRegisterComponentIsIdempotent(t *testing.T) {
	schema := NewSchema()
	id1, err := RegisterComponent[Position](schema)
	if err != nil {
		t.Fatalf("RegisterComponent: %v", err)
	}
	id2, err := RegisterComponent[Position](schema)
	if err != nil {
		t.Fatalf("RegisterComponent: %v", err)
	}
	if id1 != id2 {
		t.Fatalf("expected re-registering the same type to return the same id, got %d and %d", id1, id2)
	}
}

func TestLookupComponentUnknownType(t *testing.T) {
	schema := NewSchema()
	if _, err := LookupComponent[Velocity](schema); err == nil {
		t.Fatal("expected UnknownTypeError for an unregistered type")
	}
}

func TestComponentArrayAndTagIDSpacesAreIndependent(t *testing.T) {
	schema := NewSchema()
	compID, _ := RegisterComponent[Position](schema)
	arrID, _ := RegisterArray[Position](schema)
	tagID, _ := RegisterTag[Position](schema)

	// Tag id 0 is the reserved DisabledTag, so the first user tag gets the next id.
	if compID != 0 || arrID != 0 || tagID != DisabledTag+1 {
		t.Fatalf("expected the first registration in each independent axis to get its first free id (comp=0 arr=0 tag=%d), got comp=%d arr=%d tag=%d", DisabledTag+1, compID, arrID, tagID)
	}
}

func TestComponentSizeAndName(t *testing.T) {
	schema := NewSchema()
	id, _ := RegisterComponent[Position](schema)

	if got := schema.ComponentSize(id); got != 16 {
		t.Fatalf("expected Position (2 float64) to be 16 bytes, got %d", got)
	}
	name := schema.ComponentName(id)
	if name == "" {
		t.Fatal("expected a non-empty qualified name")
	}
	back, ok := schema.ComponentByName(name)
	if !ok || back != id {
		t.Fatalf("expected ComponentByName to round-trip the id, got %d, %v", back, ok)
	}
}
