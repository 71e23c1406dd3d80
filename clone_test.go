package ecs

import "testing"

func TestCloneCopiesComponentsArraysAndReferences(t *testing.T) {
	world, schema := newTestWorld(t)
	position, _ := RegisterComponent[Position](schema)
	floats, _ := RegisterArray[float64](schema)

	target, _ := world.CreateEntity()
	src, _ := world.CreateEntity()
	_ = AddComponentValue(world, src, position, Position{X: 5, Y: 6})
	_ = world.CreateArray(src, floats, 2)
	_, _ = world.AddReference(src, target)

	clone, err := world.Clone(src)
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if clone.Position == src.Position {
		t.Fatal("expected clone to be a distinct entity")
	}

	got, err := GetComponent[Position](world, clone, position)
	if err != nil || got.X != 5 || got.Y != 6 {
		t.Fatalf("expected cloned component values, got %+v, err %v", got, err)
	}

	data, err := world.GetArray(clone, floats)
	if err != nil || len(data) != 2*8 {
		t.Fatalf("expected cloned array of 2 float64s, got %d bytes, err %v", len(data), err)
	}

	cloneRef, err := world.GetReference(clone, 1)
	if err != nil || cloneRef.Position != target.Position {
		t.Fatalf("expected cloned reference list to point at target, got %+v, err %v", cloneRef, err)
	}

	// Mutating the source array afterward must not affect the clone (deep copy).
	if err := world.ResizeArray(src, floats, 9); err != nil {
		t.Fatalf("ResizeArray: %v", err)
	}
	data, _ = world.GetArray(clone, floats)
	if len(data) != 2*8 {
		t.Fatalf("expected clone's array unaffected by source resize, got %d bytes", len(data))
	}
}

func TestAppendRemapsReferencesAndParents(t *testing.T) {
	src, srcSchema := newTestWorld(t)
	position, _ := RegisterComponent[Position](srcSchema)

	parent, _ := src.CreateEntity()
	_ = AddComponentValue(src, parent, position, Position{X: 1})
	child, _ := src.CreateEntity()
	_ = src.SetParent(child, parent)
	_, _ = src.AddReference(child, parent)

	dst, dstSchema := newTestWorld(t)
	if _, err := RegisterComponent[Position](dstSchema); err != nil {
		t.Fatalf("RegisterComponent: %v", err)
	}

	// seed dst with an unrelated entity so positions don't trivially line up
	// between src and dst, exercising the remap rather than an identity map.
	if _, err := dst.CreateEntity(); err != nil {
		t.Fatalf("CreateEntity: %v", err)
	}

	if err := dst.Append(src); err != nil {
		t.Fatalf("Append: %v", err)
	}

	if dst.Stats().LiveEntities != 3 {
		t.Fatalf("expected 3 live entities in dst (1 seed + 2 appended), got %d", dst.Stats().LiveEntities)
	}

	query := NewQuery().WithComponent(position)
	cursor := NewCursor(dst, query)
	var appendedParent Handle
	found := 0
	for cursor.Next() {
		h, _ := cursor.Handle()
		appendedParent = h
		found++
	}
	if found != 1 {
		t.Fatalf("expected exactly 1 entity carrying position in dst, got %d", found)
	}

	children, err := dst.Children(appendedParent)
	if err != nil || len(children) != 1 {
		t.Fatalf("expected the appended parent to have exactly 1 child in dst, got %v, err %v", children, err)
	}
	appendedChild := children[0]

	ref, err := dst.GetReference(appendedChild, 1)
	if err != nil || ref.Position != appendedParent.Position {
		t.Fatalf("expected appended child's reference remapped to the appended parent, got %+v, err %v", ref, err)
	}
}
