package ecs

import "testing"

func TestArrayLifecycle(t *testing.T) {
	world, schema := newTestWorld(t)
	floats, err := RegisterArray[float64](schema)
	if err != nil {
		t.Fatalf("RegisterArray: %v", err)
	}

	h, _ := world.CreateEntity()
	if err := world.CreateArray(h, floats, 3); err != nil {
		t.Fatalf("CreateArray: %v", err)
	}
	if has, _ := world.ContainsArray(h, floats); !has {
		t.Fatal("expected array present")
	}

	if err := world.CreateArray(h, floats, 1); err == nil {
		t.Fatal("expected AlreadyHasArrayError")
	}

	data, err := world.GetArray(h, floats)
	if err != nil {
		t.Fatalf("GetArray: %v", err)
	}
	if len(data) != 3*8 {
		t.Fatalf("expected 24 bytes, got %d", len(data))
	}

	if err := world.ResizeArray(h, floats, 5); err != nil {
		t.Fatalf("ResizeArray: %v", err)
	}
	data, _ = world.GetArray(h, floats)
	if len(data) != 5*8 {
		t.Fatalf("expected 40 bytes after resize, got %d", len(data))
	}

	if err := world.DestroyArray(h, floats); err != nil {
		t.Fatalf("DestroyArray: %v", err)
	}
	if has, _ := world.ContainsArray(h, floats); has {
		t.Fatal("expected array removed")
	}
	if _, err := world.GetArray(h, floats); err == nil {
		t.Fatal("expected MissingArrayError after destroy")
	}
}

type Frozen struct{}

func TestTagLifecycle(t *testing.T) {
	world, schema := newTestWorld(t)
	frozen, err := RegisterTag[Frozen](schema)
	if err != nil {
		t.Fatalf("RegisterTag: %v", err)
	}

	h, _ := world.CreateEntity()
	if err := world.AddTag(h, frozen); err != nil {
		t.Fatalf("AddTag: %v", err)
	}
	if has, _ := world.ContainsTag(h, frozen); !has {
		t.Fatal("expected tag present")
	}
	if err := world.AddTag(h, frozen); err == nil {
		t.Fatal("expected AlreadyHasTagError")
	}

	if err := world.RemoveTag(h, frozen); err != nil {
		t.Fatalf("RemoveTag: %v", err)
	}
	if has, _ := world.ContainsTag(h, frozen); has {
		t.Fatal("expected tag removed")
	}
	if err := world.RemoveTag(h, frozen); err == nil {
		t.Fatal("expected MissingTagError")
	}
}

func TestReferenceSwapRemove(t *testing.T) {
	world, _ := newTestWorld(t)
	h, _ := world.CreateEntity()
	t1, _ := world.CreateEntity()
	t2, _ := world.CreateEntity()
	t3, _ := world.CreateEntity()

	r1, err := world.AddReference(h, t1)
	if err != nil {
		t.Fatalf("AddReference: %v", err)
	}
	r2, _ := world.AddReference(h, t2)
	r3, _ := world.AddReference(h, t3)

	got, err := world.GetReference(h, r2)
	if err != nil || got.Position != t2.Position {
		t.Fatalf("expected r2 to resolve to t2, got %+v, err %v", got, err)
	}

	movedTo, err := world.RemoveReference(h, r1)
	if err != nil {
		t.Fatalf("RemoveReference: %v", err)
	}
	if movedTo != r1 {
		t.Fatalf("expected swap-with-last to move the last ref into r1's slot, got movedTo=%d", movedTo)
	}
	got, err = world.GetReference(h, r1)
	if err != nil || got.Position != t3.Position {
		t.Fatalf("expected r1 slot to now hold t3 after swap-remove, got %+v, err %v", got, err)
	}

	if ok, _ := world.ContainsReference(h, r3); ok {
		t.Fatal("expected r3's old index to be out of range after the list shrank")
	}
}
