package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/slicer/ecs/component"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex < 0 {
				return
			}
			if !DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("DestroyEntity should return true for alive entity")
			}
			if IsAlive(w, ents[c.destroyIndex]) {
				t.Fatalf("entity should not be alive after destruction")
			}
			if DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("second DestroyEntity should return false")
			}
			if len(Entities(w)) != c.create-1 {
				t.Fatalf("expected %d entities after destroy, got %d", c.create-1, len(Entities(w)))
			}
		})
	}
}

func TestRecycledSlotGetsNewGeneration(t *testing.T) {
	w := NewWorld()
	a := CreateEntity(w)
	DestroyEntity(w, a)
	b := CreateEntity(w)

	if a.id() != b.id() {
		t.Fatalf("expected slot reuse, got %d and %d", a.id(), b.id())
	}
	if a == b {
		t.Fatalf("recycled entity must not equal stale handle")
	}
	if IsAlive(w, a) {
		t.Fatalf("stale handle reported alive")
	}
	if !IsAlive(w, b) {
		t.Fatalf("new handle reported dead")
	}
}

func TestComponents(t *testing.T) {
	w := NewWorld()
	ints := component.NewComponent[int]()
	names := component.NewComponent[string]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	if err := Add(w, e1, ints, 7); err != nil {
		t.Fatal(err)
	}
	if err := Add(w, e2, ints, 9); err != nil {
		t.Fatal(err)
	}
	if err := Add(w, e2, names, "two"); err != nil {
		t.Fatal(err)
	}

	if v, ok := Get(w, e1, ints); !ok || v != 7 {
		t.Fatalf("Get(e1) = %v, %v", v, ok)
	}
	if Has(w, e1, names) {
		t.Fatalf("e1 should not have a name")
	}
	if err := Add(w, e1, ints, 8); err != nil {
		t.Fatal(err)
	}
	if v, _ := Get(w, e1, ints); v != 8 {
		t.Fatalf("expected overwrite, got %d", v)
	}
	if Count(w, ints) != 2 {
		t.Fatalf("expected 2 ints, got %d", Count(w, ints))
	}

	if !Remove(w, e2, ints) {
		t.Fatalf("Remove should report true")
	}
	if Remove(w, e2, ints) {
		t.Fatalf("second Remove should report false")
	}
	if Has(w, e2, ints) {
		t.Fatalf("component still present after Remove")
	}

	DestroyEntity(w, e2)
	if err := Add(w, e2, names, "again"); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
	if _, ok := Get(w, e2, names); ok {
		t.Fatalf("dead entity should have no components")
	}
}

func TestInvalidHandle(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	var zero component.ComponentHandle[int]
	if err := Add(w, e, zero, 1); !errors.Is(err, component.ErrInvalidComponentKind) {
		t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
	}
}

func TestForEachOrder(t *testing.T) {
	w := NewWorld()
	ints := component.NewComponent[int]()
	tags := component.NewComponent[struct{}]()

	var ents []Entity
	for i := 0; i < 5; i++ {
		e := CreateEntity(w)
		ents = append(ents, e)
		if err := Add(w, e, ints, i); err != nil {
			t.Fatal(err)
		}
	}
	// Removing from the middle swaps dense storage; iteration must still
	// follow slot order.
	Remove(w, ents[1], ints)
	_ = Add(w, ents[3], tags, struct{}{})
	_ = Add(w, ents[4], tags, struct{}{})

	var got []int
	ForEach(w, ints, func(e Entity, v int) { got = append(got, v) })
	want := []int{0, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}

	var both []Entity
	ForEach2(w, ints, tags, func(e Entity, _ int, _ struct{}) { both = append(both, e) })
	if len(both) != 2 || both[0] != ents[3] || both[1] != ents[4] {
		t.Fatalf("unexpected ForEach2 result %v", both)
	}
}

func TestForEachAllowsDestroy(t *testing.T) {
	w := NewWorld()
	ints := component.NewComponent[int]()
	for i := 0; i < 4; i++ {
		_ = Add(w, CreateEntity(w), ints, i)
	}

	visited := 0
	ForEach(w, ints, func(e Entity, v int) {
		visited++
		DestroyEntity(w, e)
	})
	if visited != 4 {
		t.Fatalf("expected 4 visits, got %d", visited)
	}
	if Count(w, ints) != 0 || len(Entities(w)) != 0 {
		t.Fatalf("expected empty world")
	}
}
