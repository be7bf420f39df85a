package entity

import "testing"

func TestPoolCreateDestroy(t *testing.T) {
	p := NewPool()

	a := p.Create()
	b := p.Create()
	if a.IsZero() || b.IsZero() {
		t.Fatal("pool should never issue the zero ID")
	}
	if a == b {
		t.Fatal("IDs should be unique")
	}
	if !p.Alive(a) || !p.Alive(b) {
		t.Error("fresh IDs should be alive")
	}

	if !p.Destroy(a) {
		t.Error("Destroy of live ID should succeed")
	}
	if p.Alive(a) {
		t.Error("destroyed ID should not be alive")
	}
	if p.Destroy(a) {
		t.Error("double Destroy should be a no-op")
	}

	c := p.Create()
	if c.Index() != a.Index() {
		t.Errorf("slot should be reused: index %d, expected %d", c.Index(), a.Index())
	}
	if c == a || p.Alive(a) {
		t.Error("reused slot must not revive the stale ID")
	}
	if p.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", p.Len())
	}
}

func TestPoolUnknownID(t *testing.T) {
	p := NewPool()
	if p.Alive(None) {
		t.Error("None should never be alive")
	}
	if p.Alive(newID(40, 1)) {
		t.Error("unissued ID should not be alive")
	}
	if p.Destroy(newID(40, 1)) {
		t.Error("Destroy of unissued ID should return false")
	}
}

func TestRegistryOrder(t *testing.T) {
	r := NewRegistry[string]()
	names := []string{"walker", "bat", "turret", "spike"}
	ids := make([]ID, len(names))
	for i, n := range names {
		ids[i] = r.Spawn(func(ID) string { return n })
	}

	r.Destroy(ids[1])

	var got []string
	r.Each(func(_ ID, v string) { got = append(got, v) })

	expected := []string{"walker", "turret", "spike"}
	if len(got) != len(expected) {
		t.Fatalf("Each visited %v, expected %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Each[%d] = %q, expected %q", i, got[i], expected[i])
		}
	}
	if r.Len() != 3 {
		t.Errorf("Len() = %d, expected 3", r.Len())
	}
}

func TestRegistryEachSnapshot(t *testing.T) {
	r := NewRegistry[int]()
	first := r.Spawn(func(ID) int { return 1 })
	second := r.Spawn(func(ID) int { return 2 })

	visited := 0
	r.Each(func(id ID, v int) {
		visited++
		if id == first {
			// Destroy a later entry and spawn a new one mid-iteration.
			r.Destroy(second)
			r.Spawn(func(ID) int { return 3 })
		}
	})

	if visited != 1 {
		t.Errorf("visited %d entries, expected 1", visited)
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", r.Len())
	}
}

func TestRegistrySpawnSeesOwnID(t *testing.T) {
	type thing struct{ id ID }
	r := NewRegistry[*thing]()
	id := r.Spawn(func(id ID) *thing { return &thing{id: id} })

	v, ok := r.Get(id)
	if !ok || v.id != id {
		t.Errorf("Get(%v) = %+v, %v; expected stored value with its own ID", id, v, ok)
	}
}

func TestRegistryReserve(t *testing.T) {
	r := NewRegistry[int]()
	player := r.Reserve()

	if !r.Alive(player) {
		t.Error("reserved ID should be alive")
	}
	if _, ok := r.Get(player); ok {
		t.Error("reserved ID should hold no value")
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", r.Len())
	}

	other := r.Spawn(func(ID) int { return 7 })
	if other == player {
		t.Error("spawned ID must differ from reserved ID")
	}
}

func TestRegistryClear(t *testing.T) {
	r := NewRegistry[int]()
	id := r.Spawn(func(ID) int { return 1 })
	r.Clear()

	if r.Alive(id) || r.Len() != 0 || len(r.IDs()) != 0 {
		t.Error("Clear should drop all entries")
	}
}
