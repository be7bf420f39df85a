package entity

// Registry stores values by ID and iterates them in spawn order, so that
// every pass over the world is deterministic.
type Registry[T any] struct {
	pool  *Pool
	items map[ID]T
	order []ID
	dead  int // destroyed IDs still present in order
}

// NewRegistry creates an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		pool:  NewPool(),
		items: make(map[ID]T),
	}
}

// Reserve mints an ID that is tracked as alive but holds no stored value.
// Used for singleton actors that live outside the store but still need an
// identity for timers and effects.
func (r *Registry[T]) Reserve() ID {
	return r.pool.Create()
}

// Spawn allocates an ID, builds the value with it and stores the result.
func (r *Registry[T]) Spawn(build func(id ID) T) ID {
	id := r.pool.Create()
	r.items[id] = build(id)
	r.order = append(r.order, id)
	return id
}

// Get returns the value for a live ID.
func (r *Registry[T]) Get(id ID) (T, bool) {
	v, ok := r.items[id]
	return v, ok
}

// Alive reports whether id is live (stored or reserved).
func (r *Registry[T]) Alive(id ID) bool {
	return r.pool.Alive(id)
}

// Destroy removes the value and invalidates the ID. Returns false for stale
// or unknown IDs.
func (r *Registry[T]) Destroy(id ID) bool {
	if !r.pool.Destroy(id) {
		return false
	}
	if _, ok := r.items[id]; ok {
		delete(r.items, id)
		r.dead++
	}
	return true
}

// Len returns the number of stored values.
func (r *Registry[T]) Len() int {
	return len(r.items)
}

// IDs returns a snapshot of stored IDs in spawn order.
func (r *Registry[T]) IDs() []ID {
	r.compact()
	out := make([]ID, len(r.order))
	copy(out, r.order)
	return out
}

// Each calls fn for every stored value in spawn order. The set of IDs is
// snapshotted first: values spawned during iteration are not visited and
// values destroyed during iteration are skipped.
func (r *Registry[T]) Each(fn func(id ID, v T)) {
	for _, id := range r.IDs() {
		v, ok := r.items[id]
		if !ok {
			continue
		}
		fn(id, v)
	}
}

// Clear removes every value and resets ID allocation.
func (r *Registry[T]) Clear() {
	r.pool = NewPool()
	r.items = make(map[ID]T)
	r.order = r.order[:0]
	r.dead = 0
}

func (r *Registry[T]) compact() {
	if r.dead == 0 {
		return
	}
	live := r.order[:0]
	for _, id := range r.order {
		if _, ok := r.items[id]; ok {
			live = append(live, id)
		}
	}
	r.order = live
	r.dead = 0
}
