package entity

// Handle is a stable reference into an Arena. It stays valid across
// unrelated inserts and removals; accessing a removed slot fails the
// generation check instead of aliasing a reused slot.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the zero handle.
func (h Handle) IsZero() bool { return h.gen == 0 }

type slot[T any] struct {
	value T
	gen   uint32
	live  bool
}

// Arena is a slot-map container with generation-checked handles.
// The zero value is ready to use.
type Arena[T any] struct {
	slots []slot[T]
	free  []uint32
	count int
}

// Insert stores v and returns its handle.
func (a *Arena[T]) Insert(v T) Handle {
	a.count++
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[idx]
		s.value = v
		s.gen++
		s.live = true
		return Handle{index: idx, gen: s.gen}
	}
	a.slots = append(a.slots, slot[T]{value: v, gen: 1, live: true})
	return Handle{index: uint32(len(a.slots) - 1), gen: 1}
}

// Get returns a pointer to the value for h, or false if the handle is
// stale or was never valid. The pointer is invalidated by Insert.
func (a *Arena[T]) Get(h Handle) (*T, bool) {
	if int(h.index) >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[h.index]
	if !s.live || s.gen != h.gen {
		return nil, false
	}
	return &s.value, true
}

// Remove frees the slot for h. Returns false if h is stale.
func (a *Arena[T]) Remove(h Handle) bool {
	if int(h.index) >= len(a.slots) {
		return false
	}
	s := &a.slots[h.index]
	if !s.live || s.gen != h.gen {
		return false
	}
	var zero T
	s.value = zero
	s.live = false
	a.free = append(a.free, h.index)
	a.count--
	return true
}

// Len returns the number of live values.
func (a *Arena[T]) Len() int { return a.count }

// Each calls fn for every live value. fn must not insert or remove.
func (a *Arena[T]) Each(fn func(Handle, *T)) {
	for i := range a.slots {
		s := &a.slots[i]
		if s.live {
			fn(Handle{index: uint32(i), gen: s.gen}, &s.value)
		}
	}
}
