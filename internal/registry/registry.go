package registry

import "sync"

// Map is a thread-safe generic registry keyed by name
type Map[T any] struct {
	mux sync.RWMutex
	m   map[string]T
}

// New creates a new instance of Map
func New[T any]() *Map[T] {
	return &Map[T]{
		m: make(map[string]T),
	}
}

// Lookup retrieves an item by name together with a presence flag
func (r *Map[T]) Lookup(name string) (T, bool) {
	r.mux.RLock()
	defer r.mux.RUnlock()
	v, ok := r.m[name]
	return v, ok
}

// Set adds or updates an item by name
func (r *Map[T]) Set(name string, value T) {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.m[name] = value
}

// Names returns all registered names
func (r *Map[T]) Names() []string {
	r.mux.RLock()
	defer r.mux.RUnlock()
	ret := make([]string, 0, len(r.m))
	for name := range r.m {
		ret = append(ret, name)
	}
	return ret
}
