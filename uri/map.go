package uri

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNotFound is returned by Map.Resolve for a URI that was never
// registered. It is a lookup signal, not an application failure: callers
// catch it and apply their documented fallback.
var ErrNotFound = errors.New("uri not registered")

// Map is a registry from URI to an arbitrary value with exact-key
// semantics. The expected lifecycle is registration during initialization
// followed by concurrent lookups, but interleaved registration and lookup
// is safe as well.
//
// The zero value is not usable; construct with NewMap.
type Map[V any] struct {
	mu      sync.RWMutex
	entries map[URI]V
}

// NewMap creates an empty registry.
func NewMap[V any]() *Map[V] {
	return &Map[V]{entries: make(map[URI]V)}
}

// Set stores value under u, overwriting any prior value for that exact key.
func (m *Map[V]) Set(u URI, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[u] = value
}

// Resolve returns the value stored under u. For a URI that was never
// registered it returns an error matching ErrNotFound; no partial or prefix
// matching is attempted.
func (m *Map[V]) Resolve(u URI) (V, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.entries[u]
	if !ok {
		var zero V
		return zero, fmt.Errorf("%w: %s", ErrNotFound, u)
	}
	return value, nil
}

// Len returns the number of registered URIs.
func (m *Map[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
