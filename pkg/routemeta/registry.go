package routemeta

import "sync"

// Registry maps route names to their metadata. Registration order is
// preserved so catalog discovery is deterministic across restarts.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*Meta
	order  []string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Meta)}
}

// Add registers metadata under a route name. Re-registering a name
// replaces the metadata without disturbing its position.
func (r *Registry) Add(routeName string, meta *Meta) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[routeName]; !exists {
		r.order = append(r.order, routeName)
	}
	r.byName[routeName] = meta
}

// Lookup returns the metadata for a route name.
func (r *Registry) Lookup(routeName string) (*Meta, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meta, ok := r.byName[routeName]
	return meta, ok
}

// Entries returns all registered metadata in registration order.
func (r *Registry) Entries() []*Meta {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]*Meta, 0, len(r.order))
	for _, name := range r.order {
		entries = append(entries, r.byName[name])
	}
	return entries
}

// Len returns the number of registered routes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
