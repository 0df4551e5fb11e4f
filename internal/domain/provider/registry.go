package provider

import "sync"

// Registry maps each registered provider to the credentials used to reach it.
// A Registry is an ordinary value: callers may hold as many as they like, one
// per user or per request. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[ID]Credentials
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[ID]Credentials)}
}

// Add registers id, replacing any credentials already held for it.
func (r *Registry) Add(id ID, creds Credentials) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = creds
}

// Remove unregisters id. Removing an absent provider is a no-op.
func (r *Registry) Remove(id ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
}

// Get returns the credentials registered for id.
func (r *Registry) Get(id ID) (Credentials, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	creds, ok := r.entries[id]
	return creds, ok
}

// Has reports whether id is registered.
func (r *Registry) Has(id ID) bool {
	_, ok := r.Get(id)
	return ok
}

// IDs returns a sorted snapshot of the registered providers.
func (r *Registry) IDs() []ID {
	r.mu.RLock()
	ids := make([]ID, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	return SortIDs(ids)
}

// Snapshot returns a copy of the registry contents.
func (r *Registry) Snapshot() map[ID]Credentials {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[ID]Credentials, len(r.entries))
	for id, creds := range r.entries {
		out[id] = creds
	}
	return out
}

// Len returns the number of registered providers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
