package tasklist

import (
	"sort"
	"sync"
)

// Registry caches normalized list name -> remote id.
// It is refreshed in full from the backend, never incrementally, except for lists created locally.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]string
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]string)}
}

func (r *Registry) Lookup(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byName[Normalize(name)]
	return id, ok
}

func (r *Registry) Put(name, id string) {
	n := Normalize(name)
	if n == "" || id == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[n] = id
}

// Replace swaps the whole cache for lists and returns a copy of the new mapping.
func (r *Registry) Replace(lists []List) map[string]string {
	mapping := make(map[string]string, len(lists))
	for _, l := range lists {
		n := Normalize(l.Name)
		if n == "" || l.ID == "" {
			continue
		}
		mapping[n] = l.ID
	}

	r.mu.Lock()
	r.byName = mapping
	r.mu.Unlock()

	return r.Snapshot()
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}

func (r *Registry) Snapshot() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.byName))
	for k, v := range r.byName {
		out[k] = v
	}
	return out
}

// Names returns the cached names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
