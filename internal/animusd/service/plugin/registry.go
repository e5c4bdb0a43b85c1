package plugin

import (
	"fmt"
	"sync"
)

// Registry holds all loaded plugins keyed by their process-unique name,
// preserving registration order. Mutations happen only during load and
// teardown phases.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
	order   []string
}

// NewRegistry creates an empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]Plugin),
	}
}

// register adds a plugin under its own name. Two distinct instances are
// never merged under one name: a duplicate is an error for the caller to
// log and skip.
func (r *Registry) register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := p.Name()
	if _, exists := r.plugins[name]; exists {
		return fmt.Errorf("plugin %q is already registered", name)
	}
	r.plugins[name] = p
	r.order = append(r.order, name)
	return nil
}

// Get returns a loaded plugin by name.
func (r *Registry) Get(name string) (Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[name]
	return p, ok
}

// GetByType returns all registered plugins of the given type, in
// registration order.
func (r *Registry) GetByType(t Type) []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Plugin
	for _, name := range r.order {
		if p := r.plugins[name]; p.Type() == t {
			out = append(out, p)
		}
	}
	return out
}

// Names returns all plugin names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered plugins.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// clear drops all registrations. Called by DestroyAll, which always clears
// even when individual teardown calls failed.
func (r *Registry) clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plugins = make(map[string]Plugin)
	r.order = nil
}
