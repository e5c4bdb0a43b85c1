package model

import (
	"fmt"
	"strings"
	"sync"
)

// Ref identifies a model as "provider/model-id". A bare model id resolves
// against the default provider.
type Ref struct {
	ProviderID string
	ModelID    string
}

// ParseRef splits "provider/model-id" into its parts. Without a slash the
// provider part is empty.
func ParseRef(s string) Ref {
	if i := strings.Index(s, "/"); i >= 0 {
		return Ref{ProviderID: s[:i], ModelID: s[i+1:]}
	}
	return Ref{ModelID: s}
}

func (r Ref) String() string {
	if r.ProviderID == "" {
		return r.ModelID
	}
	return r.ProviderID + "/" + r.ModelID
}

// Registry maps provider names to Provider implementations. It is populated
// from the registered model plugins during boot and read-only afterwards.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	order     []string
	defaultID string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds a provider under the given name. The first registered
// provider becomes the default.
func (r *Registry) Register(name string, p Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[name]; exists {
		return fmt.Errorf("model provider %q is already registered", name)
	}
	r.providers[name] = p
	r.order = append(r.order, name)
	if r.defaultID == "" {
		r.defaultID = name
	}
	return nil
}

// Resolve returns the provider for the given model reference string.
func (r *Registry) Resolve(modelRef string) (Provider, Ref, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ref := ParseRef(modelRef)
	providerID := ref.ProviderID
	if providerID == "" {
		providerID = r.defaultID
	}
	p, ok := r.providers[providerID]
	if !ok {
		return nil, ref, fmt.Errorf("no model provider registered for %q", modelRef)
	}
	ref.ProviderID = providerID
	return p, ref, nil
}

// Names returns registered provider names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
