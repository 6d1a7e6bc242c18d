package pipeline

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages registered converters with thread-safe operations.
type Registry struct {
	converters map[string]Converter

	mu sync.RWMutex
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		converters: make(map[string]Converter),
	}
}

// Register adds a converter to this registry, replacing any converter
// previously registered under the same name.
func (r *Registry) Register(c Converter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.converters[c.Name()] = c
}

// Get retrieves a converter by name.
func (r *Registry) Get(name string) (Converter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.converters[name]
	return c, ok
}

// Converters returns all registered converters in execution order:
// ascending priority, ties broken by name.
func (r *Registry) Converters() []Converter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Converter, 0, len(r.converters))
	for _, c := range r.converters {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority() != out[j].Priority() {
			return out[i].Priority() < out[j].Priority()
		}
		return out[i].Name() < out[j].Name()
	})
	return out
}

// Unregister removes a converter from this registry.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.converters[name]; !ok {
		return fmt.Errorf("converter %s not registered", name)
	}

	delete(r.converters, name)
	return nil
}

// Count returns the number of registered converters.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.converters)
}
