package resource

import "sync"

// Factory builds a typed resource from a decoded document. The document may
// be nil when the response body was empty or undecodable; factories must
// tolerate that. Factories that need a cluster handle capture it as closure
// state.
type Factory func(doc map[string]interface{}) Object

// registry maps resource kinds to their factories so callers can resolve a
// constructor by kind name instead of doing runtime type lookup.
var registry = struct {
	mu sync.RWMutex
	m  map[string]Factory
}{m: make(map[string]Factory)}

// Register associates a kind name with a factory, replacing any previous
// registration. Typically called from a kind package's init.
func Register(kind string, f Factory) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.m[kind] = f
}

// FactoryFor returns the factory registered for kind. When no factory is
// registered it returns Generic, so unknown kinds still materialize as
// Unstructured resources.
func FactoryFor(kind string) Factory {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	if f, ok := registry.m[kind]; ok {
		return f
	}
	return Generic
}
