package page

import (
	"fmt"
	"io"
	"sort"
	"sync"
)

// Factory creates a canvas that writes its output to w. Backends that
// produce no byte stream may ignore w.
type Factory func(w io.Writer) Canvas

// Registry state - protected by mutex for thread-safe access.
var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
)

// Register registers a backend factory with the given name.
// This function is typically called from init() in backend packages,
// following the database/sql driver pattern:
//
//	func init() {
//	    page.Register("ps", func(w io.Writer) page.Canvas {
//	        return New(WithWriter(w))
//	    })
//	}
//
// Register panics if factory is nil or the name is already registered.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("page: Register factory is nil")
	}
	if _, dup := factories[name]; dup {
		panic("page: Register called twice for " + name)
	}
	factories[name] = factory
}

// Unregister removes a backend from the registry.
// If the backend is not registered, this is a no-op.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// NewCanvas creates a canvas from the named backend writing to w.
func NewCanvas(name string, w io.Writer) (Canvas, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("page: unknown backend %q (forgotten import?)", name)
	}
	return factory(w), nil
}

// Backends returns a sorted list of registered backend names.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}
