// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Factory creates a Provider with the given options.
type Factory func(opts Options) (Provider, error)

// Backend describes a registered provider backend.
type Backend struct {
	// Name is the unique identifier of the backend.
	Name string

	// Priority orders automatic selection; higher is preferred.
	// The software backend registers with priority 10.
	Priority int

	factory   Factory
	available func() bool
}

// Available reports whether the backend can create providers on this
// system.
func (b Backend) Available() bool {
	return b.available == nil || b.available()
}

// ErrNoBackendAvailable is returned when no registered backend is
// available.
var ErrNoBackendAvailable = errors.New("surface: no backend available")

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "surface: backend not found: " + e.Name
}

// BackendUnavailableError indicates a backend is registered but not
// available.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "surface: backend unavailable: " + e.Name
}

// Registry holds provider backends by name. The zero value is empty and
// ready to use.
type Registry struct {
	mu       sync.RWMutex
	backends map[string]Backend
}

var defaultRegistry Registry

// Register adds a backend to the default registry, replacing any backend
// with the same name. A nil available func means always available.
func Register(name string, priority int, factory Factory, available func() bool) {
	defaultRegistry.Register(name, priority, factory, available)
}

// Unregister removes a backend from the default registry.
func Unregister(name string) {
	defaultRegistry.Unregister(name)
}

// Backends lists the default registry, highest priority first.
func Backends() []Backend {
	return defaultRegistry.Backends()
}

// NewProvider creates a provider from the best available backend of the
// default registry.
func NewProvider(opts Options) (Provider, error) {
	return defaultRegistry.NewProvider(opts)
}

// NewProviderByName creates a provider from the named backend of the
// default registry.
func NewProviderByName(name string, opts Options) (Provider, error) {
	return defaultRegistry.NewProviderByName(name, opts)
}

// Register adds a backend, replacing any backend with the same name.
func (r *Registry) Register(name string, priority int, factory Factory, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.backends == nil {
		r.backends = make(map[string]Backend)
	}
	r.backends[name] = Backend{Name: name, Priority: priority, factory: factory, available: available}
}

// Unregister removes a backend.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.backends, name)
}

// Backends lists the registered backends by descending priority. Backends
// of equal priority are ordered by name.
func (r *Registry) Backends() []Backend {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Backend, 0, len(r.backends))
	for _, b := range r.backends {
		out = append(out, b)
	}
	slices.SortFunc(out, func(a, b Backend) int {
		if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

// NewProvider tries every available backend in priority order and returns
// the first provider created. If all of them fail, the factory errors are
// joined.
func (r *Registry) NewProvider(opts Options) (Provider, error) {
	var errs []error
	for _, b := range r.Backends() {
		if !b.Available() {
			continue
		}
		p, err := b.factory(opts)
		if err == nil {
			return p, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", b.Name, err))
	}

	if len(errs) == 0 {
		return nil, ErrNoBackendAvailable
	}
	return nil, errors.Join(errs...)
}

// NewProviderByName creates a provider from the named backend.
func (r *Registry) NewProviderByName(name string, opts Options) (Provider, error) {
	r.mu.RLock()
	b, ok := r.backends[name]
	r.mu.RUnlock()

	switch {
	case !ok:
		return nil, &BackendNotFoundError{Name: name}
	case !b.Available():
		return nil, &BackendUnavailableError{Name: name}
	}
	return b.factory(opts)
}

func init() {
	Register("software", 10, func(opts Options) (Provider, error) {
		p, err := NewSoftwareProvider(opts)
		if err != nil {
			return nil, err
		}
		return p, nil
	}, nil)
}
