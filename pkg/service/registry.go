// Package service provides a small registry for wiring domain services by
// name. Domain services hold behavior that does not belong to a single
// entity or aggregate; the registry lets application code resolve them
// without a global dependency container.
package service

import (
	"sync"

	"domainkit/pkg/derrors"
)

// Registry maps service names to service instances. It is safe for
// concurrent use. The zero value is ready to use.
type Registry struct {
	mu       sync.RWMutex
	services map[string]any
}

// Register adds a service under the given name. Registering an empty name or
// a nil service is a configuration error; registering a name twice is a
// conflict.
func (r *Registry) Register(name string, svc any) error {
	if name == "" {
		return derrors.With(derrors.ErrConfiguration, "service requires a name")
	}
	if svc == nil {
		return derrors.With(derrors.ErrConfiguration, "service %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.services[name]; exists {
		return derrors.With(derrors.ErrConflict, "service %q is already registered", name)
	}
	if r.services == nil {
		r.services = make(map[string]any)
	}
	r.services[name] = svc

	return nil
}

// Lookup returns the service registered under name, if any.
func (r *Registry) Lookup(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	svc, ok := r.services[name]

	return svc, ok
}

// Resolve returns the service registered under name asserted to type S. It
// fails when the name is unknown or the registered service has a different
// type.
func Resolve[S any](r *Registry, name string) (S, error) {
	var zero S

	svc, ok := r.Lookup(name)
	if !ok {
		return zero, derrors.With(derrors.ErrNotFound, "service %q is not registered", name)
	}

	typed, ok := svc.(S)
	if !ok {
		return zero, derrors.With(derrors.ErrConfiguration, "service %q is %T, not the requested type", name, svc)
	}

	return typed, nil
}
