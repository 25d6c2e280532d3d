// Package memory provides an in-memory repository used for tests and
// ephemeral environments. It exercises the iteration fallback of the
// specification contract: every query runs IsSatisfiedBy against each stored
// item, so specifications without a filter translation work unchanged.
package memory

import (
	"context"
	"sync"

	"domainkit/pkg/derrors"
	"domainkit/pkg/entity"
	"domainkit/pkg/specification"
)

// Store is an in-memory repository for a domain type T. It is safe for
// concurrent use.
type Store[T any] struct {
	mu    sync.RWMutex
	items map[entity.ID]T
	id    func(item T) entity.ID
}

// NewStore creates a store using the given identity accessor.
func NewStore[T any](id func(item T) entity.ID) (*Store[T], error) {
	if id == nil {
		return nil, derrors.With(derrors.ErrConfiguration, "store requires an identity accessor")
	}

	return &Store[T]{
		items: make(map[entity.ID]T),
		id:    id,
	}, nil
}

// FindByID retrieves the item with the given identity.
func (s *Store[T]) FindByID(_ context.Context, id entity.ID) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, derrors.With(derrors.ErrNotFound, "entity %s not found", id)
	}

	return &item, nil
}

// FindMatching returns all items satisfying the specification.
func (s *Store[T]) FindMatching(_ context.Context, spec specification.Specification[T]) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []T
	for _, item := range s.items {
		if spec.IsSatisfiedBy(item) {
			matched = append(matched, item)
		}
	}

	return matched, nil
}

// CountMatching returns the number of items satisfying the specification.
func (s *Store[T]) CountMatching(_ context.Context, spec specification.Specification[T]) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, item := range s.items {
		if spec.IsSatisfiedBy(item) {
			count++
		}
	}

	return count, nil
}

// Save stores the item under its identity, replacing any previous version.
func (s *Store[T]) Save(_ context.Context, item *T) error {
	if item == nil {
		return derrors.With(derrors.ErrValidation, "cannot save a nil entity")
	}
	id := s.id(*item)
	if id.IsZero() {
		return derrors.With(derrors.ErrValidation, "cannot save an entity without identity")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[id] = *item

	return nil
}

// Delete removes the item with the given identity.
func (s *Store[T]) Delete(_ context.Context, id entity.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return derrors.With(derrors.ErrNotFound, "entity %s not found", id)
	}
	delete(s.items, id)

	return nil
}

// Len returns the number of stored items.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}
