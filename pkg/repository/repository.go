// Package repository defines the persistence contract consumed by
// application code. Repositories accept specifications as opaque predicates
// or query sources: an adapter with a query-capable backend translates the
// specification's filter, while any adapter can fall back to iterating
// candidates and evaluating IsSatisfiedBy per item.
package repository

import (
	"context"

	"domainkit/pkg/entity"
	"domainkit/pkg/specification"
)

// Repository is the generic persistence contract for a domain type T.
type Repository[T any] interface {
	// FindByID retrieves the entity with the given identity. A miss yields a
	// derrors.ErrNotFound error.
	FindByID(ctx context.Context, id entity.ID) (*T, error)
	// FindMatching returns all entities satisfying the specification.
	FindMatching(ctx context.Context, spec specification.Specification[T]) ([]T, error)
	// CountMatching returns the number of entities satisfying the
	// specification.
	CountMatching(ctx context.Context, spec specification.Specification[T]) (int64, error)
	// Save persists the entity, creating or replacing it by identity.
	Save(ctx context.Context, item *T) error
	// Delete removes the entity with the given identity. Deleting an unknown
	// identity yields a derrors.ErrNotFound error.
	Delete(ctx context.Context, id entity.ID) error
}
