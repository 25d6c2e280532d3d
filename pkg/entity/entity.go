// Package entity provides identity primitives shared by domain entities and
// aggregates. Entities are distinguished by identity rather than by their
// attributes; this package supplies the identity type and the timestamp
// bookkeeping entities embed, free of infrastructure concerns.
package entity

import (
	"time"

	"github.com/google/uuid"

	"domainkit/pkg/derrors"
)

// ID uniquely identifies an entity. It wraps uuid.UUID to provide type
// safety at the domain layer.
type ID uuid.UUID

// NewID generates a fresh random identity.
func NewID() ID { return ID(uuid.New()) }

// ParseID parses an identity from its canonical string form.
func ParseID(s string) (ID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ID{}, derrors.Wrap(derrors.ErrValidation, err, "could not parse entity id %q", s)
	}

	return ID(id), nil
}

// String returns the canonical string form of the identity.
func (id ID) String() string { return uuid.UUID(id).String() }

// IsZero reports whether the identity is the zero value.
func (id ID) IsZero() bool { return id == ID{} }

// Base carries the identity and timestamps common to all entities. Embed it
// in a domain entity and initialize it with NewBase.
type Base struct {
	// ID is the unique identifier of the entity.
	ID ID `json:"id"`
	// CreatedAt is the time the entity was created.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the time the entity was last modified.
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewBase returns a Base with a fresh identity and creation timestamp.
func NewBase() Base {
	now := time.Now().UTC()

	return Base{ID: NewID(), CreatedAt: now, UpdatedAt: now}
}

// Touch records a modification time. Callers mutate entities only through
// their own methods, which are expected to call Touch on success.
func (b *Base) Touch() { b.UpdatedAt = time.Now().UTC() }
