package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
)

// Common errors returned by the transactional store.
var (
	// ErrAlreadyInTx is returned when an operation requiring a non-transactional
	// context is attempted while already inside a transaction.
	ErrAlreadyInTx = errors.New("already in tx")
	// ErrNotInTx is returned when a transaction-specific operation is attempted
	// while not currently inside a transaction.
	ErrNotInTx = errors.New("not in tx")
)

// Commit commits the current transaction. It returns ErrNotInTx if called on
// a store that is not in a transactional context.
func (s *Store) Commit() error {
	db, ok := s.DB.(*sql.Tx)
	if !ok {
		return ErrNotInTx
	}

	if err := db.Commit(); err != nil {
		return fmt.Errorf("could not commit tx: %w", err)
	}

	return nil
}

// Rollback aborts the current transaction. It returns ErrNotInTx if called on
// a store that is not in a transactional context.
func (s *Store) Rollback() error {
	db, ok := s.DB.(*sql.Tx)
	if !ok {
		return ErrNotInTx
	}

	if err := db.Rollback(); err != nil {
		return fmt.Errorf("could not rollback tx: %w", err)
	}

	return nil
}

// Begin starts a new database transaction and returns a transactional store
// that can be used to execute subsequent operations within that transaction.
// If called while already inside a transaction, ErrAlreadyInTx is returned.
func (s *Store) Begin(ctx context.Context) (*Store, error) {
	db, ok := s.DB.(*sql.DB)
	if !ok {
		return nil, ErrAlreadyInTx
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin tx: %w", err)
	}

	return &Store{
		DB:      tx,
		Builder: goqu.NewTx("postgres", tx),
	}, nil
}

// WithTx is a helper that starts a transaction, executes the provided callback
// with a transactional store, and commits if the callback returns nil. If the
// callback returns an error, the transaction is rolled back. Repositories for
// the transactional store are built with Bind.
func (s *Store) WithTx(ctx context.Context, cb func(tx *Store) error) error {
	tx, err := s.Begin(ctx)
	if err != nil {
		return err
	}

	if err := cb(tx); err != nil {
		_ = tx.Rollback()

		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit tx: %w", err)
	}

	return nil
}
