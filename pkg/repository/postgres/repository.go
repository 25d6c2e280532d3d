package postgres

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"domainkit/pkg/derrors"
	"domainkit/pkg/entity"
	"domainkit/pkg/logger"
	"domainkit/pkg/specification"
)

const idColumn = "id"

// Mapping binds a domain type T to its database row type R. Row types carry
// the db tags goqu scans by and convert to and from the domain type, keeping
// persistence concerns out of the domain package.
type Mapping[T, R any] struct {
	// Table is the table rows are stored in.
	Table string
	// ArrayColumns lists the columns storing collections as JSONB arrays.
	// A containment filter on them compiles to element membership instead of
	// a substring match.
	ArrayColumns []string
	// ToRow converts a domain value into its row representation.
	ToRow func(item T) (R, error)
	// FromRow converts a row back into its domain value.
	FromRow func(row R) (T, error)
}

// Repository implements the repository contract for a domain type T stored
// in a single table.
type Repository[T, R any] struct {
	store      *Store
	mapping    Mapping[T, R]
	translator translator
	metrics    *Metrics
}

// RepositoryOption customizes a repository at construction time.
type RepositoryOption func(*repositoryOptions)

type repositoryOptions struct {
	metrics *Metrics
}

// WithMetrics attaches prometheus instrumentation to the repository.
func WithMetrics(m *Metrics) RepositoryOption {
	return func(o *repositoryOptions) {
		o.metrics = m
	}
}

// NewRepository creates a repository on the given store using the given
// mapping. The store, table and both conversion functions are required.
func NewRepository[T, R any](store *Store, mapping Mapping[T, R], opts ...RepositoryOption) (*Repository[T, R], error) {
	if store == nil {
		return nil, derrors.With(derrors.ErrConfiguration, "repository requires a store")
	}
	if mapping.Table == "" {
		return nil, derrors.With(derrors.ErrConfiguration, "repository requires a table")
	}
	if mapping.ToRow == nil || mapping.FromRow == nil {
		return nil, derrors.With(derrors.ErrConfiguration, "repository %q requires row conversions", mapping.Table)
	}

	var options repositoryOptions
	for _, opt := range opts {
		opt(&options)
	}

	return &Repository[T, R]{
		store:      store,
		mapping:    mapping,
		translator: newTranslator(mapping.ArrayColumns),
		metrics:    options.metrics,
	}, nil
}

// Bind returns a copy of the repository bound to the given store, typically a
// transactional store obtained from Begin or WithTx.
func (r *Repository[T, R]) Bind(store *Store) *Repository[T, R] {
	clone := *r
	clone.store = store

	return &clone
}

// FindByID retrieves the entity with the given identity.
func (r *Repository[T, R]) FindByID(ctx context.Context, id entity.ID) (*T, error) {
	defer r.metrics.observe(r.mapping.Table, "find_by_id", time.Now())

	var row R
	found, err := r.store.Builder.From(r.mapping.Table).
		Where(goqu.I(idColumn).Eq(uuid.UUID(id))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, errors.Wrap(err, "could not fetch entity by id")
	}
	if !found {
		return nil, derrors.With(derrors.ErrNotFound, "entity %s not found in %s", id, r.mapping.Table)
	}

	item, err := r.mapping.FromRow(row)
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// FindMatching returns all entities satisfying the specification. When the
// specification carries a filter translation it is compiled to SQL;
// otherwise all rows are fetched and filtered in memory with IsSatisfiedBy.
func (r *Repository[T, R]) FindMatching(ctx context.Context, spec specification.Specification[T]) ([]T, error) {
	defer r.metrics.observe(r.mapping.Table, "find_matching", time.Now())

	filter, ok := spec.Query()
	if !ok {
		return r.findFallback(ctx, spec)
	}

	where, err := r.translator.toExpression(filter)
	if err != nil {
		return nil, errors.Wrap(err, "could not translate specification filter")
	}

	logger.Debug(ctx, "running specification query",
		zap.String("specification", spec.Name()),
		zap.String("table", r.mapping.Table))

	var rows []R
	if err := r.store.Builder.From(r.mapping.Table).
		Where(where).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, errors.Wrap(err, "could not fetch matching rows")
	}

	return r.fromRows(rows)
}

// CountMatching returns the number of entities satisfying the specification.
func (r *Repository[T, R]) CountMatching(ctx context.Context, spec specification.Specification[T]) (int64, error) {
	defer r.metrics.observe(r.mapping.Table, "count_matching", time.Now())

	filter, ok := spec.Query()
	if !ok {
		items, err := r.findFallback(ctx, spec)
		if err != nil {
			return 0, err
		}

		return int64(len(items)), nil
	}

	where, err := r.translator.toExpression(filter)
	if err != nil {
		return 0, errors.Wrap(err, "could not translate specification filter")
	}

	var count int64
	if _, err := r.store.Builder.From(r.mapping.Table).
		Select(goqu.COUNT("*")).
		Where(where).
		Executor().ScanValContext(ctx, &count); err != nil {
		return 0, errors.Wrap(err, "could not count matching rows")
	}

	return count, nil
}

// findFallback is the iteration path of the specification contract: fetch
// every row and evaluate the predicate per item.
func (r *Repository[T, R]) findFallback(ctx context.Context, spec specification.Specification[T]) ([]T, error) {
	r.metrics.fallback(r.mapping.Table)
	logger.Debug(ctx, "specification has no query, filtering in memory",
		zap.String("specification", spec.Name()),
		zap.String("table", r.mapping.Table))

	var rows []R
	if err := r.store.Builder.From(r.mapping.Table).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, errors.Wrap(err, "could not fetch rows for in-memory filtering")
	}

	items, err := r.fromRows(rows)
	if err != nil {
		return nil, err
	}

	matched := items[:0]
	for _, item := range items {
		if spec.IsSatisfiedBy(item) {
			matched = append(matched, item)
		}
	}

	return matched, nil
}

// Save persists the entity, inserting it or replacing the existing row with
// the same identity.
func (r *Repository[T, R]) Save(ctx context.Context, item *T) error {
	defer r.metrics.observe(r.mapping.Table, "save", time.Now())

	if item == nil {
		return derrors.With(derrors.ErrValidation, "cannot save a nil entity")
	}

	row, err := r.mapping.ToRow(*item)
	if err != nil {
		return err
	}

	if _, err := r.store.Builder.Insert(r.mapping.Table).
		Rows(row).
		OnConflict(goqu.DoUpdate(idColumn, row)).
		Executor().ExecContext(ctx); err != nil {
		return errors.Wrap(err, "could not save entity")
	}

	return nil
}

// Delete removes the entity with the given identity.
func (r *Repository[T, R]) Delete(ctx context.Context, id entity.ID) error {
	defer r.metrics.observe(r.mapping.Table, "delete", time.Now())

	result, err := r.store.Builder.Delete(r.mapping.Table).
		Where(goqu.I(idColumn).Eq(uuid.UUID(id))).
		Executor().ExecContext(ctx)
	if err != nil {
		return errors.Wrap(err, "could not delete entity")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "could not read affected rows")
	}
	if affected == 0 {
		return derrors.With(derrors.ErrNotFound, "entity %s not found in %s", id, r.mapping.Table)
	}

	return nil
}

func (r *Repository[T, R]) fromRows(rows []R) ([]T, error) {
	items := make([]T, 0, len(rows))
	for _, row := range rows {
		item, err := r.mapping.FromRow(row)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}
