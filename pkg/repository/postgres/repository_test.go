package postgres_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"domainkit/pkg/derrors"
	"domainkit/pkg/entity"
	"domainkit/pkg/repository"
	"domainkit/pkg/repository/postgres"
	"domainkit/pkg/specification"
)

// the postgres repository must satisfy the repository contract
var _ repository.Repository[product] = (*postgres.Repository[product, productRow])(nil)

func TestNewRepository(t *testing.T) {
	mapping := productMapping()

	t.Run("requires a store", func(t *testing.T) {
		_, err := postgres.NewRepository(nil, mapping)
		require.ErrorIs(t, err, derrors.ErrConfiguration)
	})

	t.Run("requires a table", func(t *testing.T) {
		broken := mapping
		broken.Table = ""
		_, err := postgres.NewRepository(&postgres.Store{}, broken)
		require.ErrorIs(t, err, derrors.ErrConfiguration)
	})

	t.Run("requires row conversions", func(t *testing.T) {
		broken := mapping
		broken.FromRow = nil
		_, err := postgres.NewRepository(&postgres.Store{}, broken)
		require.ErrorIs(t, err, derrors.ErrConfiguration)
	})
}

func TestRepositorySaveAndFind(t *testing.T) {
	store, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	repo, err := postgres.NewRepository(store, productMapping())
	require.NoError(t, err)

	gold := newProduct("gold plan", 100, "ACTIVE", true)
	require.NoError(t, repo.Save(ctx, &gold))

	t.Run("find by id", func(t *testing.T) {
		got, err := repo.FindByID(ctx, gold.ID)
		require.NoError(t, err)
		require.Equal(t, gold.ID, got.ID)
		require.Equal(t, "gold plan", got.Name)
		require.True(t, got.Featured)
	})

	t.Run("find by unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, entity.NewID())
		require.ErrorIs(t, err, derrors.ErrNotFound)
	})

	t.Run("save replaces by identity", func(t *testing.T) {
		gold.Price = 120
		require.NoError(t, repo.Save(ctx, &gold))

		got, err := repo.FindByID(ctx, gold.ID)
		require.NoError(t, err)
		require.Equal(t, 120.0, got.Price)

		count, err := repo.CountMatching(ctx, specification.Always[product]())
		require.NoError(t, err)
		require.Equal(t, int64(1), count)
	})

	t.Run("save nil entity", func(t *testing.T) {
		require.ErrorIs(t, repo.Save(ctx, nil), derrors.ErrValidation)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, gold.ID))

		_, err := repo.FindByID(ctx, gold.ID)
		require.ErrorIs(t, err, derrors.ErrNotFound)

		require.ErrorIs(t, repo.Delete(ctx, gold.ID), derrors.ErrNotFound)
	})
}

func TestRepositoryFindMatching(t *testing.T) {
	store, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	metrics := postgres.NewMetrics(prometheus.NewRegistry())
	repo, err := postgres.NewRepository(store, productMapping(), postgres.WithMetrics(metrics))
	require.NoError(t, err)

	seed := []product{
		newProduct("basic plan", 10, "ACTIVE", false, "plan", "sale"),
		newProduct("gold plan", 100, "ACTIVE", true, "plan", "wholesale"),
		newProduct("legacy plan", 50, "DISCONTINUED", false),
		newProduct("draft plan", 75, "DRAFT", false),
	}
	for i := range seed {
		require.NoError(t, repo.Save(ctx, &seed[i]))
	}

	active := specification.Equals[product]("status", "ACTIVE")

	t.Run("atomic specification", func(t *testing.T) {
		got, err := repo.FindMatching(ctx, active)
		require.NoError(t, err)
		require.Len(t, got, 2)
		for _, p := range got {
			require.Equal(t, "ACTIVE", p.Status)
		}
	})

	t.Run("composite specification", func(t *testing.T) {
		spec := active.And(specification.GreaterThan[product]("price", 20))

		got, err := repo.FindMatching(ctx, spec)
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "gold plan", got[0].Name)
	})

	t.Run("negation", func(t *testing.T) {
		got, err := repo.FindMatching(ctx, active.Not())
		require.NoError(t, err)
		require.Len(t, got, 2)
	})

	t.Run("regular expression", func(t *testing.T) {
		spec := specification.Must(specification.New("name starts with g",
			func(product) bool { return false },
			specification.WithQuery[product](func() specification.Filter {
				return specification.Filter{"name": specification.Filter{"$regex": "^g"}}
			})))

		got, err := repo.FindMatching(ctx, spec)
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "gold plan", got[0].Name)
	})

	t.Run("tag membership", func(t *testing.T) {
		spec := specification.Contains[product]("tags", "sale")

		got, err := repo.FindMatching(ctx, spec)
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "basic plan", got[0].Name)

		// the SQL path must agree with the in-memory predicate: the row
		// tagged "wholesale" is not an element match for "sale"
		all, err := repo.FindMatching(ctx, specification.Always[product]())
		require.NoError(t, err)
		for _, p := range all {
			require.Equal(t, p.Name == "basic plan", spec.IsSatisfiedBy(p), p.Name)
		}
	})

	t.Run("match all and match none", func(t *testing.T) {
		all, err := repo.FindMatching(ctx, specification.Always[product]())
		require.NoError(t, err)
		require.Len(t, all, len(seed))

		none, err := repo.FindMatching(ctx, specification.Never[product]())
		require.NoError(t, err)
		require.Empty(t, none)
	})

	t.Run("count matching", func(t *testing.T) {
		count, err := repo.CountMatching(ctx, active)
		require.NoError(t, err)
		require.Equal(t, int64(2), count)

		count, err = repo.CountMatching(ctx, specification.Never[product]())
		require.NoError(t, err)
		require.Zero(t, count)
	})

	t.Run("in-memory fallback without query", func(t *testing.T) {
		cheap := specification.Must(specification.New("cheap",
			func(p product) bool { return p.Price < 60 }))

		got, err := repo.FindMatching(ctx, cheap)
		require.NoError(t, err)
		require.Len(t, got, 2)

		count, err := repo.CountMatching(ctx, cheap)
		require.NoError(t, err)
		require.Equal(t, int64(2), count)
	})

	t.Run("composite loses query when one side has none", func(t *testing.T) {
		noQuery := specification.Must(specification.New("hand written",
			func(p product) bool { return p.Featured }))
		spec := active.And(noQuery)

		_, ok := spec.Query()
		require.False(t, ok)

		got, err := repo.FindMatching(ctx, spec)
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "gold plan", got[0].Name)
	})
}
