package derrors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"domainkit/pkg/derrors"
)

type customError struct{ msg string }

func (e customError) Error() string { return e.msg }

func TestDefaultKindsDistinct(t *testing.T) {
	kinds := []derrors.Kind{
		derrors.ErrConfiguration,
		derrors.ErrValidation,
		derrors.ErrInvariant,
		derrors.ErrNotFound,
		derrors.ErrConflict,
		derrors.ErrImmutable,
		derrors.ErrInternal,
	}
	seen := map[derrors.Kind]bool{}
	for i, k := range kinds {
		require.NotNil(t, k, "kind at index %d is nil", i)
		require.False(t, seen[k], "kind at index %d is duplicate: %v", i, k)
		seen[k] = true
	}
}

func TestErrorFormatting(t *testing.T) {
	base := errors.New("pool exhausted")

	e1 := derrors.With(derrors.ErrNotFound, "product %d not found", 42)
	require.Equal(t, "product 42 not found", e1.Error())

	e2 := derrors.Wrap(derrors.ErrNotFound, base, "loading product")
	require.Equal(t, "loading product: pool exhausted", e2.Error())

	e3 := derrors.KindOnly(derrors.ErrNotFound)
	require.Equal(t, "NOT_FOUND", e3.Error())
}

func TestIsMatchesKindAndWrapped(t *testing.T) {
	base := customError{"root cause"}
	e := derrors.Wrap(derrors.ErrInvariant, base, "discontinuing")

	require.ErrorIs(t, e, derrors.ErrInvariant)
	require.ErrorIs(t, e, base)
	require.NotErrorIs(t, e, derrors.ErrValidation, "errors.Is should not match a different kind")
}

func TestAsMatchesKindAndWrapped(t *testing.T) {
	base := &customError{"root cause"}
	e := derrors.Wrap(derrors.ErrConfiguration, base, "building")

	var k derrors.Kind
	require.ErrorAs(t, e, &k, "errors.As should extract Kind")
	require.Equal(t, derrors.ErrConfiguration, k)

	var ce *customError
	require.ErrorAs(t, e, &ce, "errors.As should extract wrapped error type")
	require.Equal(t, base, ce)
}

func TestAccessors(t *testing.T) {
	base := errors.New("boom")
	e := derrors.Wrap(derrors.ErrConflict, base, "saving")
	require.Equal(t, derrors.ErrConflict, e.Kind())
	require.Equal(t, "saving", e.Message())
	require.Equal(t, base, e.Unwrap())
}
