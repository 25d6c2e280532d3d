package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"domainkit/pkg/derrors"
	"domainkit/pkg/entity"
)

func TestID(t *testing.T) {
	id := entity.NewID()
	require.False(t, id.IsZero())
	require.NotEmpty(t, id.String())

	other := entity.NewID()
	require.NotEqual(t, id, other)

	t.Run("round trips through string form", func(t *testing.T) {
		parsed, err := entity.ParseID(id.String())
		require.NoError(t, err)
		require.Equal(t, id, parsed)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		_, err := entity.ParseID("not-a-uuid")
		require.ErrorIs(t, err, derrors.ErrValidation)
	})

	t.Run("zero value", func(t *testing.T) {
		var zero entity.ID
		require.True(t, zero.IsZero())
	})
}

func TestBase(t *testing.T) {
	base := entity.NewBase()
	require.False(t, base.ID.IsZero())
	require.False(t, base.CreatedAt.IsZero())
	require.Equal(t, base.CreatedAt, base.UpdatedAt)

	time.Sleep(time.Millisecond)
	base.Touch()
	require.True(t, base.UpdatedAt.After(base.CreatedAt))
}
