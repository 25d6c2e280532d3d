package aggregate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"domainkit/pkg/aggregate"
	"domainkit/pkg/derrors"
)

type stubEvent struct {
	name string
	at   time.Time
}

func (e stubEvent) EventName() string     { return e.name }
func (e stubEvent) OccurredAt() time.Time { return e.at }

func TestRoot(t *testing.T) {
	var root aggregate.Root
	require.Zero(t, root.Version())
	require.Empty(t, root.PullEvents())

	now := time.Now()
	root.Record(stubEvent{name: "first", at: now})
	root.Record(stubEvent{name: "second", at: now})
	require.Equal(t, uint64(2), root.Version())

	events := root.PullEvents()
	require.Len(t, events, 2)
	require.Equal(t, "first", events[0].EventName())
	require.Equal(t, "second", events[1].EventName())

	require.Empty(t, root.PullEvents(), "pulling drains the pending events")
	require.Equal(t, uint64(2), root.Version(), "version survives draining")
}

func TestCheck(t *testing.T) {
	require.NoError(t, aggregate.Check(true, "never built"))

	err := aggregate.Check(false, "cannot ship order %s", "A-1")
	require.ErrorIs(t, err, derrors.ErrInvariant)
	require.EqualError(t, err, "cannot ship order A-1")
}
