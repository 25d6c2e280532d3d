// Package aggregate provides the event recording and invariant machinery
// embedded by aggregate roots. An aggregate records domain events as its
// state changes; the application layer drains them after persistence and
// hands them to whatever dispatch mechanism it uses.
package aggregate

import (
	"time"

	"domainkit/pkg/derrors"
)

// Event is a fact about a state change of an aggregate.
type Event interface {
	// EventName identifies the event type, e.g. "product.discontinued".
	EventName() string
	// OccurredAt is the time the event happened.
	OccurredAt() time.Time
}

// Root is the embeddable core of an aggregate. It collects recorded events
// and tracks a monotonically increasing version. Root is not safe for
// concurrent mutation; an aggregate instance belongs to one unit of work at
// a time.
type Root struct {
	events  []Event
	version uint64
}

// Record appends an event to the aggregate's pending events and bumps its
// version.
func (r *Root) Record(event Event) {
	r.events = append(r.events, event)
	r.version++
}

// PullEvents returns the pending events and clears them. Subsequent calls
// return nil until new events are recorded.
func (r *Root) PullEvents() []Event {
	events := r.events
	r.events = nil

	return events
}

// Version returns the number of events recorded over the aggregate's
// lifetime.
func (r *Root) Version() uint64 { return r.version }

// Check returns nil when ok is true, and an invariant violation error with
// the formatted message otherwise. Aggregate methods use it to guard state
// changes.
func Check(ok bool, msgFmt string, args ...any) error {
	if ok {
		return nil
	}

	return derrors.With(derrors.ErrInvariant, msgFmt, args...)
}
