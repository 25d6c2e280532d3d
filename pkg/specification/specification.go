package specification

import (
	"domainkit/pkg/derrors"
)

// Predicate is a pure function deciding whether a candidate satisfies a rule.
// It must be deterministic and free of side effects.
type Predicate[T any] func(candidate T) bool

// QueryFn produces the structured filter equivalent of a specification's
// predicate. The filter must be logically equivalent to the predicate for a
// well-formed backend; this is a contract between the author and the query
// executor, not something the engine can enforce.
type QueryFn func() Filter

// Specification is an immutable, named boolean rule over candidates of type T.
// The zero value is not usable; construct specifications with New or the
// predicate constructors in this package.
type Specification[T any] struct {
	name  string
	pred  Predicate[T]
	query QueryFn // nil when the specification has no query translation
}

// Option customizes a specification at construction time.
type Option[T any] func(*Specification[T])

// WithQuery attaches a query translation to the specification being built.
func WithQuery[T any](fn QueryFn) Option[T] {
	return func(s *Specification[T]) {
		s.query = fn
	}
}

// New constructs an atomic specification from a name and a predicate.
// Both are required; a missing name or nil predicate is a configuration
// error surfaced to the caller, never silently defaulted.
func New[T any](name string, pred Predicate[T], opts ...Option[T]) (Specification[T], error) {
	if name == "" {
		return Specification[T]{}, derrors.With(derrors.ErrConfiguration, "specification requires a name")
	}
	if pred == nil {
		return Specification[T]{}, derrors.With(derrors.ErrConfiguration, "specification %q requires a predicate", name)
	}

	s := Specification[T]{name: name, pred: pred}
	for _, opt := range opts {
		opt(&s)
	}

	return s, nil
}

// Must returns the given specification or panics if its construction failed.
// Intended for constructors whose inputs are statically known to be valid.
func Must[T any](s Specification[T], err error) Specification[T] {
	if err != nil {
		panic(err)
	}

	return s
}

// Name returns the human-readable name of the specification. Composite names
// literalize the fold order, e.g. a.And(b).Or(c) is named "A AND B OR C".
func (s Specification[T]) Name() string { return s.name }

// Named returns a copy of the specification with the given name, leaving the
// receiver untouched. It allows callers to override templated names.
func (s Specification[T]) Named(name string) Specification[T] {
	s.name = name

	return s
}

// IsSatisfiedBy reports whether the candidate satisfies the specification.
func (s Specification[T]) IsSatisfiedBy(candidate T) bool {
	if s.pred == nil {
		return false
	}

	return s.pred(candidate)
}

// HasQuery reports whether the specification can translate itself into a
// structured filter.
func (s Specification[T]) HasQuery() bool { return s.query != nil }

// Query returns the structured filter equivalent of the specification. The
// second return value is false when no translation is available, in which
// case the caller must fall back to iterating candidates with IsSatisfiedBy.
func (s Specification[T]) Query() (Filter, bool) {
	if s.query == nil {
		return nil, false
	}

	return s.query(), true
}

// And combines the receiver with another specification, satisfied only when
// both are. Evaluation short-circuits: the receiver is evaluated first and
// the other operand is skipped when the receiver already fails. The composite
// has a query only if both operands have one. Composition never simplifies:
// s.And(s) is a distinct specification, not s.
func (s Specification[T]) And(other Specification[T]) Specification[T] {
	out := Specification[T]{
		name: s.name + " AND " + other.name,
		pred: func(candidate T) bool {
			return s.IsSatisfiedBy(candidate) && other.IsSatisfiedBy(candidate)
		},
	}
	if s.query != nil && other.query != nil {
		left, right := s.query, other.query
		out.query = func() Filter {
			return And(left(), right())
		}
	}

	return out
}

// Or combines the receiver with another specification, satisfied when either
// is. Evaluation short-circuits on the receiver's truth. The composite has a
// query only if both operands have one.
func (s Specification[T]) Or(other Specification[T]) Specification[T] {
	out := Specification[T]{
		name: s.name + " OR " + other.name,
		pred: func(candidate T) bool {
			return s.IsSatisfiedBy(candidate) || other.IsSatisfiedBy(candidate)
		},
	}
	if s.query != nil && other.query != nil {
		left, right := s.query, other.query
		out.query = func() Filter {
			return Or(left(), right())
		}
	}

	return out
}

// Not negates the receiver. The composite has a query only if the receiver
// has one. Double negation is representable and never collapsed:
// s.Not().Not() is named "NOT NOT <name>".
func (s Specification[T]) Not() Specification[T] {
	out := Specification[T]{
		name: "NOT " + s.name,
		pred: func(candidate T) bool {
			return !s.IsSatisfiedBy(candidate)
		},
	}
	if s.query != nil {
		inner := s.query
		out.query = func() Filter {
			return Not(inner())
		}
	}

	return out
}
