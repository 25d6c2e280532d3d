// Package derrors defines the semantic error kinds used across the domain
// modeling primitives. Kinds are sentinels that work with errors.Is/As
// through the Error wrapper, letting callers branch on the category of a
// failure without string matching.
package derrors

import (
	"errors"
	"fmt"
)

// Kind is a marker interface implemented by all semantic error kinds created
// with NewKind. It allows distinguishing semantic kinds from ordinary errors.
type Kind interface {
	error
	isKind()
}

// kind is an unexported implementation of Kind used as a sentinel value for a
// semantic error category.
type kind struct{ s string }

func (k kind) Error() string { return k.s }
func (k kind) isKind()       {}

// NewKind creates a new semantic error kind (a sentinel) with the provided
// name. Kinds are comparable and can be used with errors.Is/As through the
// derrors.Error wrapper.
func NewKind(name string) Kind { return kind{s: name} }

// Default kinds covering the failure categories of domain modeling.
var (
	// ErrConfiguration indicates construction-time misuse of a primitive,
	// such as a specification built without a name or predicate. It is always
	// surfaced synchronously to the constructing caller.
	ErrConfiguration = NewKind("CONFIGURATION")
	// ErrValidation indicates input that fails a value object's or entity's
	// schema rules.
	ErrValidation = NewKind("VALIDATION")
	// ErrInvariant indicates an aggregate invariant would be violated by the
	// attempted state change.
	ErrInvariant = NewKind("INVARIANT")
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = NewKind("NOT_FOUND")
	// ErrConflict indicates a state conflict, such as a duplicate identity or
	// registration.
	ErrConflict = NewKind("CONFLICT")
	// ErrImmutable indicates an attempt to mutate an immutable value.
	ErrImmutable = NewKind("IMMUTABLE")
	// ErrInternal indicates an unexpected internal failure.
	ErrInternal = NewKind("INTERNAL")
)

// Error represents a semantic error carrying a kind (sentinel), an optional
// wrapped cause and an optional message. It fully supports errors.Is,
// errors.As and unwrapping: matching succeeds against either the kind
// sentinel or the wrapped cause.
//
// Error string formatting:
//   - If both msg and cause are set: "<msg>: <cause>"
//   - If only msg is set: "<msg>"
//   - If only cause is set: "<cause>"
//   - If neither is set: the kind's Error() string.
type Error struct {
	kind Kind
	err  error
	msg  string
}

// With constructs a new semantic error with the given kind and a formatted
// message. Use Wrap if you also want to attach a concrete cause.
func With(k Kind, msgFmt string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(msgFmt, args...)}
}

// Wrap constructs a new semantic error with the given kind, wrapping the
// provided cause and attaching a formatted message.
func Wrap(k Kind, err error, msgFmt string, args ...any) *Error {
	return &Error{kind: k, err: err, msg: fmt.Sprintf(msgFmt, args...)}
}

// KindOnly creates a semantic error carrying only the kind.
func KindOnly(k Kind) *Error { return &Error{kind: k} }

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.msg != "" && e.err != nil:
		return e.msg + ": " + e.err.Error()
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return e.err.Error()
	default:
		if e.kind != nil {
			return e.kind.Error()
		}

		return "unknown error"
	}
}

// Unwrap returns the wrapped cause, enabling errors.Unwrap/Is/As to traverse
// the underlying chain.
func (e *Error) Unwrap() error { return e.err }

// Is matches against either the semantic kind sentinel or the wrapped cause.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}
	if e.kind != nil && errors.Is(e.kind, target) {
		return true
	}
	if e.err != nil && errors.Is(e.err, target) {
		return true
	}

	return false
}

// As matches type assertions against either the semantic kind sentinel or
// the wrapped cause.
func (e *Error) As(target any) bool {
	if e == nil || target == nil {
		return false
	}
	if e.kind != nil && errors.As(e.kind, target) {
		return true
	}
	if e.err != nil && errors.As(e.err, target) {
		return true
	}

	return false
}

// Kind returns the semantic kind sentinel associated with this error, or nil.
func (e *Error) Kind() Kind { return e.kind }

// Message returns the message attached to this error.
func (e *Error) Message() string { return e.msg }
