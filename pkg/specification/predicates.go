package specification

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"domainkit/pkg/derrors"
)

// This file provides the catalogue of parameterized specification
// constructors. Every constructor is null-safe: a nil candidate, a candidate
// missing the inspected property, or a property of an unexpected type makes
// the specification conservatively unsatisfied. Predicates never panic.
//
// Names are templated from the arguments; use Named to override them.

// Equals matches candidates whose property equals the given value. Numeric
// and named string types are normalized before comparison.
func Equals[T any](property string, value any) Specification[T] {
	return Must(New[T](
		fmt.Sprintf("%s equals %v", property, value),
		func(candidate T) bool {
			got, ok := resolveProperty(candidate, property)

			return ok && equalValues(got, value)
		},
		WithQuery[T](func() Filter {
			return Filter{property: value}
		}),
	))
}

// Contains matches candidates whose property is an array containing value or
// a string containing value as a substring. Any other container type does
// not satisfy the specification.
func Contains[T any](property string, value any) Specification[T] {
	return Must(New[T](
		fmt.Sprintf("%s contains %v", property, value),
		func(candidate T) bool {
			got, ok := resolveProperty(candidate, property)
			if !ok {
				return false
			}

			return containsValue(got, value)
		},
		WithQuery[T](func() Filter {
			return Filter{property: Filter{OpContains: value}}
		}),
	))
}

func containsValue(container, value any) bool {
	rv := reflect.ValueOf(container)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if equalValues(rv.Index(i).Interface(), value) {
				return true
			}
		}

		return false
	case reflect.String:
		sub, ok := asString(value)

		return ok && strings.Contains(rv.String(), sub)
	default:
		return false
	}
}

// Matches matches candidates whose property is a string matching the given
// regular expression. A nil pattern never matches; its filter is the
// unsatisfiable match-none filter so predicate and query stay equivalent.
func Matches[T any](property string, pattern *regexp.Regexp) Specification[T] {
	name := fmt.Sprintf("%s matches %v", property, pattern)

	return Must(New[T](
		name,
		func(candidate T) bool {
			if pattern == nil {
				return false
			}
			got, ok := resolveProperty(candidate, property)
			if !ok {
				return false
			}
			s, ok := asString(got)

			return ok && pattern.MatchString(s)
		},
		WithQuery[T](func() Filter {
			if pattern == nil {
				return Filter{OpNor: []Filter{{}}}
			}

			return Filter{property: Filter{OpRegex: pattern.String()}}
		}),
	))
}

// GreaterThan matches candidates whose property is a number strictly greater
// than value.
func GreaterThan[T any](property string, value float64) Specification[T] {
	return Must(New[T](
		fmt.Sprintf("%s greater than %v", property, value),
		func(candidate T) bool {
			got, ok := numericProperty(candidate, property)

			return ok && got > value
		},
		WithQuery[T](func() Filter {
			return Filter{property: Filter{OpGt: value}}
		}),
	))
}

// LessThan matches candidates whose property is a number strictly less than
// value.
func LessThan[T any](property string, value float64) Specification[T] {
	return Must(New[T](
		fmt.Sprintf("%s less than %v", property, value),
		func(candidate T) bool {
			got, ok := numericProperty(candidate, property)

			return ok && got < value
		},
		WithQuery[T](func() Filter {
			return Filter{property: Filter{OpLt: value}}
		}),
	))
}

// Between matches candidates whose property is a number within the inclusive
// range [low, high].
func Between[T any](property string, low, high float64) Specification[T] {
	return Must(New[T](
		fmt.Sprintf("%s between %v and %v", property, low, high),
		func(candidate T) bool {
			got, ok := numericProperty(candidate, property)

			return ok && got >= low && got <= high
		},
		WithQuery[T](func() Filter {
			return Filter{property: Filter{OpGte: low, OpLte: high}}
		}),
	))
}

func numericProperty(candidate any, property string) (float64, bool) {
	got, ok := resolveProperty(candidate, property)
	if !ok {
		return 0, false
	}

	return asFloat(got)
}

// Within matches candidates whose property is a member of the given value
// set.
func Within[T any](property string, values ...any) Specification[T] {
	return Must(New[T](
		fmt.Sprintf("%s within %v", property, values),
		func(candidate T) bool {
			got, ok := resolveProperty(candidate, property)
			if !ok {
				return false
			}
			for _, v := range values {
				if equalValues(got, v) {
					return true
				}
			}

			return false
		},
		WithQuery[T](func() Filter {
			return Filter{property: Filter{OpIn: values}}
		}),
	))
}

// IsNull matches candidates whose property is present and nil. A missing
// property does not satisfy the specification.
func IsNull[T any](property string) Specification[T] {
	return Must(New[T](
		fmt.Sprintf("%s is null", property),
		func(candidate T) bool {
			got, ok := resolveProperty(candidate, property)

			return ok && isNilValue(got)
		},
		WithQuery[T](func() Filter {
			return Filter{property: nil}
		}),
	))
}

// IsNotNull matches candidates whose property is present and non-nil.
func IsNotNull[T any](property string) Specification[T] {
	return Must(New[T](
		fmt.Sprintf("%s is not null", property),
		func(candidate T) bool {
			got, ok := resolveProperty(candidate, property)

			return ok && !isNilValue(got)
		},
		WithQuery[T](func() Filter {
			return Filter{property: Filter{OpNe: nil}}
		}),
	))
}

// Always is the tautology: every candidate satisfies it, including nil. Its
// filter is empty and matches everything.
func Always[T any]() Specification[T] {
	return Must(New[T](
		"always",
		func(T) bool { return true },
		WithQuery[T](func() Filter {
			return Filter{}
		}),
	))
}

// Never is the contradiction: no candidate satisfies it. Its filter is
// unsatisfiable in the Mongo-style dialect used by this package ($nor of a
// match-all clause); adapters targeting other dialects must map it to an
// equivalent contradiction.
func Never[T any]() Specification[T] {
	return Must(New[T](
		"never",
		func(T) bool { return false },
		WithQuery[T](func() Filter {
			return Filter{OpNor: []Filter{{}}}
		}),
	))
}

// Family instantiates a reusable specification family with concrete
// parameters, e.g. a price-range family instantiated per bracket.
type Family[T, P any] func(params P) Specification[T]

// Parameterized builds a specification family from a name, a predicate
// factory and an optional query factory. The name and predicate factory are
// required; instantiated specifications are named "<name>(<params>)".
func Parameterized[T, P any](
	name string,
	createPredicate func(params P) Predicate[T],
	createQuery func(params P) Filter,
) (Family[T, P], error) {
	if name == "" {
		return nil, derrors.With(derrors.ErrConfiguration, "specification family requires a name")
	}
	if createPredicate == nil {
		return nil, derrors.With(derrors.ErrConfiguration, "specification family %q requires a predicate factory", name)
	}

	return func(params P) Specification[T] {
		opts := []Option[T]{}
		if createQuery != nil {
			opts = append(opts, WithQuery[T](func() Filter {
				return createQuery(params)
			}))
		}

		return Must(New[T](fmt.Sprintf("%s(%v)", name, params), createPredicate(params), opts...))
	}, nil
}
