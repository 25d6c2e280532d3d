package catalog

import (
	"regexp"

	"domainkit/pkg/specification"
)

// The catalog specifications are thin compositions over the common predicate
// library. They evaluate in memory and translate to structured filters, so
// the same specification drives both the in-memory store and the PostgreSQL
// repository.

// WithStatus matches products in the given lifecycle state.
func WithStatus(status ProductStatus) specification.Specification[Product] {
	return specification.Equals[Product]("status", string(status))
}

// OnSale matches active products.
func OnSale() specification.Specification[Product] {
	return WithStatus(StatusActive).Named("on sale")
}

// Promoted matches featured products.
func Promoted() specification.Specification[Product] {
	return specification.Equals[Product]("featured", true)
}

// PriceBetween matches products priced within the inclusive range.
func PriceBetween(low, high float64) specification.Specification[Product] {
	return specification.Between[Product]("price", low, high)
}

// CheaperThan matches products priced strictly below the limit.
func CheaperThan(limit float64) specification.Specification[Product] {
	return specification.LessThan[Product]("price", limit)
}

// Tagged matches products carrying the given tag.
func Tagged(tag string) specification.Specification[Product] {
	return specification.Contains[Product]("tags", tag)
}

// NameMatches matches products whose name matches the pattern.
func NameMatches(pattern *regexp.Regexp) specification.Specification[Product] {
	return specification.Matches[Product]("name", pattern)
}

// PriceBracket parameterizes the reusable price-range family.
type PriceBracket struct {
	Low  float64
	High float64
}

// PriceBracketFamily returns a specification family instantiated per price
// bracket, e.g. budget, mid-range and premium tiers sharing one definition.
func PriceBracketFamily() (specification.Family[Product, PriceBracket], error) {
	return specification.Parameterized[Product, PriceBracket](
		"price bracket",
		func(params PriceBracket) specification.Predicate[Product] {
			return func(p Product) bool {
				return p.Price >= params.Low && p.Price <= params.High
			}
		},
		func(params PriceBracket) specification.Filter {
			return specification.Filter{
				"price": specification.Filter{
					specification.OpGte: params.Low,
					specification.OpLte: params.High,
				},
			}
		},
	)
}
