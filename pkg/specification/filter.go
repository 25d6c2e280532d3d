package specification

// Filter is an opaque nested mapping representing one logical clause of a
// structured backend query. The engine prescribes only the combinator wrapper
// shapes ($and, $or, $not); leaf filter shapes are owned by the leaf
// specifications that produce them, and their interpretation is owned by the
// repository adapter translating filters into a concrete query dialect.
type Filter map[string]any

// Combinator wrappers used by composite specifications.
const (
	OpAnd = "$and"
	OpOr  = "$or"
	OpNot = "$not"
	OpNor = "$nor"
)

// Leaf operators emitted by the predicate constructors in this package.
// Adapters targeting other dialects may translate or reject them.
const (
	OpGt       = "$gt"
	OpGte      = "$gte"
	OpLt       = "$lt"
	OpLte      = "$lte"
	OpNe       = "$ne"
	OpIn       = "$in"
	OpRegex    = "$regex"
	OpContains = "$contains"
)

// And wraps the given filters in an $and clause.
func And(filters ...Filter) Filter {
	return Filter{OpAnd: filters}
}

// Or wraps the given filters in an $or clause.
func Or(filters ...Filter) Filter {
	return Filter{OpOr: filters}
}

// Not wraps the given filter in a $not clause.
func Not(filter Filter) Filter {
	return Filter{OpNot: filter}
}
