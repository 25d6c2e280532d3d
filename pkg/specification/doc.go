// Package specification implements composable boolean predicates over domain
// objects. A Specification carries a human-readable name, a pure in-memory
// predicate, and an optional translation to a structured backend filter.
// Specifications compose with And, Or and Not; composites evaluate both ways
// (in memory and as a query) as long as every operand supports both.
//
// Specifications are immutable values. Composition always allocates a new
// specification and leaves the operands untouched, so atomic specifications
// can be freely shared and reused across many composites and goroutines
// without synchronization.
package specification
