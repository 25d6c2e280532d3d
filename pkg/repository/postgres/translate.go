package postgres

import (
	"encoding/json"
	"reflect"
	"sort"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/go-faster/errors"

	"domainkit/pkg/specification"
)

// translator compiles structured filters into goqu expressions for a single
// table. It knows which columns store collections as JSONB arrays, because
// the $contains operator means element membership there and substring match
// on plain text columns; the value alone cannot tell the two apart.
type translator struct {
	arrayColumns map[string]struct{}
}

func newTranslator(arrayColumns []string) translator {
	columns := make(map[string]struct{}, len(arrayColumns))
	for _, column := range arrayColumns {
		columns[column] = struct{}{}
	}

	return translator{arrayColumns: columns}
}

// toExpression compiles a structured filter into a goqu expression. The
// combinator wrappers ($and, $or, $not, $nor) come from the specification
// engine; leaf operators are the Mongo-style ones emitted by the common
// predicate library. An empty filter compiles to TRUE (matches everything),
// which makes the "never" filter, $nor of a match-all, compile to NOT TRUE.
func (t translator) toExpression(filter specification.Filter) (exp.Expression, error) {
	if len(filter) == 0 {
		return goqu.L("TRUE"), nil
	}

	exprs := make([]exp.Expression, 0, len(filter))
	for _, key := range sortedKeys(filter) {
		value := filter[key]

		var (
			e   exp.Expression
			err error
		)
		switch key {
		case specification.OpAnd:
			e, err = t.combine(key, value, func(es ...exp.Expression) exp.Expression { return goqu.And(es...) })
		case specification.OpOr:
			e, err = t.combine(key, value, func(es ...exp.Expression) exp.Expression { return goqu.Or(es...) })
		case specification.OpNot:
			e, err = t.negate(value)
		case specification.OpNor:
			e, err = t.combine(key, value, func(es ...exp.Expression) exp.Expression { return goqu.Or(es...) })
			if err == nil {
				e = goqu.L("NOT (?)", e)
			}
		default:
			e, err = t.leafExpression(key, value)
		}
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}

	if len(exprs) == 1 {
		return exprs[0], nil
	}

	return goqu.And(exprs...), nil
}

func (t translator) negate(value any) (exp.Expression, error) {
	inner, ok := asFilter(value)
	if !ok {
		return nil, errors.Errorf("%s expects a filter, got %T", specification.OpNot, value)
	}

	e, err := t.toExpression(inner)
	if err != nil {
		return nil, err
	}

	return goqu.L("NOT (?)", e), nil
}

func (t translator) combine(op string, value any, join func(...exp.Expression) exp.Expression) (exp.Expression, error) {
	filters, ok := asFilterList(value)
	if !ok {
		return nil, errors.Errorf("%s expects a list of filters, got %T", op, value)
	}
	if len(filters) == 0 {
		return nil, errors.Errorf("%s expects at least one filter", op)
	}

	exprs := make([]exp.Expression, 0, len(filters))
	for _, f := range filters {
		e, err := t.toExpression(f)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}

	return join(exprs...), nil
}

// leafExpression compiles a single field clause. A plain value means
// equality, nil means IS NULL, and an operator object applies the Mongo-style
// comparison operators to the field.
func (t translator) leafExpression(field string, value any) (exp.Expression, error) {
	if value == nil {
		return goqu.I(field).IsNull(), nil
	}

	ops, ok := asFilter(value)
	if !ok || !isOperatorObject(ops) {
		return goqu.I(field).Eq(value), nil
	}

	exprs := make([]exp.Expression, 0, len(ops))
	for _, op := range sortedKeys(ops) {
		e, err := t.operatorExpression(field, op, ops[op])
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}

	if len(exprs) == 1 {
		return exprs[0], nil
	}

	return goqu.And(exprs...), nil
}

func (t translator) operatorExpression(field, op string, value any) (exp.Expression, error) {
	ident := goqu.I(field)
	switch op {
	case specification.OpGt:
		return ident.Gt(value), nil
	case specification.OpGte:
		return ident.Gte(value), nil
	case specification.OpLt:
		return ident.Lt(value), nil
	case specification.OpLte:
		return ident.Lte(value), nil
	case specification.OpNe:
		if value == nil {
			return ident.IsNotNull(), nil
		}

		return ident.Neq(value), nil
	case specification.OpIn:
		values, ok := asValueList(value)
		if !ok {
			return nil, errors.Errorf("%s on %q expects a list of values, got %T", op, field, value)
		}

		return ident.In(values...), nil
	case specification.OpRegex:
		pattern, ok := value.(string)
		if !ok {
			return nil, errors.Errorf("%s on %q expects a string pattern, got %T", op, field, value)
		}

		return ident.RegexpLike(pattern), nil
	case specification.OpContains:
		return t.containsExpression(field, value)
	default:
		return nil, errors.Errorf("unsupported operator %q on field %q", op, field)
	}
}

// containsExpression compiles $contains. On a JSONB array column it is exact
// element membership via containment, mirroring the in-memory semantics of
// the Contains specification, e.g. tags @> '["sale"]' does not match a row
// tagged "wholesale". On any other column it is a substring match for string
// values and element membership via ANY for the rest.
func (t translator) containsExpression(field string, value any) (exp.Expression, error) {
	ident := goqu.I(field)

	if _, ok := t.arrayColumns[field]; ok {
		element, err := json.Marshal([]any{value})
		if err != nil {
			return nil, errors.Wrapf(err, "%s on %q could not encode value", specification.OpContains, field)
		}

		return goqu.L("? @> ?", ident, string(element)), nil
	}

	if s, ok := value.(string); ok {
		return ident.Like("%" + escapeLike(s) + "%"), nil
	}

	return goqu.L("? = ANY(?)", value, ident), nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

	return r.Replace(s)
}

// isOperatorObject reports whether every key of the filter is an operator,
// distinguishing {"$gt": 5} from an equality match against a map value.
func isOperatorObject(f specification.Filter) bool {
	if len(f) == 0 {
		return false
	}
	for key := range f {
		if !strings.HasPrefix(key, "$") {
			return false
		}
	}

	return true
}

func asFilter(value any) (specification.Filter, bool) {
	switch v := value.(type) {
	case specification.Filter:
		return v, true
	case map[string]any:
		return v, true
	default:
		return nil, false
	}
}

func asFilterList(value any) ([]specification.Filter, bool) {
	switch v := value.(type) {
	case []specification.Filter:
		return v, true
	case []map[string]any:
		filters := make([]specification.Filter, len(v))
		for i := range v {
			filters[i] = v[i]
		}

		return filters, true
	case []any:
		filters := make([]specification.Filter, 0, len(v))
		for _, item := range v {
			f, ok := asFilter(item)
			if !ok {
				return nil, false
			}
			filters = append(filters, f)
		}

		return filters, true
	default:
		return nil, false
	}
}

func asValueList(value any) ([]any, bool) {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	values := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		values[i] = rv.Index(i).Interface()
	}

	return values, true
}

func sortedKeys(f specification.Filter) []string {
	keys := make([]string, 0, len(f))
	for key := range f {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return keys
}
