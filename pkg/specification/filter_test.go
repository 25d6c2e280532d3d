package specification_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"domainkit/pkg/specification"
)

func TestFilterCombinators(t *testing.T) {
	left := specification.Filter{"a": 1}
	right := specification.Filter{"b": 2}

	require.Equal(t,
		specification.Filter{"$and": []specification.Filter{left, right}},
		specification.And(left, right))
	require.Equal(t,
		specification.Filter{"$or": []specification.Filter{left, right}},
		specification.Or(left, right))
	require.Equal(t,
		specification.Filter{"$not": left},
		specification.Not(left))
}
