package method

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, m := range List {
		require.Equal(t, m, Parse(m.String()))
	}

	require.Equal(t, Unknown, Parse("get"))
	require.Equal(t, Unknown, Parse("BREW"))
}

func TestSet(t *testing.T) {
	set := NewSet(GET, POST)
	require.True(t, set.Has(GET))
	require.True(t, set.Has(POST))
	require.False(t, set.Has(PUT))
	require.False(t, set.Has(Unknown))
	require.False(t, NewSet(Unknown).Has(Unknown))
}
