package ldtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeID(path ...string) TestID {
	return TestID{Path: path}
}

func TestRegexFilters(t *testing.T) {
	t.Run("no patterns", func(t *testing.T) {
		var f RegexFilters
		assert.False(t, f.IsDefined())
		assert.True(t, f.AsFilter(makeID("Pet", "add pet")))
	})

	t.Run("must match", func(t *testing.T) {
		var f RegexFilters
		require.NoError(t, f.MustMatch.Set("order"))
		assert.True(t, f.AsFilter(makeID("Store", "get order by id")))
		assert.False(t, f.AsFilter(makeID("Pet", "add pet")))
	})

	t.Run("slash pattern selects parent group", func(t *testing.T) {
		var f RegexFilters
		require.NoError(t, f.MustMatch.Set("^Store/get"))
		assert.True(t, f.AsFilter(makeID("Store")))
		assert.True(t, f.AsFilter(makeID("Store", "get inventory")))
		assert.False(t, f.AsFilter(makeID("Pet")))
		assert.False(t, f.AsFilter(makeID("Store", "place order")))
	})

	t.Run("must not match excludes subtree", func(t *testing.T) {
		var f RegexFilters
		require.NoError(t, f.MustNotMatch.Set("^Store"))
		assert.False(t, f.AsFilter(makeID("Store")))
		assert.False(t, f.AsFilter(makeID("Store", "get inventory")))
		assert.True(t, f.AsFilter(makeID("Pet", "add pet")))
	})

	t.Run("invalid regex", func(t *testing.T) {
		var l RegexList
		assert.Error(t, l.Set("(unclosed"))
	})

	t.Run("string form", func(t *testing.T) {
		var l RegexList
		require.NoError(t, l.Set("a"))
		require.NoError(t, l.Set("b"))
		assert.Equal(t, `"a" or "b"`, l.String())
	})
}

func TestTestID(t *testing.T) {
	id := makeID("Pet", "get pets by status")
	assert.Equal(t, "Pet/get pets by status", id.String())
	assert.Equal(t, "Pet", id.Feature())
	assert.Equal(t, "get pets by status", id.Title())

	sub := id.Plus("sold")
	assert.Equal(t, "Pet/get pets by status/sold", sub.String())
	assert.Equal(t, "Pet/get pets by status", id.String())
	assert.Equal(t, "", TestID{}.Feature())
}
