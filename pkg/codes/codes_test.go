package codes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryStatusesInRange(t *testing.T) {
	for _, c := range Registry {
		assert.GreaterOrEqual(t, c.Status, 400, "code %s", c.Name)
		assert.LessOrEqual(t, c.Status, 504, "code %s", c.Name)
		assert.NotEmpty(t, c.Message, "code %s", c.Name)
	}
}

func TestNamesAreUnique(t *testing.T) {
	seen := make(map[string]bool, len(Registry))
	for _, c := range Registry {
		assert.False(t, seen[c.Name], "duplicate code name %s", c.Name)
		seen[c.Name] = true
	}
}

func TestLookup(t *testing.T) {
	c, ok := Lookup("NOT_FOUND")
	require.True(t, ok)
	assert.Equal(t, 404, c.Status)
	assert.Equal(t, "The requested resource was not found.", c.Message)

	_, ok = Lookup("NO_SUCH_CODE")
	assert.False(t, ok)
}

func TestStatusMapRoundTrip(t *testing.T) {
	m := StatusMap()
	require.Len(t, m, len(Registry))
	for _, c := range Registry {
		got, ok := Lookup(c.Name)
		require.True(t, ok, "code %s", c.Name)
		assert.Equal(t, got.Status, m[c.Name], "code %s", c.Name)
	}
}
