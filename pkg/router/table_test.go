package router_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goffice/multitenancy/pkg/router"
)

func TestTable_Add(t *testing.T) {
	t.Parallel()

	t.Run("inserts named handles per tenant", func(t *testing.T) {
		t.Parallel()

		table := router.NewTable()

		_, err := table.Add("bolzano", "main-db", &mockFactory{name: "a"}, true)
		require.NoError(t, err)
		_, err = table.Add("bolzano", "archive", &mockFactory{name: "b"}, false)
		require.NoError(t, err)

		assert.Equal(t, 1, table.Len())
		assert.Equal(t, 2, table.Databases("bolzano"))

		h, ok := table.Lookup("bolzano", "archive")
		require.True(t, ok)
		assert.Equal(t, "archive", h.Name())
		assert.False(t, h.Main())
	})

	t.Run("rejects duplicate database name", func(t *testing.T) {
		t.Parallel()

		table := router.NewTable()
		_, err := table.Add("acme", "a", &mockFactory{name: "a"}, false)
		require.NoError(t, err)

		_, err = table.Add("acme", "a", &mockFactory{name: "b"}, false)
		assert.ErrorIs(t, err, router.ErrDuplicateName)
		assert.Equal(t, 1, table.Databases("acme"))
	})

	t.Run("rejects second main", func(t *testing.T) {
		t.Parallel()

		table := router.NewTable()
		_, err := table.Add("acme", "first", &mockFactory{name: "a"}, true)
		require.NoError(t, err)

		_, err = table.Add("acme", "second", &mockFactory{name: "b"}, true)
		assert.ErrorIs(t, err, router.ErrDuplicateMain)

		h, ok := table.Main("acme")
		require.True(t, ok)
		assert.Equal(t, "first", h.Name())
	})

	t.Run("same name allowed across tenants", func(t *testing.T) {
		t.Parallel()

		table := router.NewTable()
		_, err := table.Add("bolzano", "main-db", &mockFactory{name: "a"}, true)
		require.NoError(t, err)
		_, err = table.Add("abtei", "main-db", &mockFactory{name: "b"}, true)
		require.NoError(t, err)

		assert.Equal(t, 2, table.Len())
	})
}

func TestTable_CaseInsensitiveKeys(t *testing.T) {
	t.Parallel()

	table := router.NewTable()
	_, err := table.Add("Bolzano", "main-db", &mockFactory{name: "a"}, true)
	require.NoError(t, err)

	lower, ok := table.Main("bolzano")
	require.True(t, ok)
	upper, ok := table.Main("BOLZANO")
	require.True(t, ok)
	assert.Same(t, lower, upper)
}

func TestTable_IsEmpty(t *testing.T) {
	t.Parallel()

	table := router.NewTable()
	assert.True(t, table.IsEmpty())

	// A tenant entry with zero handles still counts as empty for routing.
	table.AddTenant("ghost")
	assert.True(t, table.IsEmpty())
	assert.True(t, table.HasTenant("ghost"))
	assert.Equal(t, 0, table.Databases("ghost"))

	_, err := table.Add("bolzano", "main-db", &mockFactory{name: "a"}, true)
	require.NoError(t, err)
	assert.False(t, table.IsEmpty())
}

func TestTable_Retire(t *testing.T) {
	t.Parallel()

	fa := &mockFactory{name: "a"}
	fb := &mockFactory{name: "b"}

	table := router.NewTable()
	_, err := table.Add("bolzano", "main-db", fa, true)
	require.NoError(t, err)
	_, err = table.Add("abtei", "main-db", fb, true)
	require.NoError(t, err)

	table.Retire()

	assert.True(t, fa.isClosed())
	assert.True(t, fb.isClosed())
}
