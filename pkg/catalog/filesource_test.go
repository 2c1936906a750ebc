package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goffice/multitenancy/pkg/catalog"
)

const fixtureYAML = `
tenants:
  Bolzano:
    external_id: bolzano-ext
    schema: bolzano
    databases:
      - name: main-db
        url: postgres://db1.local:5432/bolzano
        username: app
        password: secret
        main: true
      - name: reporting
        owner: analytics
        url: postgres://db2.local:5432/bolzano_reports
  abtei:
    databases:
      - url: postgres://db3.local:5432/abtei
`

func TestParseFileSource(t *testing.T) {
	t.Parallel()

	t.Run("valid document", func(t *testing.T) {
		t.Parallel()

		src, err := catalog.ParseFileSource([]byte(fixtureYAML))
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"bolzano", "abtei"}, src.TenantIDs())
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		_, err := catalog.ParseFileSource([]byte("tenants: [not a map"))
		assert.ErrorIs(t, err, catalog.ErrCatalogFileInvalid)
	})

	t.Run("blank tenant id", func(t *testing.T) {
		t.Parallel()

		_, err := catalog.ParseFileSource([]byte("tenants:\n  '  ':\n    schema: x\n"))
		assert.ErrorIs(t, err, catalog.ErrCatalogFileInvalid)
	})
}

func TestNewFileSource(t *testing.T) {
	t.Parallel()

	t.Run("reads from disk", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "tenants.yaml")
		require.NoError(t, os.WriteFile(path, []byte(fixtureYAML), 0o600))

		src, err := catalog.NewFileSource(path)
		require.NoError(t, err)
		assert.Len(t, src.TenantIDs(), 2)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := catalog.NewFileSource(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, catalog.ErrCatalogFileInvalid)
	})
}

func TestFileSource_Info(t *testing.T) {
	t.Parallel()

	src, err := catalog.ParseFileSource([]byte(fixtureYAML))
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("declared tenant", func(t *testing.T) {
		t.Parallel()

		info, err := src.Info(ctx, "bolzano")
		require.NoError(t, err)
		assert.Equal(t, "bolzano-ext", info.ExternalID)
		assert.Equal(t, "bolzano", info.Schema)
	})

	t.Run("lookup is case-insensitive", func(t *testing.T) {
		t.Parallel()

		info, err := src.Info(ctx, "  BOLZANO  ")
		require.NoError(t, err)
		assert.Equal(t, "bolzano-ext", info.ExternalID)
	})

	t.Run("external id defaults to tenant id", func(t *testing.T) {
		t.Parallel()

		info, err := src.Info(ctx, "abtei")
		require.NoError(t, err)
		assert.Equal(t, "abtei", info.ExternalID)
	})

	t.Run("unknown tenant is not an error", func(t *testing.T) {
		t.Parallel()

		info, err := src.Info(ctx, "Ghost")
		require.NoError(t, err)
		assert.Equal(t, "ghost", info.ExternalID)
	})
}

func TestFileSource_Records(t *testing.T) {
	t.Parallel()

	src, err := catalog.ParseFileSource([]byte(fixtureYAML))
	require.NoError(t, err)

	ctx := context.Background()

	recs, err := src.Records(ctx, "bolzano-ext")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "main-db", recs[0].Name)
	assert.True(t, recs[0].Main)
	assert.Equal(t, "analytics", recs[1].Owner)

	recs, err = src.Records(ctx, "unknown-ext")
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestFileSource_Schema(t *testing.T) {
	t.Parallel()

	src, err := catalog.ParseFileSource([]byte(fixtureYAML))
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("by tenant id", func(t *testing.T) {
		t.Parallel()

		schema, ok := src.Schema(ctx, "bolzano")
		require.True(t, ok)
		assert.Equal(t, "bolzano", schema)
	})

	t.Run("by external id", func(t *testing.T) {
		t.Parallel()

		schema, ok := src.Schema(ctx, "bolzano-ext")
		require.True(t, ok)
		assert.Equal(t, "bolzano", schema)
	})

	t.Run("tenant without schema", func(t *testing.T) {
		t.Parallel()

		_, ok := src.Schema(ctx, "abtei")
		assert.False(t, ok)
	})

	t.Run("unknown tenant", func(t *testing.T) {
		t.Parallel()

		_, ok := src.Schema(ctx, "ghost")
		assert.False(t, ok)
	})
}
