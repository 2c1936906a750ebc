package router_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goffice/multitenancy/pkg/router"
)

func TestParseStrategy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    router.Strategy
		wantErr bool
	}{
		{name: "database", in: "database", want: router.StrategyDatabase},
		{name: "schema", in: "schema", want: router.StrategySchema},
		{name: "empty defaults to schema", in: "", want: router.StrategySchema},
		{name: "case-insensitive", in: "DATABASE", want: router.StrategyDatabase},
		{name: "whitespace trimmed", in: " schema ", want: router.StrategySchema},
		{name: "unknown value", in: "hybrid", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := router.ParseStrategy(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, router.ErrUnknownStrategy)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("database strategy", func(t *testing.T) {
		t.Parallel()

		table, _ := twoTenantTable(t)
		r, err := router.New(
			router.Config{Strategy: "database", Owner: "payroll"},
			router.Dependencies{Table: table},
		)
		require.NoError(t, err)
		assert.IsType(t, &router.DatabaseRouter{}, r)
	})

	t.Run("database strategy requires a table", func(t *testing.T) {
		t.Parallel()

		_, err := router.New(
			router.Config{Strategy: "database"},
			router.Dependencies{},
		)
		assert.ErrorIs(t, err, router.ErrMissingDependency)
	})

	t.Run("schema strategy", func(t *testing.T) {
		t.Parallel()

		r, err := router.New(
			router.Config{Strategy: "schema", DatabaseName: "postgres"},
			router.Dependencies{
				Factory:  &mockFactory{name: "shared"},
				Resolver: staticResolver{},
			},
		)
		require.NoError(t, err)
		sr, ok := r.(*router.SchemaRouter)
		require.True(t, ok)
		assert.Equal(t, "postgres", sr.DatabaseName())
	})

	t.Run("schema strategy is the default", func(t *testing.T) {
		t.Parallel()

		r, err := router.New(
			router.Config{},
			router.Dependencies{
				Factory:  &mockFactory{name: "shared"},
				Resolver: staticResolver{},
			},
		)
		require.NoError(t, err)
		assert.IsType(t, &router.SchemaRouter{}, r)
	})

	t.Run("schema strategy requires factory and resolver", func(t *testing.T) {
		t.Parallel()

		_, err := router.New(router.Config{Strategy: "schema"}, router.Dependencies{})
		assert.ErrorIs(t, err, router.ErrMissingDependency)

		_, err = router.New(router.Config{Strategy: "schema"}, router.Dependencies{
			Factory: &mockFactory{name: "shared"},
		})
		assert.ErrorIs(t, err, router.ErrMissingDependency)
	})

	t.Run("unknown strategy", func(t *testing.T) {
		t.Parallel()

		_, err := router.New(router.Config{Strategy: "hybrid"}, router.Dependencies{})
		assert.ErrorIs(t, err, router.ErrUnknownStrategy)
	})
}
