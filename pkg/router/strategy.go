package router

import (
	"context"
	"fmt"
	"strings"
)

// Strategy identifies how tenants are isolated from each other.
type Strategy string

const (
	// StrategyDatabase isolates tenants with separate physical databases.
	StrategyDatabase Strategy = "database"
	// StrategySchema isolates tenants with schemas on one shared database.
	// This is the default.
	StrategySchema Strategy = "schema"
)

// ParseStrategy parses the configured strategy value. Matching is
// case-insensitive; an empty value falls back to the schema strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return StrategySchema, nil
	case string(StrategyDatabase):
		return StrategyDatabase, nil
	case string(StrategySchema):
		return StrategySchema, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// Router is the strategy-independent surface queried on every data access.
type Router interface {
	// GetConnection resolves the tenant and opens a connection routed to it.
	GetConnection(ctx context.Context, tenantID string) (Connection, error)
	// ReleaseConnection returns a connection obtained from GetConnection.
	ReleaseConnection(ctx context.Context, conn Connection) error
}

// Config is the configuration surface of the routing layer.
type Config struct {
	// Strategy selects the isolation strategy: "database" or "schema".
	Strategy string `env:"MULTITENANCY_TYPE" envDefault:"schema"`
	// Owner is this service's identity, used to filter the catalog to the
	// database configurations owned by (or shared with) this component.
	Owner string `env:"MULTITENANCY_DATABASE_OWNER"`
	// DatabaseName is the declared name of the shared database, reported by
	// the schema strategy for diagnostics.
	DatabaseName string `env:"MULTITENANCY_DATABASE_NAME" envDefault:"postgres"`
}

// Dependencies carries the strategy-specific collaborators for New. Only the
// fields required by the configured strategy must be set.
type Dependencies struct {
	// Table is the loaded routing table (database strategy).
	Table *Table
	// Selector is the optional database override (database strategy).
	Selector Selector
	// Factory is the shared connection factory (schema strategy).
	Factory ConnectionFactory
	// Resolver maps tenants to schema names (schema strategy).
	Resolver SchemaResolver
}

// New builds the router for the configured strategy. Exactly one of the two
// implementations is chosen at startup; there is no runtime mixing.
func New(cfg Config, deps Dependencies, opts ...Option) (Router, error) {
	strategy, err := ParseStrategy(cfg.Strategy)
	if err != nil {
		return nil, err
	}

	switch strategy {
	case StrategyDatabase:
		if deps.Table == nil {
			return nil, fmt.Errorf("%w: routing table (database strategy)", ErrMissingDependency)
		}
		if deps.Selector != nil {
			opts = append(opts, WithSelector(deps.Selector))
		}
		return NewDatabaseRouter(deps.Table, opts...), nil

	case StrategySchema:
		if deps.Factory == nil {
			return nil, fmt.Errorf("%w: connection factory (schema strategy)", ErrMissingDependency)
		}
		if deps.Resolver == nil {
			return nil, fmt.Errorf("%w: schema resolver (schema strategy)", ErrMissingDependency)
		}
		if cfg.DatabaseName != "" {
			opts = append(opts, WithDatabaseName(cfg.DatabaseName))
		}
		return NewSchemaRouter(deps.Factory, deps.Resolver, opts...), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, cfg.Strategy)
}
