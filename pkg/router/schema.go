package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// SchemaResolver maps a tenant identifier to the schema name isolating that
// tenant on the shared database. An external collaborator, typically backed
// by the tenant directory.
type SchemaResolver interface {
	Schema(ctx context.Context, tenantID string) (string, bool)
}

// SchemaResolverFunc adapts a plain function to the SchemaResolver interface.
type SchemaResolverFunc func(ctx context.Context, tenantID string) (string, bool)

// Schema implements SchemaResolver.
func (f SchemaResolverFunc) Schema(ctx context.Context, tenantID string) (string, bool) {
	return f(ctx, tenantID)
}

// SchemaRouter implements the schema-per-tenant strategy: all tenants share
// one physical database, and every acquired connection has its active schema
// switched to the tenant's namespace before being handed out.
type SchemaRouter struct {
	factory      ConnectionFactory
	resolver     SchemaResolver
	registry     *Registry
	databaseName string
	switchSQL    func(schema string) string
	log          *slog.Logger
}

// NewSchemaRouter creates a router over the single shared connection factory.
func NewSchemaRouter(factory ConnectionFactory, resolver SchemaResolver, opts ...Option) *SchemaRouter {
	o := newOptions(opts...)
	return &SchemaRouter{
		factory:      factory,
		resolver:     resolver,
		registry:     o.registry,
		databaseName: o.databaseName,
		switchSQL:    o.switchSQL,
		log:          o.log,
	}
}

// DatabaseName returns the declared name of the shared database. Purely
// informational, used for logging and diagnostics.
func (r *SchemaRouter) DatabaseName() string { return r.databaseName }

// Registry returns the router's open-connection registry.
func (r *SchemaRouter) Registry() *Registry { return r.registry }

// Unwrap exposes the shared connection factory for capability probing.
func (r *SchemaRouter) Unwrap() any { return r.factory }

// GetConnection opens a connection from the shared factory and switches its
// active schema to the tenant's namespace. When the tenant cannot be resolved
// to a schema, the just-opened connection is closed before the error is
// returned; this path never leaks a connection.
func (r *SchemaRouter) GetConnection(ctx context.Context, tenantID string) (Connection, error) {
	conn, err := r.factory.Acquire(ctx)
	if err != nil {
		return nil, errors.Join(ErrConnectionFailed, err)
	}

	schema, ok := r.resolver.Schema(ctx, tenantID)
	if !ok {
		r.log.Error("unable to identify the db schema for tenant",
			slog.String("tenant_id", tenantID))
		r.closeOnFailure(ctx, conn)
		return nil, fmt.Errorf("%w: %q", ErrSchemaNotFound, tenantID)
	}

	if err := conn.Exec(ctx, r.switchSQL(schema)); err != nil {
		r.closeOnFailure(ctx, conn)
		return nil, errors.Join(ErrSchemaSwitchFailed, err)
	}

	r.registry.Register(conn)
	r.log.Debug("schema connection opened",
		slog.String("tenant_id", tenantID),
		slog.String("schema", schema),
		slog.String("database", r.databaseName))
	return conn, nil
}

// closeOnFailure is best-effort: a failing close is logged, the original
// failure is what reaches the caller.
func (r *SchemaRouter) closeOnFailure(ctx context.Context, conn Connection) {
	if err := conn.Release(ctx); err != nil {
		r.log.Error("unable to close the connection", slog.Any("error", err))
	}
}

// ReleaseConnection unregisters the connection and returns it to the shared
// pool.
func (r *SchemaRouter) ReleaseConnection(ctx context.Context, conn Connection) error {
	if conn == nil {
		return nil
	}
	r.registry.Unregister(conn)
	return conn.Release(ctx)
}

// ReleaseAny is the tenant-agnostic release used by callers that do not carry
// the tenant identifier at release time. Identical to ReleaseConnection in
// this strategy.
func (r *SchemaRouter) ReleaseAny(ctx context.Context, conn Connection) error {
	return r.ReleaseConnection(ctx, conn)
}

// defaultSwitchSQL targets PostgreSQL. Schema names come from the tenant
// directory, not from request input, but are quoted regardless.
func defaultSwitchSQL(schema string) string {
	return "SET search_path TO " + quoteIdentifier(schema)
}

func quoteIdentifier(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
