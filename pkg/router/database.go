package router

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/goffice/multitenancy/pkg/tenant"
)

// Selector is the operational escape hatch of the database strategy: when it
// yields a name, resolution picks that database within the tenant instead of
// the main one. Absence means "use main".
type Selector func() (name string, ok bool)

// DatabaseRouter implements the database-per-tenant strategy. Every request
// resolves the current tenant against the routing table to one connection
// factory handle and opens a connection from it.
//
// The table is held behind an atomic pointer so a reload swaps it without
// in-flight resolutions ever observing a half-built table.
type DatabaseRouter struct {
	table    atomic.Pointer[Table]
	selector Selector
	registry *Registry
	log      *slog.Logger
}

// NewDatabaseRouter creates a router over a loaded routing table.
func NewDatabaseRouter(table *Table, opts ...Option) *DatabaseRouter {
	o := newOptions(opts...)
	r := &DatabaseRouter{
		selector: o.selector,
		registry: o.registry,
		log:      o.log,
	}
	if table == nil {
		table = NewTable()
	}
	r.table.Store(table)
	return r
}

// Table returns the currently published routing table.
func (r *DatabaseRouter) Table() *Table {
	return r.table.Load()
}

// Registry returns the router's open-connection registry.
func (r *DatabaseRouter) Registry() *Registry {
	return r.registry
}

// SwapTable atomically publishes a new routing table, retiring the handles of
// the old one. Retired factories close as soon as their outstanding
// connections drain to zero, so connections opened against the previous table
// stay usable until released. The replaced table is returned.
func (r *DatabaseRouter) SwapTable(next *Table) *Table {
	if next == nil {
		next = NewTable()
	}
	old := r.table.Swap(next)
	if old != nil {
		old.Retire()
	}
	return old
}

// Resolve maps a tenant identifier to a single connection factory handle.
// All failure modes are typed not-found errors; see IsNotFound.
func (r *DatabaseRouter) Resolve(tenantID string) (*Handle, error) {
	table := r.table.Load()

	if table.IsEmpty() {
		r.log.Warn("resolve: no datasources configured")
		return nil, ErrNoDatasources
	}
	if tenant.IsBlank(tenantID) {
		r.log.Warn("resolve: no tenant defined")
		return nil, ErrNoTenant
	}

	key := tenant.Normalize(tenantID)
	count := table.Databases(key)
	if count == 0 {
		// A known tenant with zero configurations is a misconfiguration,
		// not a missing identifier. Logged as error to stand out.
		r.log.Error("resolve: no database configurations for tenant",
			slog.String("tenant_id", key))
		return nil, ErrTenantNotConfigured
	}
	r.log.Debug("resolve: database configurations found",
		slog.String("tenant_id", key), slog.Int("count", count))

	selected := "<main>"
	var h *Handle
	var ok bool
	if name, overridden := r.selectName(); overridden {
		selected = name
		h, ok = table.Lookup(key, name)
	} else {
		h, ok = table.Main(key)
	}
	if !ok {
		r.log.Error("resolve: datasource not found",
			slog.String("tenant_id", key), slog.String("selector", selected))
		return nil, ErrDatabaseNotFound
	}

	r.log.Debug("resolve: datasource found",
		slog.String("tenant_id", key),
		slog.String("selector", selected),
		slog.String("database", h.Name()))
	return h, nil
}

func (r *DatabaseRouter) selectName() (string, bool) {
	if r.selector == nil {
		return "", false
	}
	return r.selector()
}

// GetConnection resolves the tenant, opens a connection from the resolved
// handle and registers it in the open-connection registry.
func (r *DatabaseRouter) GetConnection(ctx context.Context, tenantID string) (Connection, error) {
	h, err := r.Resolve(tenantID)
	if err != nil {
		return nil, err
	}

	conn, err := h.Acquire(ctx)
	if err != nil {
		if errors.Is(err, ErrHandleRetired) {
			return nil, err
		}
		return nil, errors.Join(ErrConnectionFailed, err)
	}

	tc := newTrackedConn(conn, h, r.registry)
	r.registry.Register(tc)
	return tc, nil
}

// ReleaseConnection unregisters the connection and returns it to its pool.
// Releasing an already-released or untracked connection is a no-op, not an
// error.
func (r *DatabaseRouter) ReleaseConnection(ctx context.Context, conn Connection) error {
	if conn == nil {
		return nil
	}
	if tc, ok := conn.(*trackedConn); ok {
		return tc.Release(ctx)
	}
	r.registry.Unregister(conn)
	return conn.Release(ctx)
}

// trackedConn couples a physical connection with the routing table handle it
// was acquired from, so releasing it decrements the handle's refcount and
// removes the registry entry exactly once.
type trackedConn struct {
	conn     Connection
	handle   *Handle
	registry *Registry
	id       string
	released atomic.Bool
}

func newTrackedConn(conn Connection, h *Handle, reg *Registry) *trackedConn {
	// The identity is captured up front: computing it after release may no
	// longer be possible on pooled connections.
	return &trackedConn{conn: conn, handle: h, registry: reg, id: conn.Identity()}
}

func (c *trackedConn) Identity() string { return c.id }

func (c *trackedConn) Exec(ctx context.Context, sql string) error {
	return c.conn.Exec(ctx, sql)
}

func (c *trackedConn) Unwrap() any { return c.conn.Unwrap() }

func (c *trackedConn) Release(ctx context.Context) error {
	if !c.released.CompareAndSwap(false, true) {
		return nil
	}
	c.registry.Unregister(c)
	err := c.conn.Release(ctx)
	c.handle.release()
	return err
}
