// Package router resolves the current tenant to a physical database connection.
//
// It implements the two isolation strategies supported by the platform:
//
//   - database-per-tenant: every tenant owns one or more physical databases,
//     described by the catalog and materialized as a routing table of named
//     connection-factory handles, exactly one of them flagged as the tenant's
//     main database (DatabaseRouter).
//   - schema-per-tenant: all tenants share one physical database and are
//     isolated by schema; the active schema is switched on every acquired
//     connection (SchemaRouter).
//
// The strategy is chosen once at startup from configuration via New; the two
// implementations are never mixed at runtime.
//
// # Routing table
//
// A Table maps normalized tenant identifiers to their named Handle entries.
// Tables are built once by the catalog loader and treated as immutable
// afterwards; a reload produces a new Table which replaces the old one with
// an atomic pointer swap (DatabaseRouter.SwapTable). Handles of a replaced
// table are retired, not closed: each Handle refcounts its outstanding
// connections and closes its factory only once the count drains to zero, so
// in-flight connections are never pulled out from under a request.
//
// # Leak detection
//
// Every connection handed out by a router is recorded in a Registry keyed by
// the connection's stable identity and removed on release. The registry count
// is exposed for health checks; a residual count above zero at shutdown
// indicates a connection leak. Registry bookkeeping is diagnostic only and
// never fails a request.
//
// # Error handling
//
// Resolution failures (unknown tenant, no configuration, missing override,
// unresolvable schema) are typed not-found errors recognizable via IsNotFound,
// so callers can distinguish a bad tenant (4xx) from a broken system (5xx).
// Physical connect and schema-switch failures are transport errors and are
// never classified as not-found.
package router
