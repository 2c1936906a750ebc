// Package pg is the PostgreSQL backend of the connection routing layer,
// built on the pgx/v5 driver.
//
// It provides the concrete connection-factory implementation the routing
// table hands out: a Factory wraps one *pgxpool.Pool built from a catalog
// record, and the connections it yields satisfy the router's Connection
// interface, including a stable identity (used by the open-connection
// registry) and a capability probe down to the native pgx handle.
//
// # Usage
//
//	factory, err := pg.NewFactory(ctx, pg.FactoryConfig{
//	    URL:      rec.URL,
//	    Username: rec.Username,
//	    Password: rec.Password,
//	})
//
// Wiring into the catalog loader:
//
//	loader, err := catalog.NewLoader(owner, source, pg.Builder(poolCfg))
//
// Pool sizing, retry cadence and lifetimes come from Config, populated from
// environment variables. Connection acquisition timeouts are the pool's own
// concern; the routing layer adds no timeout of its own.
//
// # Error Handling
//
// Helpers such as [IsNotFoundError] and [IsDuplicateKeyError] classify errors
// returned by pgx (*pgconn.PgError) so business logic never matches on
// SQLSTATE strings.
package pg
