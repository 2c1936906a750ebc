package router

import "context"

// Connection is one physical database connection handed out by a router.
// Implementations wrap the native driver handle (see pkg/pg).
type Connection interface {
	// Identity returns a stable string identifying the underlying physical
	// connection, used as the registry key. An empty identity disables
	// registry tracking for this connection.
	Identity() string

	// Exec runs a single statement on the connection. The routers use it
	// for session-level commands such as switching the active schema.
	Exec(ctx context.Context, sql string) error

	// Release returns the connection to its pool. Implementations must
	// tolerate repeated calls.
	Release(ctx context.Context) error

	// Unwrap exposes the native driver handle for capability probing.
	Unwrap() any
}

// ConnectionFactory opens physical connections against one configured
// database. Factories are owned by the routing table handle (or, in the
// schema strategy, shared by the router) and closed when their owner is done
// with them.
type ConnectionFactory interface {
	Acquire(ctx context.Context) (Connection, error)
	Close()
}
