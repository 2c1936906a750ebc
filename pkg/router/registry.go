package router

import (
	"log/slog"
	"sync"
)

// Registry tracks the identities of currently open connections for
// diagnostic and leak-detection purposes. It is an explicit injected
// component rather than a package-level singleton so tests can instantiate
// isolated registries.
//
// All bookkeeping is best-effort: a connection whose identity cannot be
// computed is logged and skipped, never failed. The critical section is a
// map insert or delete; no I/O happens under the lock.
type Registry struct {
	mu   sync.Mutex
	open map[string]struct{}
	log  *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRegistryLogger sets the logger used for skipped registrations.
func WithRegistryLogger(log *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// NewRegistry creates an empty open-connection registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		open: make(map[string]struct{}),
		log:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register records the connection as open. No-op if the identity is
// unavailable.
func (r *Registry) Register(conn Connection) {
	id, ok := identityOf(conn)
	if !ok {
		r.log.Warn("connection registry: skipping registration, no identity")
		return
	}

	r.mu.Lock()
	r.open[id] = struct{}{}
	count := len(r.open)
	r.mu.Unlock()

	r.log.Debug("connection registered", slog.String("conn_id", id), slog.Int("open_count", count))
}

// Unregister removes the connection from the open set. Idempotent: removing
// an unknown or already-removed connection is a no-op.
func (r *Registry) Unregister(conn Connection) {
	id, ok := identityOf(conn)
	if !ok {
		r.log.Warn("connection registry: skipping unregistration, no identity")
		return
	}

	r.mu.Lock()
	delete(r.open, id)
	count := len(r.open)
	r.mu.Unlock()

	r.log.Debug("connection unregistered", slog.String("conn_id", id), slog.Int("open_count", count))
}

// Count returns the number of connections currently registered as open.
// A non-zero count at shutdown indicates a leak.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.open)
}

func identityOf(conn Connection) (string, bool) {
	if conn == nil {
		return "", false
	}
	id := conn.Identity()
	return id, id != ""
}
