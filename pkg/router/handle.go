package router

import (
	"context"
	"sync"
)

// Handle owns one live connection factory bound to a single catalog record.
// Its lifetime is tied to the routing table entry that owns it: replacing the
// table retires the handle, and the factory is physically closed only once the
// last outstanding connection acquired through it has been released.
type Handle struct {
	name    string
	main    bool
	factory ConnectionFactory

	mu      sync.Mutex
	open    int
	retired bool
}

// NewHandle wraps a connection factory as a named routing table entry.
func NewHandle(name string, factory ConnectionFactory, main bool) *Handle {
	return &Handle{name: name, main: main, factory: factory}
}

// Name returns the configured database name of this entry.
func (h *Handle) Name() string { return h.name }

// Main reports whether this entry is the tenant's default database.
func (h *Handle) Main() bool { return h.main }

// OpenCount returns the number of connections acquired through this handle
// and not yet released.
func (h *Handle) OpenCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.open
}

// Acquire opens a connection from the underlying factory, counting it against
// the handle. Returns ErrHandleRetired if the handle belongs to a replaced
// routing table.
func (h *Handle) Acquire(ctx context.Context) (Connection, error) {
	h.mu.Lock()
	if h.retired {
		h.mu.Unlock()
		return nil, ErrHandleRetired
	}
	h.open++
	h.mu.Unlock()

	// The factory may block on network I/O; never hold the lock here.
	conn, err := h.factory.Acquire(ctx)
	if err != nil {
		h.release()
		return nil, err
	}
	return conn, nil
}

// release drops one outstanding connection. If the handle was retired and
// this was the last one, the factory is closed.
func (h *Handle) release() {
	h.mu.Lock()
	if h.open > 0 {
		h.open--
	}
	closeNow := h.retired && h.open == 0
	h.mu.Unlock()

	if closeNow {
		h.factory.Close()
	}
}

// Retire marks the handle as superseded. Acquire fails from now on; the
// factory is closed immediately when no connections are outstanding,
// otherwise when the last one is released.
func (h *Handle) Retire() {
	h.mu.Lock()
	if h.retired {
		h.mu.Unlock()
		return
	}
	h.retired = true
	closeNow := h.open == 0
	h.mu.Unlock()

	if closeNow {
		h.factory.Close()
	}
}
