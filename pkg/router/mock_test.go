package router_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/goffice/multitenancy/pkg/router"
)

// mockConn is an in-memory router.Connection with observable state.
type mockConn struct {
	id       string
	mu       sync.Mutex
	execs    []string
	execErr  error
	released bool
	relErr   error
	relCalls int
}

func (c *mockConn) Identity() string { return c.id }

func (c *mockConn) Exec(_ context.Context, sql string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.execErr != nil {
		return c.execErr
	}
	c.execs = append(c.execs, sql)
	return nil
}

func (c *mockConn) Release(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.relCalls++
	c.released = true
	return c.relErr
}

func (c *mockConn) Unwrap() any { return c }

func (c *mockConn) isReleased() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.released
}

func (c *mockConn) executed() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.execs...)
}

// mockFactory hands out mockConns with unique identities. connExecErr and
// connRelErr are copied onto every connection it creates.
type mockFactory struct {
	name        string
	acquireErr  error
	connExecErr error
	connRelErr  error
	mu          sync.Mutex
	conns       []*mockConn
	closed      bool
	seq         atomic.Int64
}

func (f *mockFactory) Acquire(context.Context) (router.Connection, error) {
	if f.acquireErr != nil {
		return nil, f.acquireErr
	}
	conn := &mockConn{
		id:      fmt.Sprintf("%s-conn-%d", f.name, f.seq.Add(1)),
		execErr: f.connExecErr,
		relErr:  f.connRelErr,
	}
	f.mu.Lock()
	f.conns = append(f.conns, conn)
	f.mu.Unlock()
	return conn, nil
}

func (f *mockFactory) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func (f *mockFactory) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *mockFactory) lastConn() *mockConn {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.conns) == 0 {
		return nil
	}
	return f.conns[len(f.conns)-1]
}

// staticResolver resolves a fixed tenant-to-schema mapping.
type staticResolver map[string]string

func (r staticResolver) Schema(_ context.Context, tenantID string) (string, bool) {
	schema, ok := r[tenantID]
	return schema, ok
}
