package pg

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/goffice/multitenancy/pkg/catalog"
	"github.com/goffice/multitenancy/pkg/router"
)

// FactoryConfig describes one database a factory connects to. URL and
// credentials come from the catalog record; Pool applies the component-wide
// pool settings.
type FactoryConfig struct {
	URL      string
	Username string
	Password string
	Pool     Config
}

// Factory owns one pgx connection pool bound to a single configured
// database. It implements router.ConnectionFactory.
type Factory struct {
	pool   *pgxpool.Pool
	closed atomic.Bool
}

// NewFactory builds a connection pool for the given database, retrying with
// linear backoff so transient network issues at startup do not fail the
// catalog record.
func NewFactory(ctx context.Context, cfg FactoryConfig) (*Factory, error) {
	connConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseConfig, err)
	}
	if cfg.Username != "" {
		connConfig.ConnConfig.User = cfg.Username
	}
	if cfg.Password != "" {
		connConfig.ConnConfig.Password = cfg.Password
	}
	if cfg.Pool.MaxOpenConns > 0 {
		connConfig.MaxConns = cfg.Pool.MaxOpenConns
	}
	if cfg.Pool.MaxIdleConns > 0 {
		connConfig.MinConns = cfg.Pool.MaxIdleConns
	}
	if cfg.Pool.HealthCheckPeriod > 0 {
		connConfig.HealthCheckPeriod = cfg.Pool.HealthCheckPeriod
	}
	if cfg.Pool.MaxConnIdleTime > 0 {
		connConfig.MaxConnIdleTime = cfg.Pool.MaxConnIdleTime
	}
	if cfg.Pool.MaxConnLifetime > 0 {
		connConfig.MaxConnLifetime = cfg.Pool.MaxConnLifetime
	}

	attempts := cfg.Pool.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	// Linear backoff: attempt 1 waits RetryInterval, attempt 2 waits 2x, etc.
	// This prevents thundering herd problems when multiple services restart
	// simultaneously.
	for i := 0; i < attempts; i++ {
		pool, err := pgxpool.NewWithConfig(ctx, connConfig)
		if err != nil {
			time.Sleep(time.Duration(i+1) * cfg.Pool.RetryInterval)
			continue
		}

		// Verify with an actual ping to catch authentication and permission
		// issues, not just TCP reachability.
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			time.Sleep(time.Duration(i+1) * cfg.Pool.RetryInterval)
			continue
		}

		return &Factory{pool: pool}, nil
	}

	return nil, ErrFailedToOpenDBConnection
}

// Builder adapts NewFactory to the catalog loader's FactoryBuilder contract,
// applying the component-wide pool settings to every record.
func Builder(cfg Config) catalog.FactoryBuilder {
	return func(ctx context.Context, rec catalog.Record) (router.ConnectionFactory, error) {
		return NewFactory(ctx, FactoryConfig{
			URL:      rec.URL,
			Username: rec.Username,
			Password: rec.Password,
			Pool:     cfg,
		})
	}
}

// Pool exposes the underlying pgx pool for health checks and direct use.
func (f *Factory) Pool() *pgxpool.Pool { return f.pool }

// Acquire implements router.ConnectionFactory.
func (f *Factory) Acquire(ctx context.Context) (router.Connection, error) {
	if f.closed.Load() {
		return nil, ErrFactoryClosed
	}
	conn, err := f.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return newConn(conn), nil
}

// Close implements router.ConnectionFactory. Safe to call more than once.
func (f *Factory) Close() {
	if f.closed.CompareAndSwap(false, true) {
		f.pool.Close()
	}
}

// Conn wraps one pooled pgx connection as a router.Connection.
type Conn struct {
	conn     *pgxpool.Conn
	id       string
	released atomic.Bool
}

func newConn(conn *pgxpool.Conn) *Conn {
	// The backend PID is stable for the lifetime of the physical connection
	// and readable without I/O; combined with the local pointer it gives the
	// registry a collision-free identity.
	id := fmt.Sprintf("pgconn-%d-%p", conn.Conn().PgConn().PID(), conn.Conn())
	return &Conn{conn: conn, id: id}
}

// Identity implements router.Connection.
func (c *Conn) Identity() string { return c.id }

// Exec implements router.Connection.
func (c *Conn) Exec(ctx context.Context, sql string) error {
	_, err := c.conn.Exec(ctx, sql)
	return err
}

// Release implements router.Connection. Returning an already-released
// connection is a no-op.
func (c *Conn) Release(_ context.Context) error {
	if c.released.CompareAndSwap(false, true) {
		c.conn.Release()
	}
	return nil
}

// Unwrap implements router.Connection, exposing the native *pgxpool.Conn.
func (c *Conn) Unwrap() any { return c.conn }

// QuoteIdentifier quotes a schema or table name for safe interpolation into
// session-level statements.
func QuoteIdentifier(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// SearchPathSQL builds the statement switching the active schema of a
// session. Suitable for router.WithSwitchStatement.
func SearchPathSQL(schema string) string {
	return "SET search_path TO " + QuoteIdentifier(schema)
}
