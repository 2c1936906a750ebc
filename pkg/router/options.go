package router

import "log/slog"

type options struct {
	selector     Selector
	registry     *Registry
	log          *slog.Logger
	databaseName string
	switchSQL    func(schema string) string
}

// Option configures a router constructor.
type Option func(*options)

// WithSelector installs the operational override that forces a specific
// database within a tenant. When the selector yields nothing, resolution
// falls back to the tenant's main database. Database strategy only.
func WithSelector(s Selector) Option {
	return func(o *options) { o.selector = s }
}

// WithRegistry sets the open-connection registry shared by the router.
// A fresh registry is created when none is provided.
func WithRegistry(r *Registry) Option {
	return func(o *options) {
		if r != nil {
			o.registry = r
		}
	}
}

// WithLogger sets the router logger.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithDatabaseName sets the declared database name reported by the schema
// strategy. Informational only.
func WithDatabaseName(name string) Option {
	return func(o *options) { o.databaseName = name }
}

// WithSwitchStatement overrides how the schema-switch statement is built
// from a schema name. The default targets PostgreSQL (SET search_path).
func WithSwitchStatement(build func(schema string) string) Option {
	return func(o *options) {
		if build != nil {
			o.switchSQL = build
		}
	}
}

func newOptions(opts ...Option) options {
	o := options{
		log:       slog.Default(),
		switchSQL: defaultSwitchSQL,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = NewRegistry(WithRegistryLogger(o.log))
	}
	return o
}
