package router

import "errors"

var (
	// ErrNoDatasources is returned when the routing table has no entries at all.
	ErrNoDatasources = errors.New("no datasources configured")

	// ErrNoTenant is returned when resolution is attempted with a blank tenant id.
	ErrNoTenant = errors.New("no tenant defined")

	// ErrTenantNotConfigured is returned when the tenant is unknown or has zero
	// database configurations. Distinct from ErrNoTenant: this one indicates a
	// misconfigured tenant rather than a missing identifier.
	ErrTenantNotConfigured = errors.New("no database configured for tenant")

	// ErrDatabaseNotFound is returned when a selector override names a database
	// the tenant does not have, or the tenant has no main database.
	ErrDatabaseNotFound = errors.New("database not found for tenant")

	// ErrSchemaNotFound is returned by the schema strategy when the tenant
	// cannot be resolved to a schema name.
	ErrSchemaNotFound = errors.New("schema not found for tenant")

	// ErrConnectionFailed wraps physical connect failures.
	ErrConnectionFailed = errors.New("failed to open connection")

	// ErrSchemaSwitchFailed wraps failures to set the active schema on a
	// freshly opened connection.
	ErrSchemaSwitchFailed = errors.New("failed to switch schema")

	// ErrHandleRetired is returned when acquiring from a handle that belongs
	// to a replaced routing table.
	ErrHandleRetired = errors.New("datasource handle retired")

	// ErrDuplicateName is returned by Table.Add for a database name already
	// present in the tenant's entry.
	ErrDuplicateName = errors.New("duplicate database name")

	// ErrDuplicateMain is returned by Table.Add when the tenant already has a
	// main database.
	ErrDuplicateMain = errors.New("duplicate main database")

	// ErrUnknownStrategy is returned by ParseStrategy for unrecognized values.
	ErrUnknownStrategy = errors.New("unknown multitenancy strategy")

	// ErrMissingDependency is returned by New when the chosen strategy lacks a
	// required collaborator.
	ErrMissingDependency = errors.New("missing router dependency")
)

// IsNotFound reports whether err is a routing resolution failure, as opposed
// to a transport failure. Callers use this to map errors to a 4xx-style
// response for bad or unknown tenants instead of a 5xx.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNoDatasources) ||
		errors.Is(err, ErrNoTenant) ||
		errors.Is(err, ErrTenantNotConfigured) ||
		errors.Is(err, ErrDatabaseNotFound) ||
		errors.Is(err, ErrSchemaNotFound)
}
