package catalog

import "context"

// Source is the external catalog the loader pulls from.
type Source interface {
	// Info returns the tenant's catalog metadata. An error here means the
	// catalog itself is unreachable and aborts the load.
	Info(ctx context.Context, tenantID string) (Info, error)

	// Records returns the tenant's database configurations, filed under its
	// external id, for arbitrary owners. An empty result is not an error:
	// it means no database is configured for this tenant.
	Records(ctx context.Context, externalID string) ([]Record, error)
}
