// Package tenant holds the request-scoped "current tenant" identifier and the
// normalization rules applied to it.
//
// The identifier is set by the authentication/request layer and read by the
// routing components at connection-acquisition time. Tenant identifiers are
// case-insensitive: every component that uses one as a map key must normalize
// it first with Normalize.
//
// # Usage
//
//	ctx = tenant.WithID(ctx, "Bolzano")
//
//	id, ok := tenant.IDFromContext(ctx) // "bolzano", true
//
// The package also exposes a logger extractor so the current tenant id is
// attached to every log record produced within the request context:
//
//	log := logger.New(logger.WithContextExtractors(tenant.LoggerExtractor()))
package tenant
