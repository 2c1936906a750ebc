// Package logger builds the process-wide slog.Logger used across the
// routing layer.
//
// Beyond format and level selection, the factory supports context
// extractors: functions that pull request-scoped values out of the context
// at log time. The routing layer uses this to stamp the current tenant id on
// every record emitted within a request:
//
//	log := logger.New(
//	    logger.WithJSONFormatter(),
//	    logger.WithContextExtractors(tenant.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
// Attribute helpers (Error, TenantID, Database) keep log keys consistent
// across packages.
package logger
