package tenant

import (
	"context"
	"log/slog"
)

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// WithID adds a tenant identifier to the context. The identifier is
// normalized before storage so downstream lookups never have to worry about
// casing.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, Normalize(id))
}

// IDFromContext retrieves the current tenant identifier from the context.
// Returns "", false if no tenant is set.
func IDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKey{}).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// MustIDFromContext retrieves the tenant identifier from the context.
// Panics if no tenant is set. Use this only in code paths that absolutely
// require a tenant to function.
func MustIDFromContext(ctx context.Context) string {
	id, ok := IDFromContext(ctx)
	if !ok {
		panic("tenant: no tenant in context")
	}
	return id
}

// LoggerExtractor returns a context extractor for the logger that attaches
// the current tenant id to every log record.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := IDFromContext(ctx); ok {
			return slog.String("tenant_id", id), true
		}
		return slog.Attr{}, false
	}
}
