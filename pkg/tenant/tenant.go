package tenant

import "strings"

// Normalize canonicalizes a tenant identifier for use as a lookup key.
// Tenant identifiers are case-insensitive throughout the routing layer, so
// every map keyed by tenant id must pass the id through Normalize first.
func Normalize(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// IsBlank reports whether the identifier is empty after normalization.
func IsBlank(id string) bool {
	return Normalize(id) == ""
}
