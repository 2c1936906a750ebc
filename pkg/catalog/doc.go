// Package catalog loads and validates the per-tenant database configuration
// catalog that drives connection routing.
//
// The catalog is externally managed (the platform CMDB is the source of
// truth); this package consumes it through the narrow Source interface,
// filters each tenant's records to the ones owned by (or shared with) this
// component, and reconciles them into a validated routing table.
//
// # Partial failure
//
// Loading never aborts on malformed or ambiguous entries. Each violation
// (duplicate main, duplicate name, unusable connection parameters, missing
// main) is collected as a structured Report, the offending record is skipped,
// and loading continues. The routing table returned is whatever could be
// built, partial or empty. When any reports were produced, a human-readable
// digest is forwarded once per load cycle to the troubleshooting notifier;
// a notifier failure is logged and never escalated.
//
// The only hard failure is the catalog source itself being unreachable,
// which is returned to the caller as a distinct transport error.
//
// # Credentials
//
// Passwords may be encrypted at rest. Decryption goes through the injected
// Decrypter; a decryption failure downgrades to a warning and the raw value
// is used unchanged, so a crypto misconfiguration never blocks startup.
package catalog
