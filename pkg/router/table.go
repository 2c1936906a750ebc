package router

import (
	"fmt"

	"github.com/goffice/multitenancy/pkg/tenant"
)

// Table is the validated routing table: one entry per tenant, each entry a
// small map of named database handles with at most one flagged main.
//
// A Table is populated by the catalog loader during startup (or reload) and
// must be treated as read-only once handed to a router. Reload replaces the
// whole table, it never mutates one in place.
type Table struct {
	tenants map[string]map[string]*Handle
}

// NewTable creates an empty routing table.
func NewTable() *Table {
	return &Table{tenants: make(map[string]map[string]*Handle)}
}

// AddTenant ensures an entry for the tenant exists, even if no database ends
// up configured for it. A present-but-empty entry lets resolution report the
// zero-configurations condition for a known tenant.
func (t *Table) AddTenant(tenantID string) {
	key := tenant.Normalize(tenantID)
	if _, ok := t.tenants[key]; !ok {
		t.tenants[key] = make(map[string]*Handle)
	}
}

// Add inserts a named handle into the tenant's entry, enforcing the table
// invariants: database names are unique per tenant and at most one handle is
// flagged main. The handle is returned so the caller can retire it on
// follow-up failures.
func (t *Table) Add(tenantID, name string, factory ConnectionFactory, main bool) (*Handle, error) {
	key := tenant.Normalize(tenantID)
	entry, ok := t.tenants[key]
	if !ok {
		entry = make(map[string]*Handle)
		t.tenants[key] = entry
	}

	if _, exists := entry[name]; exists {
		return nil, fmt.Errorf("%w: %q (tenant %q)", ErrDuplicateName, name, key)
	}
	if main {
		if existing, ok := t.mainOf(entry); ok {
			return nil, fmt.Errorf("%w: %q and %q (tenant %q)", ErrDuplicateMain, existing.Name(), name, key)
		}
	}

	h := NewHandle(name, factory, main)
	entry[name] = h
	return h, nil
}

// Lookup returns the named handle of the tenant, if any.
func (t *Table) Lookup(tenantID, name string) (*Handle, bool) {
	entry, ok := t.tenants[tenant.Normalize(tenantID)]
	if !ok {
		return nil, false
	}
	h, ok := entry[name]
	return h, ok
}

// Main returns the tenant's main database handle, if any.
func (t *Table) Main(tenantID string) (*Handle, bool) {
	entry, ok := t.tenants[tenant.Normalize(tenantID)]
	if !ok {
		return nil, false
	}
	return t.mainOf(entry)
}

func (t *Table) mainOf(entry map[string]*Handle) (*Handle, bool) {
	for _, h := range entry {
		if h.Main() {
			return h, true
		}
	}
	return nil, false
}

// Databases returns the number of handles configured for the tenant.
func (t *Table) Databases(tenantID string) int {
	return len(t.tenants[tenant.Normalize(tenantID)])
}

// HasTenant reports whether the tenant has an entry, configured or not.
func (t *Table) HasTenant(tenantID string) bool {
	_, ok := t.tenants[tenant.Normalize(tenantID)]
	return ok
}

// Tenants returns the tenant identifiers present in the table.
func (t *Table) Tenants() []string {
	ids := make([]string, 0, len(t.tenants))
	for id := range t.tenants {
		ids = append(ids, id)
	}
	return ids
}

// Len returns the number of tenants in the table.
func (t *Table) Len() int { return len(t.tenants) }

// IsEmpty reports whether no tenant has any database handle. A table with
// only empty tenant entries still counts as empty for routing purposes.
func (t *Table) IsEmpty() bool {
	for _, entry := range t.tenants {
		if len(entry) > 0 {
			return false
		}
	}
	return true
}

// Retire retires every handle in the table. Used when the table is replaced
// on reload; each factory closes once its outstanding connections drain.
func (t *Table) Retire() {
	for _, entry := range t.tenants {
		for _, h := range entry {
			h.Retire()
		}
	}
}
