package catalog

import (
	"fmt"
	"strings"
)

// Report is one structured failure description produced during catalog
// loading. Reports are never discarded silently: they are logged and, when
// any exist, forwarded as one aggregated digest to the troubleshooting
// notifier.
type Report struct {
	// Seq is the 1-based position of this report within the load cycle.
	Seq int
	// Owner is the owner filter the load ran with.
	Owner string
	// TenantID and ExternalID identify the tenant the record belongs to.
	TenantID   string
	ExternalID string
	// Database is the effective database name of the offending record.
	// Empty for tenant-level violations such as a missing main database.
	Database string
	// Index is the position of the record within the tenant's filtered set,
	// or -1 for tenant-level violations.
	Index int
	// Message is the one-line failure description.
	Message string
	// Detail carries the underlying error text or a remediation hint.
	Detail string
}

func (r Report) String() string {
	return r.Message
}

// block renders one report as a separator-framed section of the digest.
func (r Report) block() string {
	sep := strings.Repeat("=", len(r.Message))
	return sep + "\n" + r.Message + "\n" + sep + "\n" + r.Detail
}

// Digest renders the aggregated human-readable body sent to the
// troubleshooting notifier: a header, the error count, an optional
// configured/initialized mismatch note and one separator-framed block per
// report.
func Digest(header, runID string, configured, initialized int, reports []Report) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "RUN ID: %s\n", runID)
	fmt.Fprintf(&b, "ERROR COUNT: %d\n\n", len(reports))
	b.WriteString("There were errors during datasource initialization!")
	if configured != initialized {
		fmt.Fprintf(&b, "\nThe number of database instances, loaded at runtime, differs from the configured count: configured=%d -> loaded=%d", configured, initialized)
	}
	b.WriteString("\n\n")

	blocks := make([]string, len(reports))
	for i, r := range reports {
		blocks[i] = r.block()
	}
	b.WriteString(strings.Join(blocks, "\n\n\n"))

	return b.String()
}
