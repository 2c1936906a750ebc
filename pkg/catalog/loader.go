package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/goffice/multitenancy/pkg/router"
)

// Decrypter decrypts credentials stored encrypted at rest. The loader treats
// decryption failures as warnings, never as fatal errors.
type Decrypter interface {
	Decrypt(cipherText string) (string, error)
}

// Notifier receives the aggregated error digest of a load cycle. Invoked at
// most once per cycle, only when errors exist.
type Notifier interface {
	SendReport(ctx context.Context, subject, body string) error
}

// FactoryBuilder constructs a live connection factory from one catalog
// record. The record's password is already decrypted at this point.
// Production wiring uses pg.NewFactory; tests inject fakes.
type FactoryBuilder func(ctx context.Context, rec Record) (router.ConnectionFactory, error)

// Loader reconciles the external catalog into a validated routing table.
type Loader struct {
	owner     string
	source    Source
	build     FactoryBuilder
	decrypter Decrypter
	notifier  Notifier
	subject   string
	header    string
	log       *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithDecrypter installs the crypto collaborator used for stored passwords.
func WithDecrypter(d Decrypter) LoaderOption {
	return func(l *Loader) { l.decrypter = d }
}

// WithNotifier installs the troubleshooting notifier for error digests.
func WithNotifier(n Notifier) LoaderOption {
	return func(l *Loader) { l.notifier = n }
}

// WithSubject overrides the digest subject line.
func WithSubject(subject string) LoaderOption {
	return func(l *Loader) {
		if subject != "" {
			l.subject = subject
		}
	}
}

// WithHeader overrides the first line of the digest body.
func WithHeader(header string) LoaderOption {
	return func(l *Loader) {
		if header != "" {
			l.header = header
		}
	}
}

// WithLoaderLogger sets the loader logger.
func WithLoaderLogger(log *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}

// NewLoader creates a catalog loader for one component identity. The owner
// is the filter applied to every tenant's records: only configurations owned
// by this component, or shared with all components, are loaded.
func NewLoader(owner string, source Source, build FactoryBuilder, opts ...LoaderOption) (*Loader, error) {
	if owner == "" {
		return nil, ErrOwnerRequired
	}
	if source == nil {
		return nil, ErrSourceRequired
	}
	if build == nil {
		return nil, ErrBuilderRequired
	}

	l := &Loader{
		owner:   owner,
		source:  source,
		build:   build,
		subject: "[MULTITENANCY-PERSISTENCE] DBMS initialization ERRORS",
		header:  "*** DBMS initialization ERRORS ***",
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Load pulls every tenant's database configurations from the catalog source
// and builds the routing table. Configuration errors never abort the load:
// offending records are skipped, collected as reports and forwarded once to
// the notifier. Only an unreachable catalog source returns a non-nil error,
// as a transport failure distinct from any configuration problem.
func (l *Loader) Load(ctx context.Context, tenantIDs []string) (*router.Table, []Report, error) {
	runID := uuid.NewString()
	table := router.NewTable()
	var reports []Report
	configured, initialized := 0, 0

	for _, tenantID := range tenantIDs {
		info, err := l.source.Info(ctx, tenantID)
		if err != nil {
			return nil, nil, errors.Join(ErrCatalogUnavailable, err)
		}

		records, err := l.source.Records(ctx, info.ExternalID)
		if err != nil {
			return nil, nil, errors.Join(ErrCatalogUnavailable, err)
		}
		if len(records) == 0 {
			// Absence is not an error: no database configured for this tenant.
			continue
		}

		table.AddTenant(tenantID)
		tenantConfigured, tenantInitialized := l.loadTenant(ctx, table, tenantID, info.ExternalID, records, &reports)
		configured += tenantConfigured
		initialized += tenantInitialized

		l.log.Info("tenant datasources loaded",
			slog.String("run_id", runID),
			slog.String("tenant_id", tenantID),
			slog.String("external_id", info.ExternalID),
			slog.Int("configured", tenantConfigured),
			slog.Int("initialized", tenantInitialized))
	}

	if len(reports) > 0 {
		l.notify(ctx, runID, configured, initialized, reports)
	}

	return table, reports, nil
}

// loadTenant filters and validates one tenant's records, inserting the
// survivors into the table. Returns the filtered (configured) count and the
// count that actually made it into the table.
func (l *Loader) loadTenant(ctx context.Context, table *router.Table, tenantID, externalID string, records []Record, reports *[]Report) (int, int) {
	filtered := make([]Record, 0, len(records))
	for _, rec := range records {
		// An empty owner means the configuration is shared by all components.
		owner := rec.Owner
		if owner == "" {
			owner = l.owner
		}
		if owner == l.owner {
			filtered = append(filtered, rec)
		}
	}

	l.log.Info("searching for DBMS configurations in catalog",
		slog.String("owner", l.owner),
		slog.String("tenant_id", tenantID),
		slog.String("external_id", externalID),
		slog.Int("found", len(filtered)))

	mainName := ""
	initialized := 0

	for index, rec := range filtered {
		name := rec.Name
		if name == "" {
			name = l.owner
		}
		isMain := len(filtered) == 1 || rec.Main

		if err := l.loadRecord(ctx, table, tenantID, name, isMain, &mainName, rec); err != nil {
			*reports = append(*reports, l.recordReport(tenantID, externalID, name, index, err))
			continue
		}
		initialized++
	}

	// Tenant-level invariant: candidates existed but none ended up flagged
	// main. Not any single record's fault, reported separately.
	if len(filtered) > 0 && mainName == "" {
		*reports = append(*reports, l.missingMainReport(tenantID, externalID))
	}

	return len(filtered), initialized
}

// loadRecord validates and installs a single record. The duplicate-main
// tie-break is first-seen wins: a later record also claiming main is rejected
// while the earlier claim stands.
func (l *Loader) loadRecord(ctx context.Context, table *router.Table, tenantID, name string, isMain bool, mainName *string, rec Record) error {
	if isMain {
		if *mainName != "" {
			return fmt.Errorf("%w: %q and %q, please fix the catalog config", router.ErrDuplicateMain, *mainName, name)
		}
		// Claimed before the remaining checks: a main record rejected below
		// still blocks later claimants, matching the validation order of the
		// catalog contract.
		*mainName = name
	}

	if _, exists := table.Lookup(tenantID, name); exists {
		return fmt.Errorf("%w: %q (tenant %q)", router.ErrDuplicateName, name, tenantID)
	}

	rec.Password = l.decodePassword(rec.Password)

	factory, err := l.build(ctx, rec)
	if err != nil {
		return err
	}

	if _, err := table.Add(tenantID, name, factory, isMain); err != nil {
		factory.Close()
		return err
	}

	if isMain {
		l.log.Info("default datasource configured",
			slog.String("tenant_id", tenantID), slog.String("database", name))
	}
	return nil
}

// decodePassword runs the stored password through the crypto collaborator.
// A decryption failure falls back to the raw value with a warning; it never
// fails the record.
func (l *Loader) decodePassword(password string) string {
	if password == "" || l.decrypter == nil {
		return password
	}
	plain, err := l.decrypter.Decrypt(password)
	if err != nil {
		l.log.Warn("unable to decrypt password, the stored value will be used as-is",
			slog.Any("error", err))
		return password
	}
	return plain
}

func (l *Loader) recordReport(tenantID, externalID, name string, index int, err error) Report {
	r := Report{
		Owner:      l.owner,
		TenantID:   tenantID,
		ExternalID: externalID,
		Database:   name,
		Index:      index,
		Detail:     err.Error(),
	}
	r.Message = fmt.Sprintf("unable to initialize DBMS datasource: owner=%s, tenant=%s, external=%s, name=%s, index=%d",
		r.Owner, r.TenantID, r.ExternalID, r.Database, r.Index)
	l.log.Error("datasource initialization failed",
		slog.String("tenant_id", tenantID),
		slog.String("database", name),
		slog.Int("index", index),
		slog.Any("error", err))
	return r
}

func (l *Loader) missingMainReport(tenantID, externalID string) Report {
	r := Report{
		Owner:      l.owner,
		TenantID:   tenantID,
		ExternalID: externalID,
		Index:      -1,
		Detail:     "to identify the MAIN (default) datasource, set 'main: true' on exactly one database configuration of the tenant",
	}
	r.Message = fmt.Sprintf("MAIN datasource config (= default datasource) not found: owner=%s, tenant=%s, external=%s",
		r.Owner, r.TenantID, r.ExternalID)
	l.log.Error("main datasource missing",
		slog.String("tenant_id", tenantID),
		slog.String("external_id", externalID))
	return r
}

// notify forwards the digest to the troubleshooting notifier. A notifier
// failure is logged only; it must never mask the original reports.
func (l *Loader) notify(ctx context.Context, runID string, configured, initialized int, reports []Report) {
	for i := range reports {
		reports[i].Seq = i + 1
		reports[i].Message = fmt.Sprintf("[ERROR %d] %s", i+1, reports[i].Message)
	}

	body := Digest(l.header, runID, configured, initialized, reports)
	l.log.Error("there were errors during datasource initialization",
		slog.String("run_id", runID),
		slog.Int("error_count", len(reports)))

	if l.notifier == nil {
		return
	}
	if err := l.notifier.SendReport(ctx, l.subject, body); err != nil {
		l.log.Error("unable to notify problems to troubleshooting",
			slog.String("run_id", runID),
			slog.Any("error", err))
	}
}
