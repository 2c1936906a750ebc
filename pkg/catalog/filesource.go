package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goffice/multitenancy/pkg/tenant"
)

// FileSource is a YAML-backed catalog source, the fixture/development form of
// the externally managed catalog. The file mirrors the CMDB payload: one
// entry per tenant carrying its external id, schema name and database
// records.
//
//	tenants:
//	  bolzano:
//	    external_id: 7c1e...-keycloak
//	    schema: bolzano
//	    databases:
//	      - name: main-db
//	        url: postgres://db1.local:5432/bolzano
//	        username: app
//	        password: enc:...
//	        main: true
type FileSource struct {
	tenants map[string]fileTenant
}

type fileTenant struct {
	Info      `yaml:",inline"`
	Databases []Record `yaml:"databases"`
}

type fileCatalog struct {
	Tenants map[string]fileTenant `yaml:"tenants"`
}

// NewFileSource parses the catalog file at path.
func NewFileSource(path string) (*FileSource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrCatalogFileInvalid, err)
	}
	return ParseFileSource(raw)
}

// ParseFileSource builds a FileSource from raw YAML.
func ParseFileSource(raw []byte) (*FileSource, error) {
	var doc fileCatalog
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Join(ErrCatalogFileInvalid, err)
	}

	tenants := make(map[string]fileTenant, len(doc.Tenants))
	for id, entry := range doc.Tenants {
		key := tenant.Normalize(id)
		if key == "" {
			return nil, fmt.Errorf("%w: blank tenant id", ErrCatalogFileInvalid)
		}
		if entry.ExternalID == "" {
			// Without an identity-provider mapping the tenant id doubles as
			// the external id.
			entry.ExternalID = key
		}
		tenants[key] = entry
	}
	return &FileSource{tenants: tenants}, nil
}

// TenantIDs lists the tenants declared in the file.
func (s *FileSource) TenantIDs() []string {
	ids := make([]string, 0, len(s.tenants))
	for id := range s.tenants {
		ids = append(ids, id)
	}
	return ids
}

// Info implements Source.
func (s *FileSource) Info(_ context.Context, tenantID string) (Info, error) {
	entry, ok := s.tenants[tenant.Normalize(tenantID)]
	if !ok {
		// The tenant simply has no catalog entry; the loader will find no
		// records under this id either.
		return Info{ExternalID: tenant.Normalize(tenantID)}, nil
	}
	return entry.Info, nil
}

// Records implements Source.
func (s *FileSource) Records(_ context.Context, externalID string) ([]Record, error) {
	for _, entry := range s.tenants {
		if entry.ExternalID == externalID {
			return entry.Databases, nil
		}
	}
	return nil, nil
}

// Schema resolves a tenant's schema name, making FileSource usable as the
// schema-name resolver of the schema isolation strategy.
func (s *FileSource) Schema(_ context.Context, tenantID string) (string, bool) {
	entry, ok := s.tenants[tenant.Normalize(tenantID)]
	if !ok || entry.Schema == "" {
		// Fall back to matching by external id, the key the schema strategy
		// carries at request time.
		for _, e := range s.tenants {
			if e.ExternalID == tenantID && e.Schema != "" {
				return e.Schema, true
			}
		}
		return "", false
	}
	return entry.Schema, true
}
