package catalog

// Record is one configured physical database for one tenant, as delivered by
// the external catalog. Records are immutable once parsed.
type Record struct {
	// Name identifies the database within the tenant. Defaults to the owner
	// filter when blank.
	Name string `yaml:"name" json:"name"`
	// Owner names the component this configuration belongs to. Empty means
	// the configuration is shared by all components.
	Owner string `yaml:"owner" json:"owner"`
	// URL is the connection string.
	URL string `yaml:"url" json:"url"`
	// Driver names the database driver.
	Driver string `yaml:"driver" json:"driver"`
	// Username and Password are the connection credentials. The password may
	// be encrypted at rest; the loader decrypts it before use.
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
	// Main flags the tenant's default database. A tenant's only record is
	// implicitly main regardless of this flag.
	Main bool `yaml:"main" json:"main"`
}

// Info is the per-tenant metadata needed to query the catalog: the tenant's
// identity-provider key under which its database records are filed.
type Info struct {
	ExternalID string `yaml:"external_id" json:"external_id"`
	// Schema is the tenant's namespace on the shared database, used by the
	// schema isolation strategy.
	Schema string `yaml:"schema" json:"schema"`
}
