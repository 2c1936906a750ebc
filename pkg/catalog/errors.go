package catalog

import "errors"

var (
	// ErrOwnerRequired is returned by NewLoader when no owner filter is set.
	ErrOwnerRequired = errors.New("owner filter is required")

	// ErrSourceRequired is returned by NewLoader when no catalog source is set.
	ErrSourceRequired = errors.New("catalog source is required")

	// ErrBuilderRequired is returned by NewLoader when no factory builder is set.
	ErrBuilderRequired = errors.New("connection factory builder is required")

	// ErrCatalogUnavailable wraps transport failures of the catalog source.
	// Unlike configuration errors, these abort the load.
	ErrCatalogUnavailable = errors.New("catalog source unavailable")

	// ErrCatalogFileInvalid is returned by NewFileSource for unreadable or
	// malformed catalog files.
	ErrCatalogFileInvalid = errors.New("invalid catalog file")
)
