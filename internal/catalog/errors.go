package catalog

import "errors"

// Catalog construction errors. These are configuration errors: they indicate
// a broken catalog, not a user-triggered condition, and callers are expected
// to fail loudly rather than continue with a partial catalog.
var (
	ErrTierEmpty         = errors.New("catalog has no entries for tier")
	ErrDuplicateTitle    = errors.New("catalog has duplicate title")
	ErrInvalidDefinition = errors.New("invalid achievement definition")
)
