package subset

import "errors"

// Domain-specific errors for the subset rewriter.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrNoNav is returned when the document has no nav key. Without a nav
	// there is nothing to subset.
	ErrNoNav = errors.New("subset: document has no nav key")

	// ErrSectionNotFound is returned when no group in the nav matches the
	// requested section label.
	ErrSectionNotFound = errors.New("subset: section not found in nav")
)
