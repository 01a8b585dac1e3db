package document

import "errors"

// Domain-specific errors for document decoding and encoding.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrEmptyDocument is returned when the input contains no YAML document.
	ErrEmptyDocument = errors.New("document: input is empty")

	// ErrNotMapping is returned when the top-level value is not a mapping.
	ErrNotMapping = errors.New("document: top-level value is not a mapping")

	// ErrBadKey is returned when a mapping key is not a plain scalar.
	ErrBadKey = errors.New("document: mapping key is not a plain scalar")

	// ErrTagPayload is returned when a non-native tag carries a payload the
	// value model cannot represent (anything other than a scalar or a
	// sequence of scalars). Failing here prevents silent data loss on encode.
	ErrTagPayload = errors.New("document: unsupported payload for custom tag")
)
