package analyzer

import "errors"

// Common errors returned by the analyzer package.
var (
	// ErrEmptyDocument is returned when the input HTML is empty or blank.
	// An empty document is a caller mistake, not a "no signal" outcome.
	ErrEmptyDocument = errors.New("empty HTML document")
)
