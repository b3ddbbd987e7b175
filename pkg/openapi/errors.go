package openapi

import "errors"

var (
	// ErrEmptyDocument is returned when an import payload is empty.
	ErrEmptyDocument = errors.New("openapi: document payload is empty")
	// ErrNoOperations is returned when a document yields no actions.
	ErrNoOperations = errors.New("openapi: document does not contain any job operations")
)
