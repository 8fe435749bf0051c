package facet

import "errors"

var (
	// ErrInvalidInput is returned when a facet, adapter or factory is constructed
	// or configured with values it cannot work with.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotReady is returned when facet counts are read before a response has been
	// handed to the facet.
	ErrNotReady = errors.New("facet counts not available: record collection not set")
)
