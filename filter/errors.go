package filter

import "errors"

var (
	// ErrChannelNotFound is returned when a primitive reads a channel that
	// was never published. The primitive is skipped.
	ErrChannelNotFound = errors.New("filter: channel not found")

	// ErrInvalidFilterConfiguration is returned by Validate for primitives
	// whose attributes cannot be evaluated. A filter containing one is not
	// applied.
	ErrInvalidFilterConfiguration = errors.New("filter: invalid filter configuration")

	// ErrEmptyRegion reports a filter region without pixels.
	ErrEmptyRegion = errors.New("filter: empty filter region")
)
