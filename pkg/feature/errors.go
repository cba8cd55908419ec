package feature

import "errors"

// Predefined errors for the feature package.
var (
	// ErrInvalidFeature indicates that the feature descriptor parameters are invalid.
	ErrInvalidFeature = errors.New("invalid feature descriptor")

	// ErrInvalidValueType indicates an unknown or unsupported value type tag.
	ErrInvalidValueType = errors.New("invalid feature value type")

	// ErrInvalidValue indicates a raw value that cannot be parsed for its declared type.
	ErrInvalidValue = errors.New("invalid feature value")
)
