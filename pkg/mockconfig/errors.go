package mockconfig

import "errors"

var (
	// ErrIllegalConfigDataType indicates a feature whose declared type is none of long, double, text or boolean.
	ErrIllegalConfigDataType = errors.New("illegal config data type")

	// ErrMockConfigUnavailable signals that no usable override exists for the feature.
	// Only the feature.Provider methods of Provider return it.
	ErrMockConfigUnavailable = errors.New("mock config unavailable")
)
