package featurenote

import "errors"

var (
	ErrFeatureNotFound   = errors.New("feature not found in catalog")
	ErrValueTypeMismatch = errors.New("override type does not match the feature type")
)
