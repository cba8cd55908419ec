package featurebook

import "errors"

var (
	ErrInvalidMetadata  = errors.New("invalid feature metadata")
	ErrInvalidCatalog   = errors.New("invalid feature catalog")
	ErrDuplicateFeature = errors.New("duplicate feature key in catalog")

	ErrCatalogNotFound     = errors.New("feature catalog not found")
	ErrUnsupportedFormat   = errors.New("unsupported catalog format")
	ErrFailedToReadCatalog = errors.New("failed to read feature catalog")

	ErrMissingCatalogLocation = errors.New("catalog bucket and key are required")
	ErrFailedToLoadS3Config   = errors.New("failed to load aws config")
)
