package remote

import "errors"

var (
	ErrIllegalConfigOwner = errors.New("illegal config owner")
	ErrRemoteValueType    = errors.New("remote value does not match the requested type")
	ErrInvalidCondition   = errors.New("invalid condition")
	ErrInvalidParameter   = errors.New("invalid remote parameter")

	ErrMissingProjectID        = errors.New("firebase project id is required")
	ErrFailedToLoadCredentials = errors.New("failed to load firebase credentials")
	ErrTemplateFetch           = errors.New("failed to fetch remote config template")
	ErrInvalidTemplate         = errors.New("remote config template is not valid json")
)
