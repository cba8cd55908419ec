package proteus

import "errors"

var (
	// ErrRemoteFactoryNotRegistered means New was called without WithRemoteFactory.
	ErrRemoteFactoryNotRegistered = errors.New("proteus: remote provider factory is not registered")

	ErrUnknownRemote        = errors.New("proteus: unknown remote provider")
	ErrUnknownCatalogSource = errors.New("proteus: unknown catalog source")
)
