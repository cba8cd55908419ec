package mockstore

import "errors"

var (
	ErrTypeMismatch   = errors.New("stored override has a different value type")
	ErrEmptyKey       = errors.New("override key cannot be empty")
	ErrCorruptedEntry = errors.New("stored override cannot be decoded")
	ErrBackendFailure = errors.New("override storage backend failure")
	ErrUnknownDriver  = errors.New("unknown override storage driver")

	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady                = errors.New("redis did not become ready within the given time period")

	ErrFailedToOpenDBConnection = errors.New("failed to open postgres connection")
	ErrFailedToParseDBConfig    = errors.New("failed to parse postgres config")
	ErrFailedToApplyMigrations  = errors.New("failed to apply override storage migrations")

	ErrFailedToConnectToMongo = errors.New("failed to connect to mongo")
)
