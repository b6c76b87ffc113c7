package settings

import "errors"

var (
	// ErrAPIKeyRequired is returned when AI mode is selected without a stored key
	ErrAPIKeyRequired = errors.New("an API key is required for AI search")
	// ErrInvalidAPIKey is returned when a key is empty after trimming
	ErrInvalidAPIKey = errors.New("API key must not be empty")
	// ErrInvalidMode is returned for modes other than local and ai
	ErrInvalidMode = errors.New("invalid search mode")
	// ErrUnknownBackend is returned by Open for unsupported backends
	ErrUnknownBackend = errors.New("unknown settings backend")
)
