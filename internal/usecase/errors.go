package usecase

import "errors"

// Sentinels the services wrap with %w so callers can map failures to a
// transport status without parsing message text.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
