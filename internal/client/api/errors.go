package api

import "errors"

// Sentinel errors for the backend call outcomes. Callers match them with
// errors.Is; the HTTP client wraps them with request context.
var (
	ErrUnavailable        = errors.New("server unavailable")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrServer             = errors.New("server error")
)
