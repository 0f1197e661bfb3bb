// Package common defines shared sentinel errors used across the chat
// server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Registration errors.
	ErrorUsernameTaken = errors.New("username already taken")

	// Validation errors.
	ErrorValidation   = errors.New("validation error")
	ErrorEmptyContent = errors.New("empty content")

	// Auth errors (invalid or malformed session token).
	ErrInvalidToken = errors.New("invalid token")
)
