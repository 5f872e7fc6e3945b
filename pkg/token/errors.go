package token

import "errors"

var (
	// ErrTokenNotFound is returned when no persisted record matches the token string
	ErrTokenNotFound = errors.New("token record not found")

	// ErrTokenInvalid is returned when a record exists but the signature or format check fails
	ErrTokenInvalid = errors.New("invalid token")

	// ErrTokenExpired is returned when the signature is valid but the token has expired
	ErrTokenExpired = errors.New("token has expired")
)
