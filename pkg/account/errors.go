package account

import "errors"

var (
	// ErrEmailTaken is returned when registering with an email that is
	// already in use
	ErrEmailTaken = errors.New("email address already in use")

	// ErrWeakPassword is returned when a password fails the complexity
	// policy; checked before any storage access
	ErrWeakPassword = errors.New("password does not meet complexity requirements")

	// ErrInvalidCredentials is returned for both an unknown email and a
	// wrong password, so callers cannot enumerate accounts
	ErrInvalidCredentials = errors.New("wrong email or password")

	// ErrUnauthenticated is returned when a bearer token cannot be
	// resolved to a user
	ErrUnauthenticated = errors.New("invalid token")

	// ErrUserNotFound is returned by repositories when no user matches
	ErrUserNotFound = errors.New("user not found")
)
