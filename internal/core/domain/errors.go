package domain

import "errors"

var (
	// ErrInvalidCredentials covers unknown ids, wrong passwords and any
	// unusable refresh token. Callers must not be able to tell them apart.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("duplicate object already exists")
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthenticated is returned by scope checks when the caller is anonymous.
	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("access forbidden")

	// ErrRepositoryUnavailable marks a document store failure. It is fatal for
	// the current request and never retried.
	ErrRepositoryUnavailable = errors.New("repository unavailable")
)
