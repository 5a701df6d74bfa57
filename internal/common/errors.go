// Package common defines shared constants and sentinel errors used across
// the client and server layers of blogsync. Callers should use errors.Is to
// match these values; producers wrap them with fmt.Errorf("...: %w").
package common

import "errors"

var (
	// Store-level errors.
	ErrNotFound            = errors.New("not found")
	ErrNotFoundOrForbidden = errors.New("not found or forbidden")
	ErrUnavailable         = errors.New("store unavailable")
	ErrForbidden           = errors.New("forbidden")

	// Auth errors reported by the identity provider.
	ErrAuth                = errors.New("authentication failed")
	ErrEmailTaken          = errors.New("email already registered")
	ErrWeakPassword        = errors.New("password is too weak")
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// ErrNotSignedIn is raised locally, before the store is contacted,
	// when an operation needs a session and there is none.
	ErrNotSignedIn = errors.New("must be signed in")

	// Input shape errors.
	ErrValidation = errors.New("validation error")

	ErrInternal = errors.New("internal error")
)
