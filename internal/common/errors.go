// Package common defines shared constants and sentinel errors used across
// NoteKeeper components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound   = errors.New("not found")
	ErrConstraint = errors.New("constraint violation")
	ErrStorageIO  = errors.New("storage failure")

	// Service-level errors.
	ErrValidation = errors.New("validation error")
	ErrInternal   = errors.New("internal error")

	// Secure storage errors. Initialization must not continue without the
	// secure backend: falling back to an ephemeral key would leave the
	// database unreadable on the next start.
	ErrSecureStorageUnavailable = errors.New("secure storage unavailable")

	// Sync errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("sync endpoint unavailable")
	ErrTokenExpired = errors.New("token expired")
)
