// Package common defines shared constants and sentinel errors used across
// the client and server layers of GarageHub. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks a missing or malformed field. It is always caught
	// locally and surfaced per field; no network call is attempted.
	ErrValidation = errors.New("validation error")

	// ErrTransfer marks a failed presign request or byte transfer. It aborts
	// the remaining pipeline steps for the current commit attempt.
	ErrTransfer = errors.New("transfer failed")

	// ErrStore marks a failed entry-store call, including responses with
	// success=false. The local cache is left unchanged.
	ErrStore = errors.New("store request failed")

	// Auth errors. Callers treat ErrUnauthorized as a store-level failure;
	// it is not retried.
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
