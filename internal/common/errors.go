// Package common defines shared constants and sentinel errors used across
// the AgriVision client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrNotFound = errors.New("not found")

	// Auth errors. ErrAuthRequired means no token is held when one is
	// needed; ErrAuthExpired means the server rejected the held token.
	ErrAuthRequired = errors.New("authentication required")
	ErrAuthExpired  = errors.New("authentication expired")

	// Transport failure before any status was received.
	ErrNetwork = errors.New("network error")

	// Client-side form validation. Never crosses the network boundary.
	ErrValidation = errors.New("validation error")
)
