package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores, channels, and upstream
// clients return these (optionally wrapped) so services can translate them
// into domain errors.
//
// - ErrNotFound: nothing stored under the key, or no record with that identity
// - ErrExpired: the stored value outlived its retention window
// - ErrInvalidState: operation not allowed in the current state
// - ErrUnavailable: backing service temporarily unavailable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrExpired      = errors.New("expired")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
