package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found. For carts it
	// also covers identifiers that no longer resolve upstream (expired).
	ErrNotFound = errors.New("not found")

	// ErrNotConfigured indicates the commerce API credentials are absent, so
	// no network call was attempted.
	ErrNotConfigured = errors.New("commerce API not configured")
)
