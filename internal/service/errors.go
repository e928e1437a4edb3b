// Package service provides the business logic of barledger: credentials,
// inventory and the cash ledger.
package service

import "errors"

// Common service errors.
var (
	// User errors
	ErrInvalidUsername = errors.New("invalid username: must not be empty")
	ErrInvalidPassword = errors.New("invalid password: must be 1-72 bytes")

	// General errors

	// ErrStorageUnavailable wraps any failure of the backing store. It is
	// fatal for the operation and never retried.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
