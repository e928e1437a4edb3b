// Package domain contains the core business entities for barledger.
package domain

import (
	"errors"
	"fmt"
)

// Domain errors - these represent business rule violations.
// They are distinct from infrastructure errors (database, disk, etc.).

var (
	// ===========================================
	// User Errors
	// ===========================================

	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates a user with the same username exists.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrInvalidCredentials indicates authentication failed.
	// It is returned both for unknown users and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ===========================================
	// Inventory Errors
	// ===========================================

	// ErrDrinkNotFound indicates the referenced drink does not exist.
	ErrDrinkNotFound = errors.New("drink not found")

	// ErrInvalidQuantity indicates a negative stock quantity.
	ErrInvalidQuantity = errors.New("quantity must not be negative")

	// ErrInvalidPrice indicates a negative price.
	ErrInvalidPrice = errors.New("price must not be negative")

	// ===========================================
	// Ledger Errors
	// ===========================================

	// ErrInvalidTransactionKind indicates a kind other than purchase or deposit.
	ErrInvalidTransactionKind = errors.New("invalid transaction kind")

	// ErrInvalidAmount indicates an amount that cannot be parsed.
	ErrInvalidAmount = errors.New("invalid amount")
)

// DomainError wraps a domain error with additional context.
type DomainError struct {
	// Err is the underlying domain error.
	Err error

	// Message provides additional context.
	Message string

	// Resource identifies the affected resource (e.g., drink id, username).
	Resource string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Err.Error(), e.Message, e.Resource)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error for errors.Is/errors.As.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError with context.
func NewDomainError(err error, message, resource string) *DomainError {
	return &DomainError{
		Err:      err,
		Message:  message,
		Resource: resource,
	}
}
