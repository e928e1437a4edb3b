// Package repository defines data access interfaces for barledger.
// These interfaces abstract database operations, allowing for different implementations
// (SQLite, mocks for testing) while keeping the service layer clean.
package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/prn-tf/barledger/internal/domain"
)

// =============================================================================
// User Repository
// =============================================================================

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// Create creates a new user and sets its ID.
	// Returns domain.ErrUserAlreadyExists if the username is taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByUsername retrieves a user by username.
	// Returns domain.ErrUserNotFound if absent.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// ExistsByUsername checks if a user with the given username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// Count returns the number of users.
	Count(ctx context.Context) (int64, error)
}

// =============================================================================
// Drink Repository
// =============================================================================

// DrinkRepository defines the interface for inventory data access.
type DrinkRepository interface {
	// Create inserts a drink and sets its ID.
	Create(ctx context.Context, drink *domain.Drink) error

	// GetByID retrieves a drink by ID.
	// Returns domain.ErrDrinkNotFound if absent.
	GetByID(ctx context.Context, id int64) (*domain.Drink, error)

	// UpdateStock overwrites quantity and price. The name is never touched.
	// Returns domain.ErrDrinkNotFound if no row matched.
	UpdateStock(ctx context.Context, drink *domain.Drink) error

	// Delete removes a drink by ID.
	// Returns domain.ErrDrinkNotFound if no row matched.
	Delete(ctx context.Context, id int64) error

	// List returns all drinks ordered by ID.
	List(ctx context.Context) ([]*domain.Drink, error)
}

// =============================================================================
// Transaction Repository
// =============================================================================

// TransactionRepository defines the interface for the append-only ledger.
// There is deliberately no update or delete.
type TransactionRepository interface {
	// Append inserts a transaction and sets its ID.
	Append(ctx context.Context, tx *domain.Transaction) error

	// List returns all transactions, most recent first.
	List(ctx context.Context) ([]*domain.Transaction, error)

	// Amounts returns every stored amount, in ID order.
	Amounts(ctx context.Context) ([]decimal.Decimal, error)
}
