package sqlite

import "github.com/prn-tf/barledger/internal/repository"

// NewRepositories builds every repository over the same database handle.
func NewRepositories(db *DB) *repository.Repositories {
	return &repository.Repositories{
		User:        NewUserRepository(db),
		Drink:       NewDrinkRepository(db),
		Transaction: NewTransactionRepository(db),
	}
}
