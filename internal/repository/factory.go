// Package repository defines data access interfaces for barledger.
// This file contains the bundle of repositories built over one database handle.
package repository

// Repositories holds all repository instances.
type Repositories struct {
	User        UserRepository
	Drink       DrinkRepository
	Transaction TransactionRepository
}
