package service

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/prn-tf/barledger/internal/domain"
)

// =============================================================================
// Mock Repositories
// =============================================================================

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockDrinkRepository struct {
	mock.Mock
}

func (m *mockDrinkRepository) Create(ctx context.Context, drink *domain.Drink) error {
	args := m.Called(ctx, drink)
	if args.Error(0) == nil {
		drink.ID = 7
	}
	return args.Error(0)
}

func (m *mockDrinkRepository) GetByID(ctx context.Context, id int64) (*domain.Drink, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Drink), args.Error(1)
}

func (m *mockDrinkRepository) UpdateStock(ctx context.Context, drink *domain.Drink) error {
	args := m.Called(ctx, drink)
	return args.Error(0)
}

func (m *mockDrinkRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockDrinkRepository) List(ctx context.Context) ([]*domain.Drink, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Drink), args.Error(1)
}

type mockTransactionRepository struct {
	mock.Mock
}

func (m *mockTransactionRepository) Append(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	if args.Error(0) == nil {
		tx.ID = 42
	}
	return args.Error(0)
}

func (m *mockTransactionRepository) List(ctx context.Context) ([]*domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Transaction), args.Error(1)
}

func (m *mockTransactionRepository) Amounts(ctx context.Context) ([]decimal.Decimal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]decimal.Decimal), args.Error(1)
}
