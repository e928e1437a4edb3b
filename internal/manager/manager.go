// Package manager is the single owner of the barledger store. It opens the
// SQLite file, ensures the schema, composes the credential, inventory and
// ledger services, and serializes writes so that the balance always matches
// the committed transaction rows.
package manager

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/prn-tf/barledger/internal/domain"
	"github.com/prn-tf/barledger/internal/metrics"
	"github.com/prn-tf/barledger/internal/repository/sqlite"
	"github.com/prn-tf/barledger/internal/service"
)

// ErrClosed is returned by every operation after Close.
var ErrClosed = errors.New("store is closed")

// Options tunes Open. The zero value is usable.
type Options struct {
	// SQLite overrides the connection settings. Its Path is always replaced
	// by the location passed to Open.
	SQLite *sqlite.Config

	// BootstrapUsername and BootstrapPassword name the first-run account.
	// Both default to "admin".
	BootstrapUsername string
	BootstrapPassword string

	// Metrics receives the collectors; a fresh set is created when nil.
	Metrics *metrics.Metrics

	// Clock stamps ledger rows; time.Now when nil.
	Clock func() time.Time

	Logger zerolog.Logger
}

// Manager is the data manager facade.
type Manager struct {
	mu     sync.RWMutex
	closed bool

	db          *sqlite.DB
	credentials *service.CredentialService
	inventory   *service.InventoryService
	ledger      *service.LedgerService
	metrics     *metrics.Metrics

	bootstrapUsername string
	bootstrapPassword string

	sessionID string
	logger    zerolog.Logger
}

// Open opens or creates the store at location and makes sure the users,
// drinks and transactions tables exist. Opening the same location again does
// not duplicate schema or data.
func Open(ctx context.Context, location string, opts Options) (*Manager, error) {
	sessionID := uuid.NewString()
	logger := opts.Logger.With().
		Str("component", "manager").
		Str("session_id", sessionID).
		Logger()

	cfg := sqlite.DefaultConfig(location)
	if opts.SQLite != nil {
		cfg = *opts.SQLite
		cfg.Path = location
	}

	db, err := sqlite.NewDB(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", service.ErrStorageUnavailable, err)
	}

	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", service.ErrStorageUnavailable, err)
	}

	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}

	repos := sqlite.NewRepositories(db)

	mgr := &Manager{
		db:                db,
		credentials:       service.NewCredentialService(repos.User, m, logger),
		inventory:         service.NewInventoryService(repos.Drink, m, logger),
		ledger:            service.NewLedgerService(repos.Transaction, m, opts.Clock, logger),
		metrics:           m,
		bootstrapUsername: opts.BootstrapUsername,
		bootstrapPassword: opts.BootstrapPassword,
		sessionID:         sessionID,
		logger:            logger,
	}
	if mgr.bootstrapUsername == "" {
		mgr.bootstrapUsername = DefaultBootstrapUsername
	}
	if mgr.bootstrapPassword == "" {
		mgr.bootstrapPassword = DefaultBootstrapPassword
	}

	logger.Info().Str("location", location).Msg("store opened")
	return mgr, nil
}

// SessionID identifies this handle in logs.
func (m *Manager) SessionID() string {
	return m.sessionID
}

// Metrics returns the collectors fed by this handle.
func (m *Manager) Metrics() *metrics.Metrics {
	return m.metrics
}

// Close releases the storage handle. Later calls, including a second Close,
// return ErrClosed.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	m.closed = true

	if err := m.db.Close(); err != nil {
		return fmt.Errorf("%w: %v", service.ErrStorageUnavailable, err)
	}
	m.logger.Info().Msg("store closed")
	return nil
}

// write runs fn under the exclusive lock.
func (m *Manager) write(fn func() error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	return fn()
}

// read runs fn under the shared lock.
func (m *Manager) read(fn func() error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return ErrClosed
	}
	return fn()
}

// =============================================================================
// Authentication
// =============================================================================

// Register creates an account; false means the username is taken.
func (m *Manager) Register(ctx context.Context, username, password string) (bool, error) {
	var created bool
	err := m.write(func() error {
		var err error
		created, err = m.credentials.Register(ctx, username, password)
		return err
	})
	return created, err
}

// Verify checks a username/password pair.
func (m *Manager) Verify(ctx context.Context, username, password string) (bool, error) {
	var ok bool
	err := m.read(func() error {
		var err error
		ok, err = m.credentials.Verify(ctx, username, password)
		return err
	})
	return ok, err
}

// =============================================================================
// Inventory
// =============================================================================

// AddDrink inserts a drink and returns its ID.
func (m *Manager) AddDrink(ctx context.Context, name string, quantity int64, price decimal.Decimal) (int64, error) {
	var id int64
	err := m.write(func() error {
		var err error
		id, err = m.inventory.Add(ctx, name, quantity, price)
		return err
	})
	return id, err
}

// UpdateDrink overwrites quantity and price of an existing drink.
func (m *Manager) UpdateDrink(ctx context.Context, id int64, quantity int64, price decimal.Decimal) error {
	return m.write(func() error {
		return m.inventory.Update(ctx, id, quantity, price)
	})
}

// DeleteDrink removes a drink; unknown ids are ignored.
func (m *Manager) DeleteDrink(ctx context.Context, id int64) error {
	return m.write(func() error {
		return m.inventory.Delete(ctx, id)
	})
}

// GetDrink returns one drink.
func (m *Manager) GetDrink(ctx context.Context, id int64) (*domain.Drink, error) {
	var drink *domain.Drink
	err := m.read(func() error {
		var err error
		drink, err = m.inventory.Get(ctx, id)
		return err
	})
	return drink, err
}

// ListDrinks returns the stock ordered by ID.
func (m *Manager) ListDrinks(ctx context.Context) ([]*domain.Drink, error) {
	var drinks []*domain.Drink
	err := m.read(func() error {
		var err error
		drinks, err = m.inventory.List(ctx)
		return err
	})
	return drinks, err
}

// =============================================================================
// Ledger
// =============================================================================

// RecordTransaction appends a ledger row and returns its ID.
func (m *Manager) RecordTransaction(ctx context.Context, kind domain.TransactionKind, amount decimal.Decimal, description string) (int64, error) {
	var id int64
	err := m.write(func() error {
		var err error
		id, err = m.ledger.Record(ctx, kind, amount, description)
		return err
	})
	return id, err
}

// ListTransactions returns the ledger, most recent first.
func (m *Manager) ListTransactions(ctx context.Context) ([]*domain.Transaction, error) {
	var txs []*domain.Transaction
	err := m.read(func() error {
		var err error
		txs, err = m.ledger.List(ctx)
		return err
	})
	return txs, err
}

// Balance returns the sum of all recorded amounts.
func (m *Manager) Balance(ctx context.Context) (decimal.Decimal, error) {
	balance := decimal.Zero
	err := m.read(func() error {
		var err error
		balance, err = m.ledger.Balance(ctx)
		return err
	})
	return balance, err
}

// Summary returns deposit and purchase totals along with the balance.
func (m *Manager) Summary(ctx context.Context) (*domain.LedgerSummary, error) {
	var summary *domain.LedgerSummary
	err := m.read(func() error {
		var err error
		summary, err = m.ledger.Summary(ctx)
		return err
	})
	return summary, err
}
