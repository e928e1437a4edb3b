package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/prn-tf/barledger/internal/domain"
	"github.com/prn-tf/barledger/internal/metrics"
	"github.com/prn-tf/barledger/internal/repository"
)

// LedgerService appends to and reads the cash ledger.
// It exposes no way to change or remove a recorded transaction.
type LedgerService struct {
	txRepo  repository.TransactionRepository
	metrics *metrics.Metrics
	now     func() time.Time
	logger  zerolog.Logger
}

// NewLedgerService creates a new LedgerService. A nil clock means time.Now.
func NewLedgerService(txRepo repository.TransactionRepository, m *metrics.Metrics, clock func() time.Time, logger zerolog.Logger) *LedgerService {
	if m == nil {
		m = metrics.New()
	}
	if clock == nil {
		clock = time.Now
	}
	return &LedgerService{
		txRepo:  txRepo,
		metrics: m,
		now:     clock,
		logger:  logger.With().Str("service", "ledger").Logger(),
	}
}

// Record appends a transaction. The sign of amount is replaced by the one
// implied by kind. Returns the new transaction ID.
func (s *LedgerService) Record(ctx context.Context, kind domain.TransactionKind, amount decimal.Decimal, description string) (int64, error) {
	tx, err := domain.NewTransaction(kind, amount, description, s.now())
	if err != nil {
		return 0, err
	}

	if err := s.txRepo.Append(ctx, tx); err != nil {
		s.logger.Error().Err(err).Str("kind", kind.String()).Msg("failed to record transaction")
		return 0, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	s.metrics.RecordTransaction(kind.String())
	s.logger.Info().
		Int64("transaction_id", tx.ID).
		Str("kind", tx.Kind.String()).
		Str("amount", tx.Amount.String()).
		Msg("transaction recorded")

	return tx.ID, nil
}

// List returns every transaction, most recent first.
func (s *LedgerService) List(ctx context.Context) ([]*domain.Transaction, error) {
	txs, err := s.txRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list transactions")
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return txs, nil
}

// Balance returns the exact sum of all amounts; zero for an empty ledger.
func (s *LedgerService) Balance(ctx context.Context) (decimal.Decimal, error) {
	summary, err := s.Summary(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return summary.Balance, nil
}

// Summary totals deposits and purchases separately.
func (s *LedgerService) Summary(ctx context.Context) (*domain.LedgerSummary, error) {
	amounts, err := s.txRepo.Amounts(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to read ledger amounts")
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	summary := &domain.LedgerSummary{
		Deposits:  decimal.Zero,
		Purchases: decimal.Zero,
		Count:     int64(len(amounts)),
	}
	for _, amount := range amounts {
		if amount.IsNegative() {
			summary.Purchases = summary.Purchases.Add(amount)
		} else {
			summary.Deposits = summary.Deposits.Add(amount)
		}
	}
	summary.Balance = summary.Deposits.Add(summary.Purchases)

	s.metrics.SetBalance(summary.Balance)
	return summary, nil
}
