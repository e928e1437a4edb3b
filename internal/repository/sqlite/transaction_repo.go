package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/prn-tf/barledger/internal/domain"
	"github.com/prn-tf/barledger/internal/repository"
)

// transactionRepository implements repository.TransactionRepository for SQLite.
type transactionRepository struct {
	db *DB
}

// NewTransactionRepository creates a new SQLite ledger repository.
func NewTransactionRepository(db *DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

// Append inserts a transaction row.
func (r *transactionRepository) Append(ctx context.Context, tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions (timestamp, kind, amount, description)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		tx.Timestamp.Format(domain.TimestampLayout),
		tx.Kind.String(),
		tx.Amount.String(),
		tx.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to append transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	tx.ID = id

	return nil
}

// List returns all transactions, most recent first. Rows sharing a
// timestamp come back newest ID first.
func (r *transactionRepository) List(ctx context.Context) ([]*domain.Transaction, error) {
	query := `
		SELECT id, timestamp, kind, amount, description
		FROM transactions
		ORDER BY timestamp DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txs := make([]*domain.Transaction, 0)
	for rows.Next() {
		tx := &domain.Transaction{}
		var timestamp, kind string
		var description sql.NullString

		if err := rows.Scan(&tx.ID, &timestamp, &kind, &tx.Amount, &description); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		tx.Timestamp, err = time.ParseInLocation(domain.TimestampLayout, timestamp, time.Local)
		if err != nil {
			return nil, fmt.Errorf("failed to parse timestamp of transaction %d: %w", tx.ID, err)
		}
		tx.Kind, err = domain.ParseTransactionKind(kind)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", tx.ID, err)
		}
		tx.Description = description.String

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return txs, nil
}

// Amounts returns every stored amount in ID order.
// Summing happens in decimal arithmetic by the caller; SQLite's SUM would
// go through floating point.
func (r *transactionRepository) Amounts(ctx context.Context) ([]decimal.Decimal, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT amount FROM transactions ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to read amounts: %w", err)
	}
	defer rows.Close()

	amounts := make([]decimal.Decimal, 0)
	for rows.Next() {
		var amount decimal.Decimal
		if err := rows.Scan(&amount); err != nil {
			return nil, fmt.Errorf("failed to scan amount: %w", err)
		}
		amounts = append(amounts, amount)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating amounts: %w", err)
	}

	return amounts, nil
}

// Ensure transactionRepository implements repository.TransactionRepository.
var _ repository.TransactionRepository = (*transactionRepository)(nil)
