package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TimestampLayout is the storage format of transaction timestamps.
// It sorts lexically in chronological order.
const TimestampLayout = "2006-01-02 15:04:05"

// TransactionKind tells whether money left or entered the till.
type TransactionKind string

const (
	// KindPurchase is money spent (stock bought, expenses). Stored negative.
	KindPurchase TransactionKind = "purchase"

	// KindDeposit is money added to the till. Stored positive.
	KindDeposit TransactionKind = "deposit"
)

// kindSign carries the sign rule for each kind.
var kindSign = map[TransactionKind]int{
	KindPurchase: -1,
	KindDeposit:  1,
}

// kindAliases maps accepted spellings, including the legacy French labels,
// to a kind.
var kindAliases = map[string]TransactionKind{
	"purchase": KindPurchase,
	"achat":    KindPurchase,
	"deposit":  KindDeposit,
	"ajout":    KindDeposit,
}

// ParseTransactionKind parses a kind from user input or a stored value.
func ParseTransactionKind(s string) (TransactionKind, error) {
	kind, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidTransactionKind, s)
	}
	return kind, nil
}

// IsValid returns true for the two known kinds.
func (k TransactionKind) IsValid() bool {
	_, ok := kindSign[k]
	return ok
}

// Sign returns -1 for purchases, +1 for deposits and 0 for unknown kinds.
func (k TransactionKind) Sign() int {
	return kindSign[k]
}

// Normalize applies the kind's sign to the magnitude of amount, ignoring
// whatever sign the caller supplied.
func (k TransactionKind) Normalize(amount decimal.Decimal) decimal.Decimal {
	abs := amount.Abs()
	if k.Sign() < 0 {
		return abs.Neg()
	}
	return abs
}

// String returns the stored representation.
func (k TransactionKind) String() string {
	return string(k)
}

// Transaction is one immutable ledger row.
type Transaction struct {
	// ID increases strictly in insertion order.
	ID int64 `json:"id"`

	// Timestamp is the capture time, second resolution.
	Timestamp time.Time `json:"timestamp"`

	Kind TransactionKind `json:"kind"`

	// Amount is signed: negative for purchases, positive for deposits.
	Amount decimal.Decimal `json:"amount"`

	// Description is never nil; missing notes are stored as "".
	Description string `json:"description"`
}

// NewTransaction builds a ledger row with the sign already normalized.
func NewTransaction(kind TransactionKind, amount decimal.Decimal, description string, at time.Time) (*Transaction, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTransactionKind, string(kind))
	}
	return &Transaction{
		Timestamp:   at.Truncate(time.Second),
		Kind:        kind,
		Amount:      kind.Normalize(amount),
		Description: description,
	}, nil
}

// LedgerSummary aggregates the whole ledger.
type LedgerSummary struct {
	// Deposits is the sum of positive amounts.
	Deposits decimal.Decimal `json:"deposits"`

	// Purchases is the sum of negative amounts (itself negative or zero).
	Purchases decimal.Decimal `json:"purchases"`

	// Balance is Deposits + Purchases.
	Balance decimal.Decimal `json:"balance"`

	Count int64 `json:"count"`
}
