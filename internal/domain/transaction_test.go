package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParseTransactionKind(t *testing.T) {
	tests := []struct {
		input   string
		want    TransactionKind
		wantErr bool
	}{
		{input: "purchase", want: KindPurchase},
		{input: "Deposit", want: KindDeposit},
		{input: "Achat", want: KindPurchase},
		{input: " ajout ", want: KindDeposit},
		{input: "refund", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTransactionKind(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTransactionKind)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestTransactionKind_Normalize(t *testing.T) {
	tests := []struct {
		name   string
		kind   TransactionKind
		amount string
		want   string
	}{
		{name: "purchase positive input", kind: KindPurchase, amount: "5.00", want: "-5"},
		{name: "purchase negative input", kind: KindPurchase, amount: "-5.00", want: "-5"},
		{name: "deposit positive input", kind: KindDeposit, amount: "5.00", want: "5"},
		{name: "deposit negative input", kind: KindDeposit, amount: "-12.34", want: "12.34"},
		{name: "zero purchase", kind: KindPurchase, amount: "0", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.kind.Normalize(decimal.RequireFromString(tt.amount))
			require.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestNewTransaction(t *testing.T) {
	at := time.Date(2024, 3, 9, 21, 15, 42, 987654321, time.Local)

	tx, err := NewTransaction(KindPurchase, decimal.RequireFromString("5.00"), "soda", at)
	require.NoError(t, err)
	require.Equal(t, "-5.00", FormatAmount(tx.Amount))
	require.Equal(t, "2024-03-09 21:15:42", tx.Timestamp.Format(TimestampLayout))
	require.Equal(t, 0, tx.Timestamp.Nanosecond())
	require.Equal(t, "soda", tx.Description)

	_, err = NewTransaction(TransactionKind("Achat"), decimal.NewFromInt(1), "", at)
	require.ErrorIs(t, err, ErrInvalidTransactionKind)
}

func TestParseAmount(t *testing.T) {
	d, err := ParseAmount("1,50")
	require.NoError(t, err)
	require.Equal(t, "1.50", FormatAmount(d))

	_, err = ParseAmount("abc")
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestDrink_Validate(t *testing.T) {
	require.NoError(t, NewDrink("", 0, decimal.Zero).Validate())
	require.ErrorIs(t, NewDrink("Cola", -1, decimal.Zero).Validate(), ErrInvalidQuantity)
	require.ErrorIs(t, NewDrink("Cola", 1, decimal.NewFromInt(-1)).Validate(), ErrInvalidPrice)
}

func TestDomainError(t *testing.T) {
	err := NewDomainError(ErrDrinkNotFound, "cannot update", "drink 7")

	require.ErrorIs(t, err, ErrDrinkNotFound)
	require.Equal(t, "drink not found: cannot update (drink 7)", err.Error())
}
