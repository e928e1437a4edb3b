package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/prn-tf/barledger/internal/domain"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "bar.db")
	db, err := NewDB(context.Background(), DefaultConfig(path), zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, db.EnsureSchema(context.Background()))
	t.Cleanup(func() { db.Close() })
	return db
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bar.db")

	db, err := NewDB(ctx, DefaultConfig(path), zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, db.EnsureSchema(ctx))

	users := NewUserRepository(db)
	require.NoError(t, users.Create(ctx, domain.NewUser("a", "hash")))
	require.NoError(t, db.Close())

	db, err = NewDB(ctx, DefaultConfig(path), zerolog.Nop())
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.EnsureSchema(ctx))
	require.NoError(t, db.EnsureSchema(ctx))

	count, err := NewUserRepository(db).Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	var tables int
	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('users', 'drinks', 'transactions')`,
	).Scan(&tables)
	require.NoError(t, err)
	require.Equal(t, 3, tables)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	user := domain.NewUser("alice", "$2a$10$hash")
	require.NoError(t, repo.Create(ctx, user))
	require.NotZero(t, user.ID)

	err := repo.Create(ctx, domain.NewUser("alice", "other"))
	require.ErrorIs(t, err, domain.ErrUserAlreadyExists)

	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
	require.Equal(t, "$2a$10$hash", got.PasswordHash)

	_, err = repo.GetByUsername(ctx, "ghost")
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	exists, err := repo.ExistsByUsername(ctx, "alice")
	require.NoError(t, err)
	require.True(t, exists)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func TestUserRepository_BlobHash(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	_, err := db.ExecContext(ctx, `INSERT INTO users (username, password_hash) VALUES (?, ?)`, "legacy", []byte("$2b$12$blobhash"))
	require.NoError(t, err)

	got, err := NewUserRepository(db).GetByUsername(ctx, "legacy")
	require.NoError(t, err)
	require.Equal(t, "$2b$12$blobhash", got.PasswordHash)
}

func TestDrinkRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewDrinkRepository(newTestDB(t))

	cola := domain.NewDrink("Cola", 10, decimal.RequireFromString("1.50"))
	require.NoError(t, repo.Create(ctx, cola))
	beer := domain.NewDrink("Beer", 24, decimal.RequireFromString("3.20"))
	require.NoError(t, repo.Create(ctx, beer))
	require.Greater(t, beer.ID, cola.ID)

	require.NoError(t, repo.UpdateStock(ctx, &domain.Drink{ID: cola.ID, Name: "ignored", Quantity: 5, Price: decimal.RequireFromString("2.00")}))

	got, err := repo.GetByID(ctx, cola.ID)
	require.NoError(t, err)
	require.Equal(t, "Cola", got.Name)
	require.Equal(t, int64(5), got.Quantity)
	require.Equal(t, "2.00", got.Price.StringFixed(2))

	err = repo.UpdateStock(ctx, &domain.Drink{ID: 999, Quantity: 1, Price: decimal.Zero})
	require.ErrorIs(t, err, domain.ErrDrinkNotFound)

	require.ErrorIs(t, repo.Delete(ctx, 999), domain.ErrDrinkNotFound)
	require.NoError(t, repo.Delete(ctx, beer.ID))

	_, err = repo.GetByID(ctx, beer.ID)
	require.ErrorIs(t, err, domain.ErrDrinkNotFound)

	drinks, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, drinks, 1)
	require.Equal(t, cola.ID, drinks[0].ID)
}

func TestDrinkRepository_LegacyRealPrice(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	_, err := db.ExecContext(ctx, `INSERT INTO drinks (name, quantity, price) VALUES (?, ?, ?)`, "Wine", 3, 4.5)
	require.NoError(t, err)

	drinks, err := NewDrinkRepository(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, drinks, 1)
	require.Equal(t, "4.50", drinks[0].Price.StringFixed(2))
}

func TestTransactionRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewTransactionRepository(db)

	base := time.Date(2024, 5, 1, 18, 0, 0, 0, time.Local)
	rows := []*domain.Transaction{
		{Timestamp: base, Kind: domain.KindDeposit, Amount: decimal.RequireFromString("100.00"), Description: "float"},
		{Timestamp: base.Add(time.Hour), Kind: domain.KindPurchase, Amount: decimal.RequireFromString("-5.00"), Description: "soda"},
		{Timestamp: base.Add(time.Hour), Kind: domain.KindPurchase, Amount: decimal.RequireFromString("-0.10")},
	}
	for _, tx := range rows {
		require.NoError(t, repo.Append(ctx, tx))
	}
	require.Less(t, rows[0].ID, rows[1].ID)
	require.Less(t, rows[1].ID, rows[2].ID)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, rows[2].ID, list[0].ID)
	require.Equal(t, rows[1].ID, list[1].ID)
	require.Equal(t, rows[0].ID, list[2].ID)
	require.Equal(t, "", list[0].Description)
	require.Equal(t, "-5.00", list[1].Amount.StringFixed(2))
	require.True(t, list[1].Timestamp.Equal(base.Add(time.Hour)))

	amounts, err := repo.Amounts(ctx)
	require.NoError(t, err)
	require.Len(t, amounts, 3)
}

func TestTransactionRepository_NullDescription(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bar.db")

	db, err := NewDB(ctx, DefaultConfig(path), zerolog.Nop())
	require.NoError(t, err)
	defer db.Close()

	// A table created before descriptions were NOT NULL.
	_, err = db.ExecContext(ctx, `
		CREATE TABLE transactions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp TEXT NOT NULL,
			kind TEXT NOT NULL,
			amount REAL NOT NULL,
			description TEXT
		)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx,
		`INSERT INTO transactions (timestamp, kind, amount, description) VALUES ('2024-01-01 10:00:00', 'Ajout', 2.5, NULL)`)
	require.NoError(t, err)

	require.NoError(t, db.EnsureSchema(ctx))

	list, err := NewTransactionRepository(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "", list[0].Description)
	require.Equal(t, domain.KindDeposit, list[0].Kind)
	require.Equal(t, "2.50", list[0].Amount.StringFixed(2))
}
