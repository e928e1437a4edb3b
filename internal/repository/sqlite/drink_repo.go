package sqlite

import (
	"context"
	"fmt"

	"github.com/prn-tf/barledger/internal/domain"
	"github.com/prn-tf/barledger/internal/repository"
)

// drinkRepository implements repository.DrinkRepository for SQLite.
type drinkRepository struct {
	db *DB
}

// NewDrinkRepository creates a new SQLite drink repository.
func NewDrinkRepository(db *DB) repository.DrinkRepository {
	return &drinkRepository{db: db}
}

// Create inserts a drink.
func (r *drinkRepository) Create(ctx context.Context, drink *domain.Drink) error {
	query := `INSERT INTO drinks (name, quantity, price) VALUES (?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, drink.Name, drink.Quantity, drink.Price.String())
	if err != nil {
		return fmt.Errorf("failed to create drink: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	drink.ID = id

	return nil
}

// GetByID retrieves a drink by ID.
func (r *drinkRepository) GetByID(ctx context.Context, id int64) (*domain.Drink, error) {
	query := `SELECT id, name, quantity, price FROM drinks WHERE id = ?`

	drink := &domain.Drink{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&drink.ID,
		&drink.Name,
		&drink.Quantity,
		&drink.Price,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrDrinkNotFound
		}
		return nil, fmt.Errorf("failed to get drink by ID: %w", err)
	}

	return drink, nil
}

// UpdateStock overwrites quantity and price of an existing drink.
func (r *drinkRepository) UpdateStock(ctx context.Context, drink *domain.Drink) error {
	query := `UPDATE drinks SET quantity = ?, price = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, drink.Quantity, drink.Price.String(), drink.ID)
	if err != nil {
		return fmt.Errorf("failed to update drink: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrDrinkNotFound
	}

	return nil
}

// Delete deletes a drink by ID.
func (r *drinkRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM drinks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete drink: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrDrinkNotFound
	}

	return nil
}

// List returns every drink ordered by ID.
func (r *drinkRepository) List(ctx context.Context) ([]*domain.Drink, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, quantity, price FROM drinks ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list drinks: %w", err)
	}
	defer rows.Close()

	drinks := make([]*domain.Drink, 0)
	for rows.Next() {
		drink := &domain.Drink{}
		if err := rows.Scan(&drink.ID, &drink.Name, &drink.Quantity, &drink.Price); err != nil {
			return nil, fmt.Errorf("failed to scan drink: %w", err)
		}
		drinks = append(drinks, drink)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating drinks: %w", err)
	}

	return drinks, nil
}

// Ensure drinkRepository implements repository.DrinkRepository.
var _ repository.DrinkRepository = (*drinkRepository)(nil)
