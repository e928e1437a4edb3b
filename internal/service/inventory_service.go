package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/prn-tf/barledger/internal/domain"
	"github.com/prn-tf/barledger/internal/metrics"
	"github.com/prn-tf/barledger/internal/repository"
)

// InventoryService manages the drink stock.
type InventoryService struct {
	drinkRepo repository.DrinkRepository
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(drinkRepo repository.DrinkRepository, m *metrics.Metrics, logger zerolog.Logger) *InventoryService {
	if m == nil {
		m = metrics.New()
	}
	return &InventoryService{
		drinkRepo: drinkRepo,
		metrics:   m,
		logger:    logger.With().Str("service", "inventory").Logger(),
	}
}

// Add inserts a drink and returns its ID.
// Names are not checked here; negative quantity or price is rejected.
func (s *InventoryService) Add(ctx context.Context, name string, quantity int64, price decimal.Decimal) (int64, error) {
	drink := domain.NewDrink(name, quantity, price)
	if err := drink.Validate(); err != nil {
		return 0, err
	}

	if err := s.drinkRepo.Create(ctx, drink); err != nil {
		s.logger.Error().Err(err).Str("name", name).Msg("failed to add drink")
		return 0, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	s.metrics.RecordDrinkOperation("add")
	s.logger.Info().
		Int64("drink_id", drink.ID).
		Str("name", drink.Name).
		Int64("quantity", drink.Quantity).
		Str("price", drink.Price.String()).
		Msg("drink added")

	return drink.ID, nil
}

// Update overwrites quantity and price. The name never changes.
// Returns domain.ErrDrinkNotFound when id does not exist.
func (s *InventoryService) Update(ctx context.Context, id int64, quantity int64, price decimal.Decimal) error {
	drink := &domain.Drink{ID: id, Quantity: quantity, Price: price}
	if err := drink.Validate(); err != nil {
		return err
	}

	if err := s.drinkRepo.UpdateStock(ctx, drink); err != nil {
		if errors.Is(err, domain.ErrDrinkNotFound) {
			return domain.NewDomainError(domain.ErrDrinkNotFound, "cannot update", fmt.Sprintf("drink %d", id))
		}
		s.logger.Error().Err(err).Int64("drink_id", id).Msg("failed to update drink")
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	s.metrics.RecordDrinkOperation("update")
	s.logger.Info().
		Int64("drink_id", id).
		Int64("quantity", quantity).
		Str("price", price.String()).
		Msg("drink updated")

	return nil
}

// Delete removes a drink. Deleting an unknown id is a no-op.
func (s *InventoryService) Delete(ctx context.Context, id int64) error {
	if err := s.drinkRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrDrinkNotFound) {
			s.logger.Debug().Int64("drink_id", id).Msg("delete of unknown drink ignored")
			return nil
		}
		s.logger.Error().Err(err).Int64("drink_id", id).Msg("failed to delete drink")
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	s.metrics.RecordDrinkOperation("delete")
	s.logger.Info().Int64("drink_id", id).Msg("drink deleted")
	return nil
}

// Get returns one drink.
func (s *InventoryService) Get(ctx context.Context, id int64) (*domain.Drink, error) {
	drink, err := s.drinkRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrDrinkNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Int64("drink_id", id).Msg("failed to get drink")
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return drink, nil
}

// List returns a snapshot of the stock ordered by ID.
func (s *InventoryService) List(ctx context.Context) ([]*domain.Drink, error) {
	drinks, err := s.drinkRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list drinks")
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return drinks, nil
}
