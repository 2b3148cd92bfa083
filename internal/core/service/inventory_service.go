package service

import (
	"context"
	"errors"
	"math"

	"github.com/rs/zerolog"

	"github.com/sweetshop/sweet-shop-api/internal/api/metrics"
	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
	"github.com/sweetshop/sweet-shop-api/internal/core/ports"
)

const defaultLowStockThreshold = 10

// InventoryService implements the two stock transitions and the low-stock report.
type InventoryService struct {
	sweets ports.SweetRepository
	users  ports.UserRepository
	cache  SweetCache
	logger zerolog.Logger
}

func NewInventoryService(sweets ports.SweetRepository, users ports.UserRepository, cache SweetCache, logger zerolog.Logger) *InventoryService {
	return &InventoryService{sweets: sweets, users: users, cache: cache, logger: logger}
}

// Purchase decrements stock all-or-nothing and computes the total price.
// The decrement is a conditional update (quantity >= qty), so concurrent
// purchases cannot drive the quantity negative.
func (s *InventoryService) Purchase(ctx context.Context, sweetID string, quantity int, actorID string) (*ports.PurchaseResult, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	sweet, err := s.sweets.FindByID(ctx, sweetID)
	if err != nil {
		return nil, err
	}
	if sweet.Quantity < quantity {
		metrics.InsufficientStockTotal.Inc()
		return nil, &domain.InsufficientStockError{Available: sweet.Quantity}
	}

	updated, err := s.sweets.DecrementQuantity(ctx, sweetID, quantity)
	if err != nil {
		// The guard can fail between the read above and the write when a
		// concurrent purchase drained the stock. Re-read for the message.
		if errors.Is(err, domain.ErrSweetNotFound) {
			if fresh, findErr := s.sweets.FindByID(ctx, sweetID); findErr == nil {
				metrics.InsufficientStockTotal.Inc()
				return nil, &domain.InsufficientStockError{Available: fresh.Quantity}
			}
		}
		return nil, err
	}

	s.invalidate(ctx, sweetID)
	metrics.PurchasesTotal.WithLabelValues(string(updated.Category)).Inc()

	total := roundMoney(updated.Price * float64(quantity))
	s.logger.Info().
		Str("sweet_id", sweetID).
		Str("actor_id", actorID).
		Int("quantity", quantity).
		Float64("total_price", total).
		Msg("purchase completed")

	return &ports.PurchaseResult{
		Sweet:             updated,
		RemainingQuantity: updated.Quantity,
		PurchasedQuantity: quantity,
		TotalPrice:        total,
	}, nil
}

// Restock increments stock. Role gating (admin) happens at the route.
func (s *InventoryService) Restock(ctx context.Context, sweetID string, quantity int, actorID string) (*ports.RestockResult, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	updated, err := s.sweets.IncrementQuantity(ctx, sweetID, quantity)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, sweetID)
	metrics.RestocksTotal.WithLabelValues(string(updated.Category)).Inc()

	s.logger.Info().
		Str("sweet_id", sweetID).
		Str("actor_id", actorID).
		Int("quantity", quantity).
		Int("new_quantity", updated.Quantity).
		Msg("restock completed")

	return &ports.RestockResult{
		Sweet:            updated,
		PreviousQuantity: updated.Quantity - quantity,
		AddedQuantity:    quantity,
		NewQuantity:      updated.Quantity,
	}, nil
}

// LowStock returns sweets at or below the threshold, ascending by quantity,
// each annotated with its creator's username. Non-positive thresholds fall
// back to the default of 10.
func (s *InventoryService) LowStock(ctx context.Context, threshold int) ([]ports.LowStockItem, error) {
	if threshold <= 0 {
		threshold = defaultLowStockThreshold
	}

	sweets, err := s.sweets.FindLowStock(ctx, threshold)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(sweets))
	for _, sw := range sweets {
		if sw.CreatedBy != "" {
			ids = append(ids, sw.CreatedBy)
		}
	}

	creators, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to resolve creators for low-stock report")
		creators = map[string]*domain.User{}
	}

	items := make([]ports.LowStockItem, 0, len(sweets))
	for _, sw := range sweets {
		item := ports.LowStockItem{Sweet: sw}
		if u, ok := creators[sw.CreatedBy]; ok {
			item.CreatedByName = u.Username
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *InventoryService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("sweet_id", id).Msg("cache invalidation failed")
	}
}

// roundMoney rounds to two decimal places, half away from zero.
func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
