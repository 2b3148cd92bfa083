package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sweetshop/sweet-shop-api/internal/api/metrics"
	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
	"github.com/sweetshop/sweet-shop-api/internal/core/ports"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// SweetCache abstracts the read-through cache (Redis). All methods are
// best-effort: callers treat failures as cache misses.
type SweetCache interface {
	Get(ctx context.Context, id string) (*domain.Sweet, bool, error)
	Set(ctx context.Context, sweet *domain.Sweet) error
	Invalidate(ctx context.Context, id string) error
}

// CatalogService implements sweet CRUD and search.
type CatalogService struct {
	repo   ports.SweetRepository
	cache  SweetCache
	logger zerolog.Logger
}

func NewCatalogService(repo ports.SweetRepository, cache SweetCache, logger zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, cache: cache, logger: logger}
}

// Create validates the input, enforces case-insensitive name uniqueness, and
// persists the sweet with the actor recorded as creator.
func (s *CatalogService) Create(ctx context.Context, input ports.CreateSweetInput, actorID string) (*domain.Sweet, error) {
	now := time.Now().UTC()
	sweet := &domain.Sweet{
		Name:        strings.TrimSpace(input.Name),
		Category:    domain.Category(input.Category),
		Price:       input.Price,
		Quantity:    input.Quantity,
		Description: strings.TrimSpace(input.Description),
		CreatedBy:   actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := sweet.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByName(ctx, sweet.Name); err == nil {
		return nil, domain.ErrDuplicateName
	}

	created, err := s.repo.Create(ctx, sweet)
	if err != nil {
		s.logger.Error().Err(err).Str("name", sweet.Name).Msg("failed to create sweet")
		return nil, err
	}

	metrics.SweetsCreatedTotal.WithLabelValues(string(created.Category)).Inc()
	s.logger.Info().Str("sweet_id", created.ID).Str("name", created.Name).Msg("sweet created")
	return created, nil
}

// GetByID returns a single sweet, serving from cache when possible.
func (s *CatalogService) GetByID(ctx context.Context, id string) (*domain.Sweet, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, id)
		if err != nil {
			s.logger.Warn().Err(err).Str("sweet_id", id).Msg("cache read failed")
		} else if ok {
			metrics.CacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		}
		metrics.CacheTotal.WithLabelValues("miss").Inc()
	}

	sweet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, sweet); err != nil {
			s.logger.Warn().Err(err).Str("sweet_id", id).Msg("cache write failed")
		}
	}
	return sweet, nil
}

// List returns a page of the catalog sorted by creation time descending.
// Non-positive page or limit fall back to the defaults (1, 10).
func (s *CatalogService) List(ctx context.Context, page, limit int) (*ports.ListSweetsResult, error) {
	if page <= 0 {
		page = defaultPage
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	items, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	return &ports.ListSweetsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// Search applies the optional filters conjunctively. An empty filter set
// returns the full catalog, creation time descending.
func (s *CatalogService) Search(ctx context.Context, filter ports.SearchSweetsFilter) ([]*domain.Sweet, error) {
	if filter.Category != "" && !domain.Category(filter.Category).IsValid() {
		return nil, domain.ErrInvalidCategory
	}
	return s.repo.Search(ctx, filter)
}

// Update applies a partial field set, re-validating every provided field
// against the same invariants as Create. A name change re-checks uniqueness;
// a case-only rename of the same record is not a duplicate.
func (s *CatalogService) Update(ctx context.Context, id string, input ports.UpdateSweetInput, actorID string) (*domain.Sweet, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := *current
	fields := map[string]any{}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		merged.Name = name
		fields["name"] = name
		if !strings.EqualFold(name, current.Name) {
			if existing, err := s.repo.FindByName(ctx, name); err == nil && existing.ID != id {
				return nil, domain.ErrDuplicateName
			}
		}
	}
	if input.Category != nil {
		merged.Category = domain.Category(*input.Category)
		fields["category"] = *input.Category
	}
	if input.Price != nil {
		merged.Price = *input.Price
		fields["price"] = *input.Price
	}
	if input.Quantity != nil {
		merged.Quantity = *input.Quantity
		fields["quantity"] = *input.Quantity
	}
	if input.Description != nil {
		merged.Description = strings.TrimSpace(*input.Description)
		fields["description"] = merged.Description
	}

	if err := merged.Validate(); err != nil {
		return nil, err
	}

	if len(fields) == 0 {
		return current, nil
	}
	fields["updated_at"] = time.Now().UTC()

	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	s.logger.Info().Str("sweet_id", id).Str("actor_id", actorID).Msg("sweet updated")
	return updated, nil
}

// Delete removes a sweet unconditionally. Role gating happens at the route.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	s.logger.Info().Str("sweet_id", id).Msg("sweet deleted")
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("sweet_id", id).Msg("cache invalidation failed")
	}
}
