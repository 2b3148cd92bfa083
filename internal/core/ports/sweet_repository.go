package ports

import (
	"context"

	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
)

// SearchSweetsFilter carries the optional, conjunctive search predicates.
// Zero values mean "no filter" for their field.
type SearchSweetsFilter struct {
	Name        string  // case-insensitive substring match
	Category    string  // exact match against the category enum
	MinPrice    float64 // inclusive lower bound, active when HasMinPrice
	MaxPrice    float64 // inclusive upper bound, active when HasMaxPrice
	HasMinPrice bool
	HasMaxPrice bool
}

// SweetRepository defines persistence operations for the catalog.
type SweetRepository interface {
	Create(ctx context.Context, s *domain.Sweet) (*domain.Sweet, error)
	FindByID(ctx context.Context, id string) (*domain.Sweet, error)
	// FindByName matches the name case-insensitively.
	FindByName(ctx context.Context, name string) (*domain.Sweet, error)
	// List returns a page sorted by creation time descending, plus the total count.
	List(ctx context.Context, page, limit int) ([]*domain.Sweet, int64, error)
	Search(ctx context.Context, filter SearchSweetsFilter) ([]*domain.Sweet, error)
	// Update applies the given partial field set and returns the updated document.
	Update(ctx context.Context, id string, fields map[string]any) (*domain.Sweet, error)
	Delete(ctx context.Context, id string) error

	// DecrementQuantity atomically subtracts qty, guarded by quantity >= qty.
	// Returns ErrSweetNotFound when no document satisfies the guard (the
	// caller distinguishes a missing sweet from insufficient stock).
	DecrementQuantity(ctx context.Context, id string, qty int) (*domain.Sweet, error)
	// IncrementQuantity atomically adds qty and returns the updated document.
	IncrementQuantity(ctx context.Context, id string, qty int) (*domain.Sweet, error)
	// FindLowStock returns sweets with quantity <= threshold, ascending by quantity.
	FindLowStock(ctx context.Context, threshold int) ([]*domain.Sweet, error)
}
