package ports

import (
	"context"

	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
)

// CreateSweetInput carries the fields accepted when creating a sweet.
type CreateSweetInput struct {
	Name        string
	Category    string
	Price       float64
	Quantity    int
	Description string
}

// UpdateSweetInput carries a partial update; nil pointers mean "leave unchanged".
type UpdateSweetInput struct {
	Name        *string
	Category    *string
	Price       *float64
	Quantity    *int
	Description *string
}

// ListSweetsResult is the paginated catalog view.
type ListSweetsResult struct {
	Items      []*domain.Sweet
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// CatalogService defines the sweet CRUD and search use cases.
type CatalogService interface {
	Create(ctx context.Context, input CreateSweetInput, actorID string) (*domain.Sweet, error)
	GetByID(ctx context.Context, id string) (*domain.Sweet, error)
	List(ctx context.Context, page, limit int) (*ListSweetsResult, error)
	Search(ctx context.Context, filter SearchSweetsFilter) ([]*domain.Sweet, error)
	Update(ctx context.Context, id string, input UpdateSweetInput, actorID string) (*domain.Sweet, error)
	Delete(ctx context.Context, id string) error
}
