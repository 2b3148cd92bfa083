package ports

import (
	"context"

	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
)

// PurchaseResult is returned after a successful stock decrement.
type PurchaseResult struct {
	Sweet             *domain.Sweet
	RemainingQuantity int
	PurchasedQuantity int
	TotalPrice        float64
}

// RestockResult is returned after a successful stock increment.
type RestockResult struct {
	Sweet            *domain.Sweet
	PreviousQuantity int
	AddedQuantity    int
	NewQuantity      int
}

// LowStockItem is a sweet at or below the threshold, annotated with its
// creator's username.
type LowStockItem struct {
	Sweet         *domain.Sweet
	CreatedByName string
}

// InventoryService defines the stock mutation and reporting use cases.
// Purchase and Restock are the only quantity transitions in the system.
type InventoryService interface {
	Purchase(ctx context.Context, sweetID string, quantity int, actorID string) (*PurchaseResult, error)
	Restock(ctx context.Context, sweetID string, quantity int, actorID string) (*RestockResult, error)
	LowStock(ctx context.Context, threshold int) ([]LowStockItem, error)
}
