package handler

import (
	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
	"github.com/sweetshop/sweet-shop-api/internal/core/ports"
)

// --- Domain → HTTP response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.UTC(),
	}
}

func toSweetResponse(s *domain.Sweet) sweetResponse {
	return sweetResponse{
		ID:          s.ID,
		Name:        s.Name,
		Category:    string(s.Category),
		Price:       s.Price,
		Quantity:    s.Quantity,
		Description: s.Description,
		CreatedBy:   s.CreatedBy,
		CreatedAt:   s.CreatedAt.UTC(),
		UpdatedAt:   s.UpdatedAt.UTC(),
	}
}

func toSweetResponses(items []*domain.Sweet) []sweetResponse {
	out := make([]sweetResponse, len(items))
	for i, s := range items {
		out[i] = toSweetResponse(s)
	}
	return out
}

func toPurchaseResponse(r *ports.PurchaseResult) purchaseResponse {
	return purchaseResponse{
		Sweet: purchasedSweet{
			ID:                r.Sweet.ID,
			Name:              r.Sweet.Name,
			Category:          string(r.Sweet.Category),
			Price:             r.Sweet.Price,
			RemainingQuantity: r.RemainingQuantity,
		},
		Purchase: purchaseDetails{
			Quantity:   r.PurchasedQuantity,
			TotalPrice: r.TotalPrice,
		},
	}
}

func toRestockResponse(r *ports.RestockResult) restockResponse {
	return restockResponse{
		Sweet: restockedSweet{
			ID:               r.Sweet.ID,
			Name:             r.Sweet.Name,
			Category:         string(r.Sweet.Category),
			Price:            r.Sweet.Price,
			PreviousQuantity: r.PreviousQuantity,
			AddedQuantity:    r.AddedQuantity,
			NewQuantity:      r.NewQuantity,
		},
	}
}

func toLowStockResponse(items []ports.LowStockItem, threshold int) lowStockResponse {
	out := make([]lowStockSweetResponse, len(items))
	for i, item := range items {
		out[i] = lowStockSweetResponse{
			sweetResponse: toSweetResponse(item.Sweet),
			CreatedByName: item.CreatedByName,
		}
	}
	return lowStockResponse{Count: len(out), Threshold: threshold, Items: out}
}

// --- HTTP request → Service input ---

func toCreateInput(req createSweetRequest) ports.CreateSweetInput {
	return ports.CreateSweetInput{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Description: req.Description,
	}
}

func toUpdateInput(req updateSweetRequest) ports.UpdateSweetInput {
	return ports.UpdateSweetInput{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Description: req.Description,
	}
}
