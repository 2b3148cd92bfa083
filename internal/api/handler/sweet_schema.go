package handler

import "time"

type createSweetRequest struct {
	Name        string  `json:"name"        validate:"required,min=2,max=100"`
	Category    string  `json:"category"    validate:"required,oneof=mithai milk-sweets laddoo halwa barfi chocolate bakery namkeen ice-cream dry-fruit other"`
	Price       float64 `json:"price"       validate:"required,gt=0"`
	Quantity    int     `json:"quantity"    validate:"omitempty,gte=0"`
	Description string  `json:"description" validate:"omitempty,max=500"`
}

// updateSweetRequest carries a partial update; absent fields stay unchanged.
type updateSweetRequest struct {
	Name        *string  `json:"name"        validate:"omitempty,min=2,max=100"`
	Category    *string  `json:"category"    validate:"omitempty,oneof=mithai milk-sweets laddoo halwa barfi chocolate bakery namkeen ice-cream dry-fruit other"`
	Price       *float64 `json:"price"       validate:"omitempty,gt=0"`
	Quantity    *int     `json:"quantity"    validate:"omitempty,gte=0"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
}

type quantityRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// sweetResponse is the transport view of a sweet.
type sweetResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	Description string    `json:"description,omitempty"`
	CreatedBy   string    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type listSweetsResponse struct {
	Count int             `json:"count"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Pages int             `json:"pages"`
	Items []sweetResponse `json:"items"`
}

type searchSweetsResponse struct {
	Count int             `json:"count"`
	Items []sweetResponse `json:"items"`
}

// purchaseResponse reports the decremented sweet plus the computed price.
type purchaseResponse struct {
	Sweet    purchasedSweet  `json:"sweet"`
	Purchase purchaseDetails `json:"purchase"`
}

type purchasedSweet struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Category          string  `json:"category"`
	Price             float64 `json:"price"`
	RemainingQuantity int     `json:"remaining_quantity"`
}

type purchaseDetails struct {
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
}

// restockResponse reports the stock delta applied by a restock.
type restockResponse struct {
	Sweet restockedSweet `json:"sweet"`
}

type restockedSweet struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Category         string  `json:"category"`
	Price            float64 `json:"price"`
	PreviousQuantity int     `json:"previous_quantity"`
	AddedQuantity    int     `json:"added_quantity"`
	NewQuantity      int     `json:"new_quantity"`
}

// lowStockSweetResponse is a sweet annotated with its creator's username.
type lowStockSweetResponse struct {
	sweetResponse
	CreatedByName string `json:"created_by_name,omitempty"`
}

type lowStockResponse struct {
	Count     int                     `json:"count"`
	Threshold int                     `json:"threshold"`
	Items     []lowStockSweetResponse `json:"items"`
}
