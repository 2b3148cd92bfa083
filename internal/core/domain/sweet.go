package domain

import (
	"errors"
	"fmt"
	"time"
)

// Category is the closed set of sweet categories sold by the shop.
type Category string

const (
	CategoryMithai     Category = "mithai"
	CategoryMilkSweets Category = "milk-sweets"
	CategoryLaddoo     Category = "laddoo"
	CategoryHalwa      Category = "halwa"
	CategoryBarfi      Category = "barfi"
	CategoryChocolate  Category = "chocolate"
	CategoryBakery     Category = "bakery"
	CategoryNamkeen    Category = "namkeen"
	CategoryIceCream   Category = "ice-cream"
	CategoryDryFruit   Category = "dry-fruit"
	CategoryOther      Category = "other"
)

// Categories lists every valid category, in catalog display order.
var Categories = []Category{
	CategoryMithai,
	CategoryMilkSweets,
	CategoryLaddoo,
	CategoryHalwa,
	CategoryBarfi,
	CategoryChocolate,
	CategoryBakery,
	CategoryNamkeen,
	CategoryIceCream,
	CategoryDryFruit,
	CategoryOther,
}

// IsValid reports whether c is a member of the closed category set.
func (c Category) IsValid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

var ErrSweetNotFound = errors.New("sweet not found")
var ErrDuplicateName = errors.New("a sweet with this name already exists")
var ErrInvalidID = errors.New("invalid id format")
var ErrInvalidQuantity = errors.New("quantity must be a positive integer")
var ErrInvalidCategory = errors.New("invalid sweet category")
var ErrValidation = errors.New("validation failed")

// InsufficientStockError is returned when a purchase asks for more units than
// are available. Available carries the stock level at the time of the check so
// the message can report it.
type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock. Only %d units available.", e.Available)
}

// Sweet is the core catalog aggregate.
type Sweet struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Category    Category  `json:"category" bson:"category"`
	Price       float64   `json:"price" bson:"price"`
	Quantity    int       `json:"quantity" bson:"quantity"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	CreatedBy   string    `json:"created_by" bson:"created_by"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// Validate enforces the catalog invariants. It is the single source of truth
// for field rules; the request schemas mirror it for early 400s.
func (s *Sweet) Validate() error {
	if l := len(s.Name); l < 2 || l > 100 {
		return fmt.Errorf("%w: name must be between 2 and 100 characters", ErrValidation)
	}
	if !s.Category.IsValid() {
		return ErrInvalidCategory
	}
	if s.Price <= 0 {
		return fmt.Errorf("%w: price must be greater than 0", ErrValidation)
	}
	if s.Quantity < 0 {
		return fmt.Errorf("%w: quantity cannot be negative", ErrValidation)
	}
	if len(s.Description) > 500 {
		return fmt.Errorf("%w: description cannot exceed 500 characters", ErrValidation)
	}
	return nil
}
