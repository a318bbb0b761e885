package item

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrItemNotFound = errors.New("item not found or unauthorized")

	ErrMissingFields   = errors.New("all fields are required")
	ErrNameTooShort    = errors.New("item name must be at least 2 characters")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidPrice    = errors.New("price must be greater than 0")
	ErrInvalidQuantity = errors.New("quantity must be greater than 0")
)

// Item statuses
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Categories is the fixed set of allowed item categories
var Categories = []string{
	"Produce", "Dairy", "Meat", "Bakery", "Pantry",
	"Frozen", "Beverages", "Snacks", "Other",
}

// Item represents a grocery item owned by exactly one account
type Item struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Fields carries the caller-supplied item attributes for create and update
type Fields struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Validate checks all item fields. It trims the name in place.
// Validation runs before any store call, so invalid input never mutates state.
func (f *Fields) Validate() error {
	f.Name = strings.TrimSpace(f.Name)

	if f.Name == "" || f.Category == "" {
		return ErrMissingFields
	}
	if len([]rune(f.Name)) < 2 {
		return ErrNameTooShort
	}
	if !validCategory(f.Category) {
		return ErrInvalidCategory
	}
	if f.Price <= 0 {
		return ErrInvalidPrice
	}
	if f.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

func validCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// IsValidationError reports whether err is one of the field validation errors
func IsValidationError(err error) bool {
	switch err {
	case ErrMissingFields, ErrNameTooShort, ErrInvalidCategory, ErrInvalidPrice, ErrInvalidQuantity:
		return true
	}
	return false
}
