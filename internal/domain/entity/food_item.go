package entity

import (
	"time"

	"github.com/google/uuid"
)

// FoodItem is a menu entry. Price is the current catalog price; orders keep
// their own snapshot in OrderItem.Price.
type FoodItem struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url"`
	IsAvailable bool      `json:"is_available"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}

// MenuCategory groups available items under one category heading.
type MenuCategory struct {
	Category string      `json:"category"`
	Items    []*FoodItem `json:"items"`
}
