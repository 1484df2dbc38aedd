package model

import (
	"time"

	"github.com/google/uuid"
)

// FoodItemModel is the GORM-specific struct for the 'food_items' table.
type FoodItemModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string    `gorm:"type:text;not null;uniqueIndex"`
	Description string    `gorm:"type:text"`
	Price       float64   `gorm:"type:decimal(10,2);not null;check:price > 0"`
	ImageURL    string    `gorm:"type:text"`
	IsAvailable bool      `gorm:"not null;default:true"`
	Category    string    `gorm:"type:text;not null;index"`
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (FoodItemModel) TableName() string {
	return "food_items"
}
