package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel is the GORM-specific struct for the 'orders' table.
type OrderModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrderNumber string     `gorm:"type:text;not null;uniqueIndex"`
	StudentID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	TotalAmount float64    `gorm:"type:decimal(10,2);not null"`
	Status      string     `gorm:"type:text;not null;default:'preparing';index;check:status IN ('preparing','ready','delivered')"`
	AssignedTo  *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time  `gorm:"index"`
	UpdatedAt   time.Time

	Student ProfileModel      `gorm:"foreignKey:StudentID;constraint:OnDelete:RESTRICT"`
	Items   []*OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is the GORM-specific struct for the 'order_items' table.
// Price is the catalog price captured when the order was placed.
type OrderItemModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	FoodItemID uuid.UUID `gorm:"type:uuid;not null"`
	Quantity   int       `gorm:"not null;check:quantity > 0"`
	Price      float64   `gorm:"type:decimal(10,2);not null"`

	FoodItem FoodItemModel `gorm:"foreignKey:FoodItemID;constraint:OnDelete:RESTRICT"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
