package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Notification is an append-only per-user message produced by order lifecycle
// events. IsRead only ever moves from false to true.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// NewOrderPlacedNotification builds the message sent to a student after placement.
func NewOrderPlacedNotification(order *Order) *Notification {
	return &Notification{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    order.StudentID,
		Message:   fmt.Sprintf("Your order %s has been placed successfully!", order.OrderNumber),
		CreatedAt: order.CreatedAt,
	}
}

// NewOrderStatusNotification builds the message sent when an order changes status.
func NewOrderStatusNotification(order *Order, at time.Time) *Notification {
	return &Notification{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    order.StudentID,
		Message:   fmt.Sprintf("Your order %s is now %s!", order.OrderNumber, order.Status.Label()),
		CreatedAt: at,
	}
}
