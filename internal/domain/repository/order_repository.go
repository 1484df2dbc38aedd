package repository

import (
	"context"
	"time"

	"canteen/internal/domain/entity"
	"canteen/internal/errors"

	"github.com/google/uuid"
)

var (
	// ErrOrderNotFound is returned when an order is not found.
	ErrOrderNotFound = errors.New("order not found")
	// ErrDuplicateOrderNumber is returned when the order number unique index rejects an insert.
	ErrDuplicateOrderNumber = errors.New("duplicate order number")
)

// StatusUpdate is a conditional status write: it applies only while the
// stored status still equals From.
type StatusUpdate struct {
	OrderID    uuid.UUID
	From       entity.OrderStatus
	To         entity.OrderStatus
	AssignedTo *uuid.UUID
	UpdatedAt  time.Time
}

// OrderRepository defines order header and line persistence.
type OrderRepository interface {
	// CreateOrder inserts the order header. Items are written with CreateOrderItems.
	CreateOrder(ctx context.Context, order *entity.Order) error

	// CreateOrderItems inserts the order lines.
	CreateOrderItems(ctx context.Context, items []*entity.OrderItem) error

	// FindByID returns the order with its items and the student's name.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.OrderDetails, error)

	// UpdateStatus applies the conditional write and reports whether a row changed.
	UpdateStatus(ctx context.Context, update StatusUpdate) (bool, error)

	// List returns orders matching the filter, newest first with id as tiebreak.
	List(ctx context.Context, filter entity.OrderFilter) ([]*entity.OrderDetails, error)
}
