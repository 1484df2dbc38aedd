// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"canteen/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderUsecase defines the order lifecycle operations.
type OrderUsecase interface {
	// PlaceOrder creates the order, its lines and the placement notification in one transaction.
	PlaceOrder(ctx context.Context, actor entity.Actor, input *PlaceOrderInput) (*entity.OrderDetails, error)

	// AdvanceStatus moves the order to its next status and notifies the student.
	AdvanceStatus(ctx context.Context, actor entity.Actor, orderID uuid.UUID, status entity.OrderStatus) (*entity.OrderDetails, error)

	// ListOrders returns the orders visible to the actor, newest first.
	ListOrders(ctx context.Context, actor entity.Actor, statusIn []entity.OrderStatus) ([]*entity.OrderDetails, error)

	// GetOrder returns one order visible to the actor.
	GetOrder(ctx context.Context, actor entity.Actor, orderID uuid.UUID) (*entity.OrderDetails, error)

	// PickupQR renders the pickup code of a student's own order as a PNG.
	PickupQR(ctx context.Context, actor entity.Actor, orderID uuid.UUID) ([]byte, error)

	// ConfirmPickup delivers the order identified by a scanned pickup code.
	ConfirmPickup(ctx context.Context, actor entity.Actor, qrData string) (*entity.OrderDetails, error)
}

// --- Input DTOs ---

// OrderLineInput is one cart line.
type OrderLineInput struct {
	FoodItemID uuid.UUID `json:"food_item_id" validate:"required"`
	Quantity   int       `json:"quantity" validate:"required,gt=0,max=99"`
}

// PlaceOrderInput defines the data required to place an order.
type PlaceOrderInput struct {
	Lines []OrderLineInput `json:"items" validate:"required,min=1,max=50,dive"`
}
