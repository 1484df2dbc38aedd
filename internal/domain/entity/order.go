package entity

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// TaxRate is applied once to the order subtotal.
const TaxRate = 0.05

const (
	// MaxLineQuantity caps how many of one food item an order may hold.
	MaxLineQuantity = 99
	// MaxOrderAmount is the largest total a decimal(10,2) column stores.
	MaxOrderAmount = 99_999_999.99
)

// OrderStatus is a position in the forward-only order lifecycle.
type OrderStatus string

const (
	// OrderStatusPreparing is the initial state set at placement.
	OrderStatusPreparing OrderStatus = "preparing"
	// OrderStatusReady means the order waits at the counter.
	OrderStatusReady OrderStatus = "ready"
	// OrderStatusDelivered is terminal.
	OrderStatusDelivered OrderStatus = "delivered"
)

// ErrUnknownOrderStatus is returned for status names outside the lifecycle.
var ErrUnknownOrderStatus = errors.New("unknown order status")

// ActiveOrderStatuses are the states shown on the staff queue.
var ActiveOrderStatuses = []OrderStatus{OrderStatusPreparing, OrderStatusReady}

// ParseOrderStatus validates a status name.
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if !status.IsValid() {
		return "", errors.Wrapf(ErrUnknownOrderStatus, "%q", s)
	}

	return status, nil
}

// CountByStatus tallies orders per lifecycle state. Every state is present,
// zero when no order is in it.
func CountByStatus(orders []*OrderDetails) map[OrderStatus]int {
	counts := map[OrderStatus]int{
		OrderStatusPreparing: 0,
		OrderStatusReady:     0,
		OrderStatusDelivered: 0,
	}
	for _, order := range orders {
		if order != nil && order.Order != nil {
			counts[order.Status]++
		}
	}

	return counts
}

// String returns the stored status name.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the status belongs to the lifecycle.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPreparing, OrderStatusReady, OrderStatusDelivered:
		return true
	default:
		return false
	}
}

// Next returns the only status the order may move to. ok is false for the
// terminal state and for unknown values.
func (s OrderStatus) Next() (next OrderStatus, ok bool) {
	switch s {
	case OrderStatusPreparing:
		return OrderStatusReady, true
	case OrderStatusReady:
		return OrderStatusDelivered, true
	case OrderStatusDelivered:
		return "", false
	default:
		return "", false
	}
}

// CanAdvanceTo reports whether target is the immediate successor of s.
func (s OrderStatus) CanAdvanceTo(target OrderStatus) bool {
	next, ok := s.Next()

	return ok && next == target
}

// Label is the user-facing wording used in notifications.
func (s OrderStatus) Label() string {
	switch s {
	case OrderStatusReady:
		return "ready for pickup"
	case OrderStatusDelivered:
		return "delivered"
	case OrderStatusPreparing:
		return string(s)
	default:
		return string(s)
	}
}

// Order is the order header plus its line items.
type Order struct {
	ID          uuid.UUID    `json:"id"`
	OrderNumber string       `json:"order_number"`
	StudentID   uuid.UUID    `json:"student_id"`
	TotalAmount float64      `json:"total_amount"`
	Status      OrderStatus  `json:"status"`
	AssignedTo  *uuid.UUID   `json:"assigned_to,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Items       []*OrderItem `json:"items"`
}

// OrderItem is one order line. Price is the catalog price captured at placement.
type OrderItem struct {
	ID           uuid.UUID `json:"id"`
	OrderID      uuid.UUID `json:"order_id"`
	FoodItemID   uuid.UUID `json:"food_item_id"`
	FoodItemName string    `json:"food_item_name,omitempty"`
	Quantity     int       `json:"quantity"`
	Price        float64   `json:"price"`
}

// LineTotal is price times quantity.
func (i *OrderItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// OrderDetails is an order as shown on dashboards, with the student's display name.
type OrderDetails struct {
	*Order
	StudentName string `json:"student_name"`
}

// OrderFilter narrows an order listing. It is built by the use case from the
// caller's role and never taken from user input directly.
type OrderFilter struct {
	StudentID *uuid.UUID
	StatusIn  []OrderStatus
}

// RoundMoney rounds to cents, half away from zero.
func RoundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// Subtotal sums price*quantity over the items.
func Subtotal(items []*OrderItem) float64 {
	var subtotal float64
	for _, item := range items {
		subtotal += item.LineTotal()
	}

	return RoundMoney(subtotal)
}

// TotalWithTax applies TaxRate to the subtotal of items and rounds to cents.
func TotalWithTax(items []*OrderItem) float64 {
	return RoundMoney(Subtotal(items) * (1 + TaxRate))
}
