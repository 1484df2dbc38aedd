package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatus_Next(t *testing.T) {
	tests := []struct {
		status OrderStatus
		next   OrderStatus
		ok     bool
	}{
		{OrderStatusPreparing, OrderStatusReady, true},
		{OrderStatusReady, OrderStatusDelivered, true},
		{OrderStatusDelivered, "", false},
		{OrderStatus("cancelled"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			next, ok := tt.status.Next()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.next, next)
		})
	}
}

func TestOrderStatus_CanAdvanceTo(t *testing.T) {
	all := []OrderStatus{OrderStatusPreparing, OrderStatusReady, OrderStatusDelivered}

	for _, from := range all {
		for _, to := range all {
			next, ok := from.Next()
			want := ok && next == to
			assert.Equal(t, want, from.CanAdvanceTo(to), "%s -> %s", from, to)
		}
	}

	assert.False(t, OrderStatusPreparing.CanAdvanceTo(OrderStatusDelivered))
	assert.False(t, OrderStatusReady.CanAdvanceTo(OrderStatusReady))
	assert.False(t, OrderStatusDelivered.CanAdvanceTo(OrderStatusReady))
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("ready")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusReady, status)

	_, err = ParseOrderStatus("cancelled")
	assert.ErrorIs(t, err, ErrUnknownOrderStatus)
}

func TestCountByStatus(t *testing.T) {
	orders := []*OrderDetails{
		{Order: &Order{Status: OrderStatusReady}},
		{Order: &Order{Status: OrderStatusReady}},
		nil,
		{Order: &Order{Status: OrderStatusDelivered}},
	}

	assert.Equal(t, map[OrderStatus]int{
		OrderStatusPreparing: 0,
		OrderStatusReady:     2,
		OrderStatusDelivered: 1,
	}, CountByStatus(orders))
	assert.Len(t, CountByStatus(nil), 3)
}

func TestTotalWithTax(t *testing.T) {
	tests := []struct {
		name     string
		items    []*OrderItem
		subtotal float64
		total    float64
	}{
		{
			name:     "two lines",
			items:    []*OrderItem{{Price: 100, Quantity: 2}, {Price: 50, Quantity: 1}},
			subtotal: 250,
			total:    262.50,
		},
		{
			name:     "single line",
			items:    []*OrderItem{{Price: 1, Quantity: 3}},
			subtotal: 3,
			total:    3.15,
		},
		{
			name:     "fractional prices",
			items:    []*OrderItem{{Price: 12.99, Quantity: 3}, {Price: 4.25, Quantity: 2}},
			subtotal: 47.47,
			total:    49.84,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.subtotal, Subtotal(tt.items), 1e-9)
			assert.InDelta(t, tt.total, TotalWithTax(tt.items), 1e-9)
		})
	}
}

func TestNotificationMessages(t *testing.T) {
	order := &Order{
		OrderNumber: "ORD-20261018-ABCDEFGH",
		StudentID:   uuid.New(),
		Status:      OrderStatusPreparing,
		CreatedAt:   time.Now(),
	}

	placed := NewOrderPlacedNotification(order)
	assert.Equal(t, "Your order ORD-20261018-ABCDEFGH has been placed successfully!", placed.Message)
	assert.Equal(t, order.StudentID, placed.UserID)
	assert.False(t, placed.IsRead)

	order.Status = OrderStatusReady
	ready := NewOrderStatusNotification(order, time.Now())
	assert.Equal(t, "Your order ORD-20261018-ABCDEFGH is now ready for pickup!", ready.Message)

	order.Status = OrderStatusDelivered
	delivered := NewOrderStatusNotification(order, time.Now())
	assert.Equal(t, "Your order ORD-20261018-ABCDEFGH is now delivered!", delivered.Message)

	order.Status = OrderStatus("refunded")
	raw := NewOrderStatusNotification(order, time.Now())
	assert.Equal(t, "Your order ORD-20261018-ABCDEFGH is now refunded!", raw.Message)
}

func TestChangeFilter_Matches(t *testing.T) {
	userID := uuid.NewString()
	event := &ChangeEvent{
		Table:   TableNotifications,
		Type:    ChangeInsert,
		Columns: map[string]string{"user_id": userID},
	}

	assert.True(t, ChangeFilter{Table: TableNotifications}.Matches(event))
	assert.True(t, ChangeFilter{Table: TableNotifications, Column: "user_id", Value: userID}.Matches(event))
	assert.False(t, ChangeFilter{Table: TableNotifications, Column: "user_id", Value: uuid.NewString()}.Matches(event))
	assert.False(t, ChangeFilter{Table: TableOrders}.Matches(event))
	assert.False(t, ChangeFilter{Table: TableNotifications, Mask: MaskUpdate}.Matches(event))
	assert.True(t, ChangeFilter{Table: TableNotifications, Mask: MaskInsert | MaskUpdate}.Matches(event))
	assert.False(t, ChangeFilter{Table: TableNotifications}.Matches(nil))
}
