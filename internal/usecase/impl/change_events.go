package impl

import (
	"encoding/json"
	"strconv"
	"time"

	"canteen/internal/domain/entity"
	"canteen/internal/domain/service"

	"github.com/google/uuid"
)

// The Columns built here mirror the columns the database change triggers
// copy, so subscribers see the same events from either source.

func newChangeEvent(table string, changeType entity.ChangeType, columns map[string]string, record any, at time.Time) *entity.ChangeEvent {
	event := &entity.ChangeEvent{
		ID:          uuid.Must(uuid.NewV7()),
		Table:       table,
		Type:        changeType,
		Columns:     columns,
		CommittedAt: at,
	}
	if data, err := json.Marshal(record); err == nil {
		event.Record = data
	}

	return event
}

func orderChangeEvent(changeType entity.ChangeType, order *entity.Order, at time.Time) *entity.ChangeEvent {
	header := *order
	header.Items = nil

	return newChangeEvent(entity.TableOrders, changeType, map[string]string{
		"id":           order.ID.String(),
		"student_id":   order.StudentID.String(),
		"status":       order.Status.String(),
		"order_number": order.OrderNumber,
	}, header, at)
}

func orderItemChangeEvents(items []*entity.OrderItem, at time.Time) []*entity.ChangeEvent {
	events := make([]*entity.ChangeEvent, 0, len(items))
	for _, item := range items {
		events = append(events, newChangeEvent(entity.TableOrderItems, entity.ChangeInsert, map[string]string{
			"id":       item.ID.String(),
			"order_id": item.OrderID.String(),
		}, item, at))
	}

	return events
}

func notificationChangeEvent(changeType entity.ChangeType, notification *entity.Notification, at time.Time) *entity.ChangeEvent {
	return newChangeEvent(entity.TableNotifications, changeType, map[string]string{
		"id":      notification.ID.String(),
		"user_id": notification.UserID.String(),
		"is_read": strconv.FormatBool(notification.IsRead),
	}, notification, at)
}

// notificationEvent is the payload handed to the push pipeline.
func notificationEvent(requestID string, notification *entity.Notification, order *entity.Order) *service.NotificationEvent {
	event := &service.NotificationEvent{
		RequestID:      requestID,
		NotificationID: notification.ID.String(),
		UserID:         notification.UserID.String(),
		Message:        notification.Message,
		CreatedAt:      notification.CreatedAt.UTC().Format(time.RFC3339),
	}
	if order != nil {
		event.OrderID = order.ID.String()
		event.OrderNumber = order.OrderNumber
		event.OrderStatus = order.Status.String()
	}

	return event
}
