package usecase

import (
	"context"

	"canteen/internal/domain/entity"

	"github.com/google/uuid"
)

// NotificationUsecase defines the per-user notification operations.
type NotificationUsecase interface {
	// UnreadCount counts the user's unread notifications.
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)

	// ListNotifications returns the user's notifications, newest first.
	ListNotifications(ctx context.Context, userID uuid.UUID) ([]*entity.Notification, error)

	// MarkRead marks one of the user's notifications as read. Marking twice is a no-op.
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error

	// MarkAllRead marks every unread notification created up to now and returns how many changed.
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error)
}
