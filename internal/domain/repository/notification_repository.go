package repository

import (
	"context"
	"time"

	"canteen/internal/domain/entity"
	"canteen/internal/errors"

	"github.com/google/uuid"
)

// ErrNotificationNotFound is returned when a notification is not found for its owner.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository defines the interface for notification-related database operations.
type NotificationRepository interface {
	// Create persists a new notification.
	Create(ctx context.Context, notification *entity.Notification) error

	// ListByUser returns the user's notifications, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Notification, error)

	// CountUnread counts the user's unread notifications.
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)

	// MarkRead flips is_read for a notification owned by userID. Already-read
	// notifications are left as they are. Returns ErrNotificationNotFound
	// when the notification does not exist or belongs to someone else.
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) (changed bool, err error)

	// MarkAllRead flips every unread notification of the user created at or
	// before the cutoff and returns how many changed.
	MarkAllRead(ctx context.Context, userID uuid.UUID, cutoff time.Time) (int, error)
}
