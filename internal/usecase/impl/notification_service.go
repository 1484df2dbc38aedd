package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "canteen/internal/delivery/context"
	"canteen/internal/domain/entity"
	domainerrors "canteen/internal/domain/errors"
	"canteen/internal/domain/repository"
	"canteen/internal/domain/service"
	"canteen/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type notificationService struct {
	txManager  repository.TransactionManager
	changeFeed service.ChangeFeed
	metrics    service.Metrics
	logger     *slog.Logger
	now        func() time.Time
}

// NotificationServiceParams holds dependencies for NotificationService, injected by Fx.
type NotificationServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	ChangeFeed service.ChangeFeed
	Metrics    service.Metrics
	Logger     *slog.Logger
}

// NewNotificationService creates a new notification service instance
func NewNotificationService(params NotificationServiceParams) usecase.NotificationUsecase {
	return &notificationService{
		txManager:  params.TxManager,
		changeFeed: params.ChangeFeed,
		metrics:    params.Metrics,
		logger:     params.Logger,
		now:        time.Now,
	}
}

func (srv *notificationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerFrom(ctx, srv.logger)
}

// UnreadCount always reads from the store.
func (srv *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		unread, err := repoFactory.NotificationRepo().CountUnread(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to count unread notifications")
		}
		count = unread

		return nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "failed to get unread count")
	}

	return count, nil
}

func (srv *notificationService) ListNotifications(ctx context.Context, userID uuid.UUID) ([]*entity.Notification, error) {
	notifications := []*entity.Notification{}
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NotificationRepo().ListByUser(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to list notifications")
		}
		if found != nil {
			notifications = found
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list notifications")
	}

	return notifications, nil
}

// MarkRead is idempotent; an update event is published only when the flag flipped.
func (srv *notificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	var changed bool
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		flipped, err := repoFactory.NotificationRepo().MarkRead(ctx, userID, notificationID)
		if err != nil {
			if errors.Is(err, repository.ErrNotificationNotFound) {
				return errors.Wrap(domainerrors.ErrNotificationNotFound, "notification not found")
			}

			return errors.Wrap(err, "failed to mark notification as read")
		}
		changed = flipped

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to mark notification as read")
	}

	if !changed {
		return nil
	}

	srv.changeFeed.Publish(ctx, notificationChangeEvent(entity.ChangeUpdate, &entity.Notification{
		ID:     notificationID,
		UserID: userID,
		IsRead: true,
	}, srv.now()))
	srv.metrics.NotificationsRead(1)

	return nil
}

// MarkAllRead only touches notifications created up to the start of the
// call, so one arriving concurrently stays unread.
func (srv *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error) {
	cutoff := srv.now().UTC()

	var flipped int
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		count, err := repoFactory.NotificationRepo().MarkAllRead(ctx, userID, cutoff)
		if err != nil {
			return errors.Wrap(err, "failed to mark notifications as read")
		}
		flipped = count

		return nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "failed to mark all notifications as read")
	}

	srv.log(ctx).Debug("Marked notifications as read",
		slog.String("user_id", userID.String()),
		slog.Int("count", flipped),
	)

	if flipped > 0 {
		srv.changeFeed.Publish(ctx, newChangeEvent(entity.TableNotifications, entity.ChangeUpdate, map[string]string{
			"user_id": userID.String(),
			"is_read": "true",
		}, map[string]any{"user_id": userID, "read_count": flipped}, srv.now()))
		srv.metrics.NotificationsRead(flipped)
	}

	return flipped, nil
}
