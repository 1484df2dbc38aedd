package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	deliverycontext "canteen/internal/delivery/context"
	"canteen/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// retryableError wraps an error to indicate the message should be redelivered
type retryableError struct {
	err error
}

func (e *retryableError) Error() string {
	return fmt.Sprintf("retryable: %v", e.err)
}

func (e *retryableError) Unwrap() error {
	return e.err
}

// newRetryableError wraps an error as retryable
func newRetryableError(err error) error {
	return &retryableError{err: err}
}

// IsRetryableError checks if an error is retryable
func IsRetryableError(err error) bool {
	var re *retryableError

	return errors.As(err, &re)
}

// DispatcherParams holds dependencies for the Dispatcher
type DispatcherParams struct {
	fx.In

	Logger *slog.Logger
	// PushService is nil when Firebase is not configured
	PushService service.PushService `optional:"true"`
}

// Dispatcher forwards notification events to the user's devices.
type Dispatcher struct {
	pushSvc service.PushService
	logger  *slog.Logger
}

// NewDispatcher creates a notification dispatcher
func NewDispatcher(params DispatcherParams) *Dispatcher {
	return &Dispatcher{
		pushSvc: params.PushService,
		logger:  params.Logger,
	}
}

// DecodeEvent parses a notification event body.
func DecodeEvent(data []byte) (*service.NotificationEvent, error) {
	var event service.NotificationEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, errors.Wrap(err, "failed to parse notification event")
	}
	if _, err := uuid.Parse(event.UserID); err != nil {
		return nil, errors.Wrapf(err, "invalid user_id %q", event.UserID)
	}

	return &event, nil
}

// Dispatch sends one push message to the user's topic. Delivery failures are
// retryable; malformed events are not.
func (d *Dispatcher) Dispatch(ctx context.Context, event *service.NotificationEvent) error {
	logger := deliverycontext.LoggerFrom(ctx, d.logger)

	if d.pushSvc == nil {
		logger.Debug("[Worker] Push delivery disabled, skipping",
			slog.String("notification_id", event.NotificationID),
		)

		return nil
	}

	title, body, data := notificationContent(event)

	messageID, err := d.pushSvc.SendToTopic(ctx, service.UserTopic(event.UserID), title, body, data)
	if err != nil {
		return newRetryableError(errors.Wrap(err, "failed to send push message"))
	}

	logger.Info("[Worker] Push message sent",
		slog.String("notification_id", event.NotificationID),
		slog.String("message_id", messageID),
	)

	return nil
}

// notificationContent creates the push title, body and data payload
func notificationContent(event *service.NotificationEvent) (title, body string, data map[string]string) {
	title = "Canteen order update"
	if event.OrderNumber != "" {
		title = "Order " + event.OrderNumber
	}
	body = event.Message

	data = map[string]string{
		"notification_id": event.NotificationID,
	}
	if event.OrderID != "" {
		data["order_id"] = event.OrderID
	}
	if event.OrderStatus != "" {
		data["order_status"] = event.OrderStatus
	}

	return title, body, data
}
