package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"canteen/internal/domain/service"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
)

const defaultNATSSubject = "canteen.notifications"

// natsPublisher publishes on <subject>.<user_id> and flushes so the server
// has the message before the call returns.
type natsPublisher struct {
	nc      *nats.Conn
	subject string
	logger  *slog.Logger
}

// NewNATSPublisher connects to the NATS server.
func NewNATSPublisher(url, subject string, logger *slog.Logger) (service.EventPublisher, error) {
	if subject == "" {
		subject = defaultNATSSubject
	}

	nc, err := nats.Connect(url,
		nats.Name("canteen-api"),
		nats.MaxReconnects(5),
		nats.ReconnectWait(time.Second),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to nats")
	}

	logger.Info("NATS publisher initialized", slog.String("subject", subject))

	return &natsPublisher{nc: nc, subject: subject, logger: logger}, nil
}

// PublishNotificationEvent publishes the event with attributes as headers.
func (p *natsPublisher) PublishNotificationEvent(ctx context.Context, event *service.NotificationEvent) error {
	// nats Publish does not take a context.
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "context cancelled before publish")
	}

	data, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	msg := nats.NewMsg(p.subject + "." + event.UserID)
	msg.Data = data
	for key, value := range eventAttributes(event) {
		msg.Header.Set(key, value)
	}

	if err := p.nc.PublishMsg(msg); err != nil {
		return errors.Wrap(err, "failed to publish to nats")
	}
	if err := p.nc.FlushWithContext(ctx); err != nil {
		return errors.Wrap(err, "failed to flush nats connection")
	}

	p.logger.Debug("[NATS] Notification event published",
		slog.String("notification_id", event.NotificationID),
		slog.String("subject", msg.Subject),
	)

	return nil
}

// Close drains the connection.
func (p *natsPublisher) Close() error {
	if p.nc == nil || p.nc.IsClosed() {
		return nil
	}

	return errors.WithStack(p.nc.Drain())
}
