package worker

import (
	"context"
	"log/slog"
	"sync"

	"canteen/config"
	"canteen/internal/delivery"
	deliverycontext "canteen/internal/delivery/context"
	"canteen/internal/delivery/worker/handler"
	"canteen/internal/domain/constants"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/fx"
)

const (
	defaultRabbitMQExchange = "canteen.notifications"
	defaultRabbitMQQueue    = "canteen.push"
	defaultNATSSubject      = "canteen.notifications"
	natsQueueGroup          = "canteen-notifier"
	consumerPrefetch        = 16
)

// ConsumerParams holds dependencies for the broker consumer
type ConsumerParams struct {
	fx.In

	Lc         fx.Lifecycle
	Cfg        *config.Config
	Logger     *slog.Logger
	Dispatcher *handler.Dispatcher
}

// consumer pulls notification events from RabbitMQ or NATS. With any other
// provider events arrive through the push endpoint and Serve returns at once.
type consumer struct {
	cfg        *config.PubSubConfig
	logger     *slog.Logger
	dispatcher *handler.Dispatcher

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewConsumer creates the broker consumer delivery
func NewConsumer(params ConsumerParams) (delivery.Delivery, error) {
	ctx, cancel := context.WithCancel(context.Background())

	c := &consumer{
		cfg:        params.Cfg.PubSub,
		logger:     params.Logger,
		dispatcher: params.Dispatcher,
		ctx:        ctx,
		cancel:     cancel,
	}

	params.Lc.Append(fx.Hook{
		OnStop: c.stop,
	})

	return c, nil
}

// Serve consumes until the application stops.
func (c *consumer) Serve(ctx context.Context) error {
	if c.cfg == nil {
		return nil
	}

	c.wg.Add(1)
	defer c.wg.Done()

	switch c.cfg.Provider {
	case constants.PubSubProviderRabbitMQ:
		return c.consumeRabbitMQ()
	case constants.PubSubProviderNATS:
		return c.consumeNATS()
	default:
		return nil
	}
}

func (c *consumer) stop(ctx context.Context) error {
	c.cancel()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "consumer did not stop")
	}
}

func (c *consumer) consumeRabbitMQ() error {
	exchange := c.cfg.Exchange
	if exchange == "" {
		exchange = defaultRabbitMQExchange
	}

	conn, err := amqp.Dial(c.cfg.RabbitMQURL)
	if err != nil {
		return errors.Wrap(err, "failed to dial rabbitmq")
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return errors.Wrap(err, "failed to open rabbitmq channel")
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return errors.Wrapf(err, "failed to declare exchange %s", exchange)
	}
	queue, err := ch.QueueDeclare(defaultRabbitMQQueue, true, false, false, false, nil)
	if err != nil {
		return errors.Wrap(err, "failed to declare queue")
	}
	if err := ch.QueueBind(queue.Name, "notification.user.*", exchange, false, nil); err != nil {
		return errors.Wrap(err, "failed to bind queue")
	}
	if err := ch.Qos(consumerPrefetch, 0, false); err != nil {
		return errors.Wrap(err, "failed to set prefetch")
	}

	deliveries, err := ch.ConsumeWithContext(c.ctx, queue.Name, "", false, false, false, false, nil)
	if err != nil {
		return errors.Wrap(err, "failed to start consuming")
	}

	c.logger.Info("Consuming notification events from RabbitMQ", slog.String("queue", queue.Name))

	for {
		select {
		case <-c.ctx.Done():
			return nil
		case msg, ok := <-deliveries:
			if !ok {
				if c.ctx.Err() != nil {
					return nil
				}

				return errors.New("rabbitmq delivery channel closed")
			}

			attributes := make(map[string]string, len(msg.Headers))
			for key, value := range msg.Headers {
				if s, ok := value.(string); ok {
					attributes[key] = s
				}
			}

			switch err := c.handle(msg.Body, attributes); {
			case err == nil:
				_ = msg.Ack(false)
			case handler.IsRetryableError(err):
				_ = msg.Nack(false, true)
			default:
				_ = msg.Nack(false, false)
			}
		}
	}
}

func (c *consumer) consumeNATS() error {
	subject := c.cfg.Subject
	if subject == "" {
		subject = defaultNATSSubject
	}

	nc, err := nats.Connect(c.cfg.NATSURL, nats.Name("canteen-notifier"))
	if err != nil {
		return errors.Wrap(err, "failed to connect to nats")
	}
	defer nc.Close()

	// Core NATS has no redelivery, so failures are only logged.
	sub, err := nc.QueueSubscribe(subject+".*", natsQueueGroup, func(msg *nats.Msg) {
		attributes := make(map[string]string, len(msg.Header))
		for key := range msg.Header {
			attributes[key] = msg.Header.Get(key)
		}
		_ = c.handle(msg.Data, attributes)
	})
	if err != nil {
		return errors.Wrap(err, "failed to subscribe")
	}

	c.logger.Info("Consuming notification events from NATS", slog.String("subject", sub.Subject))

	<-c.ctx.Done()

	return errors.WithStack(nc.Drain())
}

func (c *consumer) handle(body []byte, attributes map[string]string) error {
	event, err := handler.DecodeEvent(body)
	if err != nil {
		c.logger.Error("[Worker] Failed to parse notification event", slog.Any("error", err))

		return err
	}

	requestID := attributes["request_id"]
	if requestID == "" {
		requestID = event.RequestID
	}
	ctx, reqLogger := deliverycontext.Scope(c.ctx, c.logger, deliverycontext.NormalizeRequestID(requestID))

	if err := c.dispatcher.Dispatch(ctx, event); err != nil {
		reqLogger.Error("[Worker] Failed to process notification",
			slog.String("notification_id", event.NotificationID),
			slog.Any("error", err),
			slog.Bool("retryable", handler.IsRetryableError(err)),
		)

		return err
	}

	return nil
}
