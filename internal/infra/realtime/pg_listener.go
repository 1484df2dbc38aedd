package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"canteen/config"
	"canteen/internal/domain/entity"
	"canteen/internal/domain/lifecycle"
	"canteen/internal/errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/fx"
)

const (
	listenerMinBackoff = 500 * time.Millisecond
	listenerMaxBackoff = 30 * time.Second
)

// Listener turns Postgres NOTIFY payloads written by the change triggers into
// broker events.
type Listener struct {
	dsn     string
	channel string
	broker  *Broker
	logger  *slog.Logger
}

// ListenerParams holds dependencies for the listener, injected by Fx.
type ListenerParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Broker *Broker
	Logger *slog.Logger
}

// NewListener registers the LISTEN loop when the realtime source is postgres.
func NewListener(params ListenerParams) (*Listener, error) {
	cfg := params.Config.Realtime
	if cfg == nil || cfg.Source != config.RealtimeSourcePostgres {
		return nil, nil
	}
	if cfg.DSN == "" {
		return nil, errors.New("realtime.dsn is required when realtime.source is postgres")
	}

	listener := &Listener{
		dsn:     cfg.DSN,
		channel: cfg.Channel,
		broker:  params.Broker,
		logger:  params.Logger,
	}

	runCtx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancelStart := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancelStart()

			conn, err := listener.connect(ctx)
			if err != nil {
				cancel()

				return err
			}

			wg.Add(1)
			go func() {
				defer wg.Done()
				listener.run(runCtx, conn)
			}()

			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()

			done := make(chan struct{})
			go func() {
				wg.Wait()
				close(done)
			}()

			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return errors.Wrap(stopCtx.Err(), "change listener did not stop")
			}
		},
	})

	return listener, nil
}

func (l *Listener) connect(ctx context.Context) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, l.dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect change listener")
	}

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.channel}.Sanitize()); err != nil {
		_ = conn.Close(ctx)

		return nil, errors.Wrapf(err, "failed to listen on %s", l.channel)
	}

	l.logger.Info("Change listener connected", slog.String("channel", l.channel))

	return conn, nil
}

// run waits for notifications until ctx ends, reconnecting with backoff. A
// reconnect interrupts every subscription, since events may have been missed.
func (l *Listener) run(ctx context.Context, conn *pgx.Conn) {
	backoff := listenerMinBackoff

	for {
		err := l.drain(ctx, conn)
		_ = conn.Close(context.WithoutCancel(ctx))
		if ctx.Err() != nil {
			return
		}

		l.logger.Warn("Change listener disconnected", slog.Any("error", err))
		l.broker.Interrupt()

		for {
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}

			conn, err = l.connect(ctx)
			if err == nil {
				backoff = listenerMinBackoff

				break
			}

			l.logger.Warn("Change listener reconnect failed", slog.Any("error", err), slog.Duration("backoff", backoff))
			backoff = min(backoff*2, listenerMaxBackoff)
		}
	}
}

func (l *Listener) drain(ctx context.Context, conn *pgx.Conn) error {
	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		event, err := DecodeNotifyPayload(notification.Payload)
		if err != nil {
			l.logger.Warn("Discarding malformed change notification", slog.Any("error", err))

			continue
		}

		l.broker.Broadcast(ctx, event)
	}
}

// DecodeNotifyPayload parses the JSON written by canteen_notify_change().
func DecodeNotifyPayload(payload string) (*entity.ChangeEvent, error) {
	var event entity.ChangeEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return nil, errors.Wrap(err, "failed to decode change payload")
	}
	if event.Table == "" || event.Type == "" {
		return nil, errors.New("change payload misses table or type")
	}
	if event.Columns == nil {
		event.Columns = map[string]string{}
	}

	return &event, nil
}
