// Package realtime fans committed row changes out to live subscribers.
package realtime

import (
	"context"
	"log/slog"
	"sync"

	"canteen/config"
	"canteen/internal/domain/entity"
	"canteen/internal/domain/service"
	"canteen/internal/errors"
)

var (
	// ErrSubscriptionLagged ends a subscription whose buffer filled up. The
	// holder must re-fetch state and subscribe again.
	ErrSubscriptionLagged = errors.New("subscription lagged behind the change feed")
	// ErrFeedInterrupted ends every subscription when the upstream source reconnects.
	ErrFeedInterrupted = errors.New("change feed interrupted")
	// ErrUnknownTable is returned when subscribing to a table without change events.
	ErrUnknownTable = errors.New("table has no change feed")
)

var subscribableTables = map[string]bool{
	entity.TableOrders:        true,
	entity.TableOrderItems:    true,
	entity.TableNotifications: true,
}

// Broker is an in-process ChangeFeed. Publish never blocks: a subscriber that
// cannot keep up is dropped with ErrSubscriptionLagged.
type Broker struct {
	mu         sync.RWMutex
	subs       map[*subscription]struct{}
	bufferSize int
	appSource  bool
	logger     *slog.Logger
}

// NewBroker creates a broker. When the configured source is postgres, events
// published by the application are ignored and only the listener feeds it.
func NewBroker(cfg *config.Config, logger *slog.Logger) *Broker {
	bufferSize := 64
	appSource := true
	if cfg != nil && cfg.Realtime != nil {
		if cfg.Realtime.BufferSize > 0 {
			bufferSize = cfg.Realtime.BufferSize
		}
		appSource = cfg.Realtime.Source != config.RealtimeSourcePostgres
	}

	return &Broker{
		subs:       make(map[*subscription]struct{}),
		bufferSize: bufferSize,
		appSource:  appSource,
		logger:     logger,
	}
}

// NewChangeFeed exposes the broker as the domain ChangeFeed.
func NewChangeFeed(broker *Broker) service.ChangeFeed {
	return broker
}

// Publish delivers application-side events.
func (b *Broker) Publish(ctx context.Context, events ...*entity.ChangeEvent) {
	if !b.appSource {
		return
	}

	b.Broadcast(ctx, events...)
}

// Broadcast delivers events regardless of the configured source.
func (b *Broker) Broadcast(ctx context.Context, events ...*entity.ChangeEvent) {
	var lagged []*subscription

	b.mu.RLock()
	for sub := range b.subs {
		if !sub.offer(events) {
			lagged = append(lagged, sub)
		}
	}
	b.mu.RUnlock()

	for _, sub := range lagged {
		if b.logger != nil {
			b.logger.WarnContext(ctx, "Dropping lagging change feed subscriber",
				slog.String("table", sub.filter.Table),
				slog.String("column", sub.filter.Column),
			)
		}
		b.remove(sub, ErrSubscriptionLagged)
	}
}

// Subscribe registers a filter until ctx is done or the subscription is closed.
func (b *Broker) Subscribe(ctx context.Context, filter entity.ChangeFilter) (service.Subscription, error) {
	if !subscribableTables[filter.Table] {
		return nil, errors.Wrapf(ErrUnknownTable, "%q", filter.Table)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	sub := &subscription{
		broker: b,
		filter: filter,
		events: make(chan *entity.ChangeEvent, b.bufferSize),
		done:   make(chan struct{}),
	}

	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			b.remove(sub, nil)
		case <-sub.done:
		}
	}()

	return sub, nil
}

// Interrupt ends every subscription with ErrFeedInterrupted.
func (b *Broker) Interrupt() {
	b.mu.RLock()
	subs := make([]*subscription, 0, len(b.subs))
	for sub := range b.subs {
		subs = append(subs, sub)
	}
	b.mu.RUnlock()

	for _, sub := range subs {
		b.remove(sub, ErrFeedInterrupted)
	}
}

// SubscriberCount reports the number of live subscriptions.
func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.subs)
}

// remove closes the subscription once. Channels are only closed under the
// write lock, so Broadcast never sends on a closed channel.
func (b *Broker) remove(sub *subscription, reason error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[sub]; !ok {
		return
	}
	delete(b.subs, sub)

	sub.mu.Lock()
	sub.err = reason
	sub.mu.Unlock()

	close(sub.events)
	close(sub.done)
}

type subscription struct {
	broker *Broker
	filter entity.ChangeFilter
	events chan *entity.ChangeEvent
	done   chan struct{}

	mu  sync.Mutex
	err error
}

// offer queues the matching events and reports false when the buffer is full.
func (s *subscription) offer(events []*entity.ChangeEvent) bool {
	for _, event := range events {
		if !s.filter.Matches(event) {
			continue
		}

		select {
		case s.events <- event:
		default:
			return false
		}
	}

	return true
}

func (s *subscription) Events() <-chan *entity.ChangeEvent {
	return s.events
}

func (s *subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.err
}

func (s *subscription) Close() {
	s.broker.remove(s, nil)
}
