package service

import (
	"context"

	"canteen/internal/domain/entity"
)

// Subscription is a live stream of change events for one filter. Events is
// closed when the subscription ends; Err then explains why (nil after Close).
type Subscription interface {
	Events() <-chan *entity.ChangeEvent
	Err() error
	Close()
}

// ChangeFeed fans committed row changes out to subscribers.
type ChangeFeed interface {
	// Publish delivers events to matching subscribers. It never blocks on a slow subscriber.
	Publish(ctx context.Context, events ...*entity.ChangeEvent)

	// Subscribe registers a filter. The subscription ends when ctx is done or Close is called.
	Subscribe(ctx context.Context, filter entity.ChangeFilter) (Subscription, error)
}
