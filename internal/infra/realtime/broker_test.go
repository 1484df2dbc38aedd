package realtime

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"canteen/config"
	"canteen/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBroker(bufferSize int, source string) *Broker {
	cfg := &config.Config{Realtime: &config.RealtimeConfig{BufferSize: bufferSize, Source: source}}

	return NewBroker(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func notificationInsert(userID string) *entity.ChangeEvent {
	return &entity.ChangeEvent{
		Table:   entity.TableNotifications,
		Type:    entity.ChangeInsert,
		Columns: map[string]string{"user_id": userID},
	}
}

func TestBroker_DeliversMatchingEvents(t *testing.T) {
	broker := newTestBroker(4, config.RealtimeSourceApp)
	ctx := context.Background()

	sub, err := broker.Subscribe(ctx, entity.ChangeFilter{
		Table:  entity.TableNotifications,
		Column: "user_id",
		Value:  "alice",
		Mask:   entity.MaskInsert,
	})
	require.NoError(t, err)
	defer sub.Close()

	broker.Publish(ctx, notificationInsert("bob"), notificationInsert("alice"))

	select {
	case event := <-sub.Events():
		assert.Equal(t, "alice", event.Columns["user_id"])
	case <-time.After(time.Second):
		t.Fatal("expected an event")
	}

	select {
	case event := <-sub.Events():
		t.Fatalf("unexpected event %+v", event)
	default:
	}
}

func TestBroker_DropsLaggingSubscriber(t *testing.T) {
	broker := newTestBroker(1, config.RealtimeSourceApp)
	ctx := context.Background()

	sub, err := broker.Subscribe(ctx, entity.ChangeFilter{Table: entity.TableNotifications})
	require.NoError(t, err)

	broker.Publish(ctx, notificationInsert("a"))
	broker.Publish(ctx, notificationInsert("b"))

	var received int
	for range sub.Events() {
		received++
	}

	assert.Equal(t, 1, received)
	assert.ErrorIs(t, sub.Err(), ErrSubscriptionLagged)
	assert.Equal(t, 0, broker.SubscriberCount())
}

func TestBroker_ContextCancelReleasesSubscription(t *testing.T) {
	broker := newTestBroker(4, config.RealtimeSourceApp)
	ctx, cancel := context.WithCancel(context.Background())

	sub, err := broker.Subscribe(ctx, entity.ChangeFilter{Table: entity.TableOrders})
	require.NoError(t, err)
	assert.Equal(t, 1, broker.SubscriberCount())

	cancel()

	select {
	case _, ok := <-sub.Events():
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("subscription was not released")
	}
	require.NoError(t, sub.Err())
	assert.Equal(t, 0, broker.SubscriberCount())

	// Close after release is a no-op.
	sub.Close()
}

func TestBroker_InterruptEndsAllSubscriptions(t *testing.T) {
	broker := newTestBroker(4, config.RealtimeSourcePostgres)
	ctx := context.Background()

	first, err := broker.Subscribe(ctx, entity.ChangeFilter{Table: entity.TableOrders})
	require.NoError(t, err)
	second, err := broker.Subscribe(ctx, entity.ChangeFilter{Table: entity.TableNotifications})
	require.NoError(t, err)

	broker.Interrupt()

	assert.ErrorIs(t, first.Err(), ErrFeedInterrupted)
	assert.ErrorIs(t, second.Err(), ErrFeedInterrupted)
}

func TestBroker_PostgresSourceIgnoresAppPublish(t *testing.T) {
	broker := newTestBroker(4, config.RealtimeSourcePostgres)
	ctx := context.Background()

	sub, err := broker.Subscribe(ctx, entity.ChangeFilter{Table: entity.TableNotifications})
	require.NoError(t, err)
	defer sub.Close()

	broker.Publish(ctx, notificationInsert("a"))
	broker.Broadcast(ctx, notificationInsert("b"))

	event := <-sub.Events()
	assert.Equal(t, "b", event.Columns["user_id"])
	assert.Empty(t, sub.Events())
}

func TestBroker_RejectsUnknownTable(t *testing.T) {
	broker := newTestBroker(4, config.RealtimeSourceApp)

	_, err := broker.Subscribe(context.Background(), entity.ChangeFilter{Table: "profiles"})

	assert.ErrorIs(t, err, ErrUnknownTable)
}

func TestDecodeNotifyPayload(t *testing.T) {
	payload := `{"id":"0195f0c4-7a1e-7c3a-8b8e-2f5d1c9a4b10","table":"orders","type":"UPDATE",` +
		`"columns":{"id":"0195f0c4-7a1e-7c3a-8b8e-2f5d1c9a4b11","student_id":"s1","status":"ready"},` +
		`"record":{"status":"ready"},"committed_at":"2026-03-01T12:00:00.123456+00:00"}`

	event, err := DecodeNotifyPayload(payload)
	require.NoError(t, err)
	assert.Equal(t, entity.TableOrders, event.Table)
	assert.Equal(t, entity.ChangeUpdate, event.Type)
	assert.Equal(t, "ready", event.Columns["status"])
	assert.Equal(t, 2026, event.CommittedAt.Year())

	_, err = DecodeNotifyPayload(`{"columns":{}}`)
	assert.Error(t, err)

	_, err = DecodeNotifyPayload(`not json`)
	assert.Error(t, err)
}
