// Package memory is an in-process implementation of the persistence layer.
// Transactions are serialized and applied copy-on-write, so a failed
// transaction leaves no trace.
package memory

import (
	"context"
	"sync"
	"time"

	"canteen/internal/domain/entity"
	"canteen/internal/domain/repository"
	"canteen/internal/errors"

	"github.com/google/uuid"
)

type state struct {
	profiles      map[uuid.UUID]entity.Profile
	foodItems     map[uuid.UUID]entity.FoodItem
	orders        map[uuid.UUID]entity.Order
	orderItems    map[uuid.UUID][]entity.OrderItem
	notifications map[uuid.UUID]entity.Notification
}

func newState() *state {
	return &state{
		profiles:      make(map[uuid.UUID]entity.Profile),
		foodItems:     make(map[uuid.UUID]entity.FoodItem),
		orders:        make(map[uuid.UUID]entity.Order),
		orderItems:    make(map[uuid.UUID][]entity.OrderItem),
		notifications: make(map[uuid.UUID]entity.Notification),
	}
}

func (s *state) clone() *state {
	c := &state{
		profiles:      make(map[uuid.UUID]entity.Profile, len(s.profiles)),
		foodItems:     make(map[uuid.UUID]entity.FoodItem, len(s.foodItems)),
		orders:        make(map[uuid.UUID]entity.Order, len(s.orders)),
		orderItems:    make(map[uuid.UUID][]entity.OrderItem, len(s.orderItems)),
		notifications: make(map[uuid.UUID]entity.Notification, len(s.notifications)),
	}
	for k, v := range s.profiles {
		c.profiles[k] = v
	}
	for k, v := range s.foodItems {
		c.foodItems[k] = v
	}
	for k, v := range s.orders {
		if v.AssignedTo != nil {
			assigned := *v.AssignedTo
			v.AssignedTo = &assigned
		}
		c.orders[k] = v
	}
	for k, v := range s.orderItems {
		c.orderItems[k] = append([]entity.OrderItem(nil), v...)
	}
	for k, v := range s.notifications {
		c.notifications[k] = v
	}

	return c
}

// Store holds all tables behind one lock.
type Store struct {
	mu    sync.RWMutex
	data  *state
	now   func() time.Time
	reads *factory
}

// NewStore creates an empty store.
func NewStore() *Store {
	s := &Store{
		data: newState(),
		now:  time.Now,
	}
	s.reads = &factory{store: s}

	return s
}

// NewTransactionManager returns the store's transaction manager.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return store
}

// NewProfileRepository returns a non-transactional profile repository.
func NewProfileRepository(store *Store) repository.ProfileRepository {
	return store.reads.ProfileRepo()
}

// NewFoodItemRepository returns a non-transactional food item repository.
func NewFoodItemRepository(store *Store) repository.FoodItemRepository {
	return store.reads.FoodItemRepo()
}

// NewOrderRepository returns a non-transactional order repository.
func NewOrderRepository(store *Store) repository.OrderRepository {
	return store.reads.OrderRepo()
}

// NewNotificationRepository returns a non-transactional notification repository.
func NewNotificationRepository(store *Store) repository.NotificationRepository {
	return store.reads.NotificationRepo()
}

// Execute runs fn against a private copy of the store and publishes the copy
// only when fn succeeds.
func (s *Store) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.data.clone()
	if err := fn(&factory{tx: working, now: s.now}); err != nil {
		return err
	}
	s.data = working

	return nil
}

// factory binds repositories either to a transaction copy or to the live
// store. Live access takes the store lock per call.
type factory struct {
	store *Store
	tx    *state
	now   func() time.Time
}

func (f *factory) ProfileRepo() repository.ProfileRepository {
	return &profileRepository{f}
}

func (f *factory) FoodItemRepo() repository.FoodItemRepository {
	return &foodItemRepository{f}
}

func (f *factory) OrderRepo() repository.OrderRepository {
	return &orderRepository{f}
}

func (f *factory) NotificationRepo() repository.NotificationRepository {
	return &notificationRepository{f}
}

// read runs fn with a consistent view of the data.
func (f *factory) read(ctx context.Context, fn func(*state) error) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}
	if f.tx != nil {
		return fn(f.tx)
	}

	f.store.mu.RLock()
	defer f.store.mu.RUnlock()

	return fn(f.store.data)
}

// write runs fn on the transaction copy, or as a single-statement transaction.
func (f *factory) write(ctx context.Context, fn func(*state) error) error {
	if f.tx != nil {
		if err := ctx.Err(); err != nil {
			return errors.WithStack(err)
		}

		return fn(f.tx)
	}

	return f.store.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return fn(repoFactory.(*factory).tx)
	})
}

func (f *factory) clock() time.Time {
	if f.now != nil {
		return f.now()
	}
	if f.store != nil {
		return f.store.now()
	}

	return time.Now()
}
