package memory

import (
	"context"
	"slices"
	"sort"
	"strings"
	"time"

	"canteen/internal/domain/entity"
	domainerrors "canteen/internal/domain/errors"
	"canteen/internal/domain/repository"
	"canteen/internal/errors"

	"github.com/google/uuid"
)

func newID() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}

// --- Profiles ---

type profileRepository struct {
	f *factory
}

func (repo *profileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	if !profile.Role.IsValid() || profile.Email == "" || profile.FullName == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("invalid profile")
	}

	return repo.f.write(ctx, func(s *state) error {
		if _, ok := s.profiles[profile.ID]; ok {
			return errors.WithStack(repository.ErrProfileExists)
		}
		for _, existing := range s.profiles {
			if strings.EqualFold(existing.Email, profile.Email) {
				return errors.WithStack(repository.ErrProfileExists)
			}
		}

		if profile.CreatedAt.IsZero() {
			profile.CreatedAt = repo.f.clock()
		}
		s.profiles[profile.ID] = *profile

		return nil
	})
}

func (repo *profileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	var found *entity.Profile
	err := repo.f.read(ctx, func(s *state) error {
		profile, ok := s.profiles[id]
		if !ok {
			return repository.ErrProfileNotFound
		}
		found = &profile

		return nil
	})

	return found, err
}

func (repo *profileRepository) FindByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	var found *entity.Profile
	err := repo.f.read(ctx, func(s *state) error {
		for _, profile := range s.profiles {
			if strings.EqualFold(profile.Email, email) {
				found = &profile

				return nil
			}
		}

		return repository.ErrProfileNotFound
	})

	return found, err
}

// --- Food items ---

type foodItemRepository struct {
	f *factory
}

func (repo *foodItemRepository) Upsert(ctx context.Context, item *entity.FoodItem) error {
	if item.Price <= 0 {
		return domainerrors.ErrValidationFailed.WrapMessage("food item price must be positive")
	}

	return repo.f.write(ctx, func(s *state) error {
		for id, existing := range s.foodItems {
			if existing.Name == item.Name {
				item.ID = id
				item.CreatedAt = existing.CreatedAt
				s.foodItems[id] = *item

				return nil
			}
		}

		if item.ID == uuid.Nil {
			item.ID = newID()
		}
		if item.CreatedAt.IsZero() {
			item.CreatedAt = repo.f.clock()
		}
		s.foodItems[item.ID] = *item

		return nil
	})
}

func (repo *foodItemRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.FoodItem, error) {
	items := make(map[uuid.UUID]*entity.FoodItem, len(ids))
	err := repo.f.read(ctx, func(s *state) error {
		for _, id := range ids {
			if item, ok := s.foodItems[id]; ok {
				items[id] = &item
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (repo *foodItemRepository) ListAvailable(ctx context.Context) ([]*entity.FoodItem, error) {
	items := make([]*entity.FoodItem, 0)
	err := repo.f.read(ctx, func(s *state) error {
		for _, item := range s.foodItems {
			if item.IsAvailable {
				items = append(items, &item)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}

		return items[i].Name < items[j].Name
	})

	return items, nil
}

// --- Orders ---

type orderRepository struct {
	f *factory
}

func (repo *orderRepository) CreateOrder(ctx context.Context, order *entity.Order) error {
	return repo.f.write(ctx, func(s *state) error {
		if _, ok := s.profiles[order.StudentID]; !ok {
			return errors.Wrap(domainerrors.ErrProfileNotFound, "student profile missing")
		}
		for _, existing := range s.orders {
			if existing.OrderNumber == order.OrderNumber {
				return errors.WithStack(repository.ErrDuplicateOrderNumber)
			}
		}
		if !order.Status.IsValid() {
			return errors.WithStack(domainerrors.ErrInvalidStatus)
		}

		if order.ID == uuid.Nil {
			order.ID = newID()
		}
		now := repo.f.clock()
		if order.CreatedAt.IsZero() {
			order.CreatedAt = now
		}
		if order.UpdatedAt.IsZero() {
			order.UpdatedAt = order.CreatedAt
		}

		header := *order
		header.Items = nil
		s.orders[order.ID] = header

		return nil
	})
}

func (repo *orderRepository) CreateOrderItems(ctx context.Context, items []*entity.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	return repo.f.write(ctx, func(s *state) error {
		for _, item := range items {
			if _, ok := s.orders[item.OrderID]; !ok {
				return domainerrors.NewDatabaseExecuteError(errors.Errorf("order %s does not exist", item.OrderID), "failed to create order items")
			}
			if _, ok := s.foodItems[item.FoodItemID]; !ok {
				return errors.Wrap(domainerrors.ErrFoodItemNotFound, "order item references unknown food item")
			}
			if item.Quantity <= 0 {
				return errors.WithStack(domainerrors.ErrInvalidQuantity)
			}
		}

		for _, item := range items {
			if item.ID == uuid.Nil {
				item.ID = newID()
			}
			s.orderItems[item.OrderID] = append(s.orderItems[item.OrderID], *item)
		}

		return nil
	})
}

func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.OrderDetails, error) {
	var found *entity.OrderDetails
	err := repo.f.read(ctx, func(s *state) error {
		order, ok := s.orders[id]
		if !ok {
			return repository.ErrOrderNotFound
		}
		found = s.details(order)

		return nil
	})

	return found, err
}

func (repo *orderRepository) UpdateStatus(ctx context.Context, update repository.StatusUpdate) (bool, error) {
	if !update.To.IsValid() {
		return false, errors.WithStack(domainerrors.ErrInvalidStatus)
	}

	changed := false
	err := repo.f.write(ctx, func(s *state) error {
		order, ok := s.orders[update.OrderID]
		if !ok || order.Status != update.From {
			return nil
		}

		order.Status = update.To
		order.UpdatedAt = update.UpdatedAt
		if order.AssignedTo == nil && update.AssignedTo != nil {
			assigned := *update.AssignedTo
			order.AssignedTo = &assigned
		}
		s.orders[order.ID] = order
		changed = true

		return nil
	})

	return changed, err
}

func (repo *orderRepository) List(ctx context.Context, filter entity.OrderFilter) ([]*entity.OrderDetails, error) {
	orders := make([]*entity.OrderDetails, 0)
	err := repo.f.read(ctx, func(s *state) error {
		for _, order := range s.orders {
			if filter.StudentID != nil && order.StudentID != *filter.StudentID {
				continue
			}
			if len(filter.StatusIn) > 0 && !slices.Contains(filter.StatusIn, order.Status) {
				continue
			}
			orders = append(orders, s.details(order))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}

		return orders[i].ID.String() > orders[j].ID.String()
	})

	return orders, nil
}

// details joins the items, food names and student name onto the header.
func (s *state) details(order entity.Order) *entity.OrderDetails {
	lines := s.orderItems[order.ID]
	items := make([]*entity.OrderItem, 0, len(lines))
	for _, line := range lines {
		line.FoodItemName = s.foodItems[line.FoodItemID].Name
		items = append(items, &line)
	}
	order.Items = items
	if order.AssignedTo != nil {
		assigned := *order.AssignedTo
		order.AssignedTo = &assigned
	}

	return &entity.OrderDetails{
		Order:       &order,
		StudentName: s.profiles[order.StudentID].FullName,
	}
}

// --- Notifications ---

type notificationRepository struct {
	f *factory
}

func (repo *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	if notification.Message == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("missing required notification information")
	}

	return repo.f.write(ctx, func(s *state) error {
		if _, ok := s.profiles[notification.UserID]; !ok {
			return errors.Wrap(domainerrors.ErrProfileNotFound, "notification recipient missing")
		}

		if notification.ID == uuid.Nil {
			notification.ID = newID()
		}
		if notification.CreatedAt.IsZero() {
			notification.CreatedAt = repo.f.clock()
		}
		s.notifications[notification.ID] = *notification

		return nil
	})
}

func (repo *notificationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Notification, error) {
	notifications := make([]*entity.Notification, 0)
	err := repo.f.read(ctx, func(s *state) error {
		for _, notification := range s.notifications {
			if notification.UserID == userID {
				notifications = append(notifications, &notification)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(notifications, func(i, j int) bool {
		if !notifications[i].CreatedAt.Equal(notifications[j].CreatedAt) {
			return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
		}

		return notifications[i].ID.String() > notifications[j].ID.String()
	})

	return notifications, nil
}

func (repo *notificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	count := 0
	err := repo.f.read(ctx, func(s *state) error {
		for _, notification := range s.notifications {
			if notification.UserID == userID && !notification.IsRead {
				count++
			}
		}

		return nil
	})

	return count, err
}

func (repo *notificationRepository) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) (bool, error) {
	changed := false
	err := repo.f.write(ctx, func(s *state) error {
		notification, ok := s.notifications[notificationID]
		if !ok || notification.UserID != userID {
			return repository.ErrNotificationNotFound
		}
		if notification.IsRead {
			return nil
		}

		notification.IsRead = true
		s.notifications[notificationID] = notification
		changed = true

		return nil
	})

	return changed, err
}

func (repo *notificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID, cutoff time.Time) (int, error) {
	count := 0
	err := repo.f.write(ctx, func(s *state) error {
		for id, notification := range s.notifications {
			if notification.UserID != userID || notification.IsRead || notification.CreatedAt.After(cutoff) {
				continue
			}
			notification.IsRead = true
			s.notifications[id] = notification
			count++
		}

		return nil
	})

	return count, err
}
