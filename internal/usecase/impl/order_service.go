// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"slices"
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

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager      repository.TransactionManager
	changeFeed     service.ChangeFeed
	publisher      service.EventPublisher
	qrCodeService  service.QRCodeService
	metrics        service.Metrics
	logger         *slog.Logger
	now            func() time.Time
	newOrderNumber OrderNumberGenerator
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	ChangeFeed    service.ChangeFeed
	Publisher     service.EventPublisher
	QRCodeService service.QRCodeService
	Metrics       service.Metrics
	Logger        *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager:      params.TxManager,
		changeFeed:     params.ChangeFeed,
		publisher:      params.Publisher,
		qrCodeService:  params.QRCodeService,
		metrics:        params.Metrics,
		logger:         params.Logger,
		now:            time.Now,
		newOrderNumber: NewOrderNumber,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerFrom(ctx, srv.logger)
}

// PlaceOrder validates the cart, snapshots prices and writes the order, its
// lines and the placement notification atomically. A unique index conflict on
// the order number is retried with a fresh number.
func (srv *orderService) PlaceOrder(ctx context.Context, actor entity.Actor, input *usecase.PlaceOrderInput) (*entity.OrderDetails, error) {
	switch actor.Role {
	case entity.RoleStudent:
	case entity.RoleAdmin, entity.RoleCanteenStaff:
		return nil, errors.Wrap(domainerrors.ErrForbidden, "only students place orders")
	default:
		return nil, errors.Wrap(domainerrors.ErrForbidden, "unknown role")
	}

	lines, err := mergeOrderLines(input)
	if err != nil {
		return nil, err
	}

	var (
		placed       *entity.OrderDetails
		notification *entity.Notification
	)
	for attempt := 1; ; attempt++ {
		placed, notification, err = srv.placeOnce(ctx, actor.UserID, lines)
		if err == nil {
			break
		}
		if !errors.Is(err, repository.ErrDuplicateOrderNumber) {
			return nil, errors.Wrap(err, "failed to place order")
		}
		if attempt >= maxOrderNumberAttempts {
			return nil, errors.Wrapf(domainerrors.ErrOrderNumberExhausted, "%d attempts", attempt)
		}

		srv.log(ctx).Warn("Order number collision, regenerating", slog.Int("attempt", attempt))
	}

	srv.log(ctx).Info("Order placed",
		slog.String("order_id", placed.ID.String()),
		slog.String("order_number", placed.OrderNumber),
		slog.Float64("total_amount", placed.TotalAmount),
	)

	now := srv.now()
	events := make([]*entity.ChangeEvent, 0, len(placed.Items)+2)
	events = append(events, orderChangeEvent(entity.ChangeInsert, placed.Order, now))
	events = append(events, orderItemChangeEvents(placed.Items, now)...)
	events = append(events, notificationChangeEvent(entity.ChangeInsert, notification, now))
	srv.changeFeed.Publish(ctx, events...)

	srv.metrics.OrderPlaced(placed.TotalAmount)
	srv.metrics.NotificationsCreated(1)
	srv.publishNotification(ctx, notification, placed.Order)

	return placed, nil
}

func (srv *orderService) placeOnce(ctx context.Context, studentID uuid.UUID, lines []usecase.OrderLineInput) (*entity.OrderDetails, *entity.Notification, error) {
	var (
		placed       *entity.OrderDetails
		notification *entity.Notification
	)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		// 1. The student must have a profile
		student, err := repoFactory.ProfileRepo().FindByID(ctx, studentID)
		if err != nil {
			if errors.Is(err, repository.ErrProfileNotFound) {
				return errors.Wrap(domainerrors.ErrProfileNotFound, "student profile not found")
			}

			return errors.Wrap(err, "failed to find student profile")
		}

		// 2. Snapshot catalog prices
		ids := make([]uuid.UUID, 0, len(lines))
		for _, line := range lines {
			ids = append(ids, line.FoodItemID)
		}
		foods, err := repoFactory.FoodItemRepo().FindByIDs(ctx, ids)
		if err != nil {
			return errors.Wrap(err, "failed to load food items")
		}

		now := srv.now().UTC()
		order := &entity.Order{
			ID:          uuid.Must(uuid.NewV7()),
			OrderNumber: srv.newOrderNumber(now),
			StudentID:   student.ID,
			Status:      entity.OrderStatusPreparing,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		items := make([]*entity.OrderItem, 0, len(lines))
		for _, line := range lines {
			food, ok := foods[line.FoodItemID]
			if !ok {
				return errors.Wrapf(domainerrors.ErrFoodItemNotFound, "food item %s", line.FoodItemID)
			}
			if !food.IsAvailable {
				return errors.Wrapf(domainerrors.ErrFoodItemUnavailable, "%s", food.Name)
			}

			items = append(items, &entity.OrderItem{
				ID:           uuid.Must(uuid.NewV7()),
				OrderID:      order.ID,
				FoodItemID:   food.ID,
				FoodItemName: food.Name,
				Quantity:     line.Quantity,
				Price:        food.Price,
			})
		}
		order.TotalAmount = entity.TotalWithTax(items)
		if order.TotalAmount > entity.MaxOrderAmount {
			return errors.Wrapf(domainerrors.ErrValidationFailed, "order total %.2f exceeds %.2f", order.TotalAmount, entity.MaxOrderAmount)
		}

		// 3. Header, lines and notification share the transaction
		orderRepo := repoFactory.OrderRepo()
		if err := orderRepo.CreateOrder(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}
		if err := orderRepo.CreateOrderItems(ctx, items); err != nil {
			return errors.Wrap(err, "failed to create order items")
		}

		notification = entity.NewOrderPlacedNotification(order)
		if err := repoFactory.NotificationRepo().Create(ctx, notification); err != nil {
			return errors.Wrap(err, "failed to create order notification")
		}

		order.Items = items
		placed = &entity.OrderDetails{Order: order, StudentName: student.FullName}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return placed, notification, nil
}

// mergeOrderLines rejects empty carts and quantities outside
// 1..MaxLineQuantity, and folds repeated food items into one line keeping
// first-seen order. The cap applies to the folded quantity too.
func mergeOrderLines(input *usecase.PlaceOrderInput) ([]usecase.OrderLineInput, error) {
	if input == nil || len(input.Lines) == 0 {
		return nil, errors.WithStack(domainerrors.ErrEmptyCart)
	}

	merged := make([]usecase.OrderLineInput, 0, len(input.Lines))
	index := make(map[uuid.UUID]int, len(input.Lines))
	for _, line := range input.Lines {
		if line.Quantity <= 0 || line.Quantity > entity.MaxLineQuantity {
			return nil, errors.Wrapf(domainerrors.ErrInvalidQuantity, "food item %s has quantity %d", line.FoodItemID, line.Quantity)
		}
		if i, ok := index[line.FoodItemID]; ok {
			// Both operands are capped, so the sum cannot overflow.
			if merged[i].Quantity+line.Quantity > entity.MaxLineQuantity {
				return nil, errors.Wrapf(domainerrors.ErrInvalidQuantity, "food item %s exceeds %d in total", line.FoodItemID, entity.MaxLineQuantity)
			}
			merged[i].Quantity += line.Quantity

			continue
		}
		index[line.FoodItemID] = len(merged)
		merged = append(merged, line)
	}

	return merged, nil
}

// AdvanceStatus moves the order one step forward with a conditional write and
// records the student notification in the same transaction.
func (srv *orderService) AdvanceStatus(ctx context.Context, actor entity.Actor, orderID uuid.UUID, status entity.OrderStatus) (*entity.OrderDetails, error) {
	if err := requireOrderManager(actor); err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, errors.Wrapf(domainerrors.ErrInvalidStatus, "%q", status)
	}

	var (
		updated      *entity.OrderDetails
		notification *entity.Notification
	)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		// 1. Check the requested status is the immediate successor
		current, err := orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return mapOrderLookupError(err)
		}
		if !current.Status.CanAdvanceTo(status) {
			return errors.Wrapf(domainerrors.ErrInvalidTransition, "%s -> %s", current.Status, status)
		}

		// 2. Compare-and-set on the status read above
		now := srv.now().UTC()
		assignee := actor.UserID
		changed, err := orderRepo.UpdateStatus(ctx, repository.StatusUpdate{
			OrderID:    orderID,
			From:       current.Status,
			To:         status,
			AssignedTo: &assignee,
			UpdatedAt:  now,
		})
		if err != nil {
			return errors.Wrap(err, "failed to update order status")
		}
		if !changed {
			if _, err := orderRepo.FindByID(ctx, orderID); err != nil {
				return mapOrderLookupError(err)
			}

			return errors.Wrapf(domainerrors.ErrInvalidTransition, "order %s was changed concurrently", orderID)
		}

		current.Status = status
		current.UpdatedAt = now
		if current.AssignedTo == nil {
			current.AssignedTo = &assignee
		}

		// 3. Exactly one notification per transition
		notification = entity.NewOrderStatusNotification(current.Order, now)
		if err := repoFactory.NotificationRepo().Create(ctx, notification); err != nil {
			return errors.Wrap(err, "failed to create status notification")
		}

		updated = current

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to advance order status")
	}

	srv.log(ctx).Info("Order status advanced",
		slog.String("order_id", orderID.String()),
		slog.String("status", status.String()),
		slog.String("actor_id", actor.UserID.String()),
	)

	now := srv.now()
	srv.changeFeed.Publish(ctx,
		orderChangeEvent(entity.ChangeUpdate, updated.Order, now),
		notificationChangeEvent(entity.ChangeInsert, notification, now),
	)

	srv.metrics.OrderAdvanced(status)
	srv.metrics.NotificationsCreated(1)
	srv.publishNotification(ctx, notification, updated.Order)

	return updated, nil
}

// ListOrders scopes the listing by role: students see their own orders,
// staff the active queue and admins everything.
func (srv *orderService) ListOrders(ctx context.Context, actor entity.Actor, statusIn []entity.OrderStatus) ([]*entity.OrderDetails, error) {
	for _, status := range statusIn {
		if !status.IsValid() {
			return nil, errors.Wrapf(domainerrors.ErrInvalidStatus, "%q", status)
		}
	}

	var filter entity.OrderFilter
	switch actor.Role {
	case entity.RoleStudent:
		studentID := actor.UserID
		filter.StudentID = &studentID
		filter.StatusIn = statusIn
	case entity.RoleCanteenStaff:
		filter.StatusIn = entity.ActiveOrderStatuses
		if len(statusIn) > 0 {
			filter.StatusIn = intersectStatuses(entity.ActiveOrderStatuses, statusIn)
			if len(filter.StatusIn) == 0 {
				return []*entity.OrderDetails{}, nil
			}
		}
	case entity.RoleAdmin:
		filter.StatusIn = statusIn
	default:
		return nil, errors.Wrap(domainerrors.ErrForbidden, "unknown role")
	}

	var orders []*entity.OrderDetails
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.OrderRepo().List(ctx, filter)
		if err != nil {
			return errors.Wrap(err, "failed to list orders")
		}
		orders = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

func intersectStatuses(allowed, requested []entity.OrderStatus) []entity.OrderStatus {
	result := make([]entity.OrderStatus, 0, len(allowed))
	for _, status := range allowed {
		if slices.Contains(requested, status) {
			result = append(result, status)
		}
	}

	return result
}

// GetOrder returns the order if the actor may see it. Another student's order
// is reported as not found.
func (srv *orderService) GetOrder(ctx context.Context, actor entity.Actor, orderID uuid.UUID) (*entity.OrderDetails, error) {
	var order *entity.OrderDetails
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return mapOrderLookupError(err)
		}
		order = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get order")
	}

	switch actor.Role {
	case entity.RoleStudent:
		if order.StudentID != actor.UserID {
			return nil, errors.Wrap(domainerrors.ErrOrderNotFound, "order belongs to another student")
		}
	case entity.RoleAdmin, entity.RoleCanteenStaff:
	default:
		return nil, errors.Wrap(domainerrors.ErrForbidden, "unknown role")
	}

	return order, nil
}

// PickupQR renders the pickup code for an undelivered order of the student.
func (srv *orderService) PickupQR(ctx context.Context, actor entity.Actor, orderID uuid.UUID) ([]byte, error) {
	if actor.Role != entity.RoleStudent {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "only the ordering student has a pickup code")
	}

	order, err := srv.GetOrder(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == entity.OrderStatusDelivered {
		return nil, errors.Wrap(domainerrors.ErrInvalidTransition, "order already delivered")
	}

	png, err := srv.qrCodeService.GeneratePickupQR(service.PickupCode{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate pickup code")
	}

	return png, nil
}

// ConfirmPickup resolves a scanned pickup code and delivers the order.
func (srv *orderService) ConfirmPickup(ctx context.Context, actor entity.Actor, qrData string) (*entity.OrderDetails, error) {
	if err := requireOrderManager(actor); err != nil {
		return nil, err
	}

	code, err := srv.qrCodeService.ParsePickupQR(qrData)
	if err != nil {
		return nil, err
	}

	order, err := srv.GetOrder(ctx, actor, code.OrderID)
	if err != nil {
		return nil, err
	}
	if order.OrderNumber != code.OrderNumber {
		return nil, domainerrors.ErrInvalidQRCode.WrapMessage("order number does not match")
	}

	return srv.AdvanceStatus(ctx, actor, order.ID, entity.OrderStatusDelivered)
}

func (srv *orderService) publishNotification(ctx context.Context, notification *entity.Notification, order *entity.Order) {
	event := notificationEvent(deliverycontext.RequestIDFrom(ctx), notification, order)
	if err := srv.publisher.PublishNotificationEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish notification event",
			slog.String("notification_id", event.NotificationID),
			slog.Any("error", err),
		)
	}
}

func requireOrderManager(actor entity.Actor) error {
	switch actor.Role {
	case entity.RoleAdmin, entity.RoleCanteenStaff:
		return nil
	case entity.RoleStudent:
		return errors.Wrap(domainerrors.ErrForbidden, "students cannot change order status")
	default:
		return errors.Wrap(domainerrors.ErrForbidden, "unknown role")
	}
}

func mapOrderLookupError(err error) error {
	if errors.Is(err, repository.ErrOrderNotFound) {
		return errors.Wrap(domainerrors.ErrOrderNotFound, "order not found")
	}

	return errors.Wrap(err, "failed to find order")
}
