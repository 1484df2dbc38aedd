package impl

import (
	"context"
	"io"
	"log/slog"
	"math"
	"sync"
	"testing"
	"time"

	"canteen/config"
	"canteen/internal/domain/entity"
	domainerrors "canteen/internal/domain/errors"
	"canteen/internal/infra/metrics"
	"canteen/internal/infra/persistence/memory"
	"canteen/internal/infra/qrcode"
	"canteen/internal/infra/realtime"
	mockSvc "canteen/internal/mocks/service"
	"canteen/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// canteenScenario wires the use cases onto the in-process store and broker.
type canteenScenario struct {
	store         *memory.Store
	broker        *realtime.Broker
	orders        usecase.OrderUsecase
	notifications usecase.NotificationUsecase
	menu          usecase.MenuUsecase
	profiles      usecase.ProfileUsecase

	student entity.Actor
	staff   entity.Actor
	admin   entity.Actor
}

func newCanteenScenario(t *testing.T) *canteenScenario {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore()
	txManager := memory.NewTransactionManager(store)
	broker := realtime.NewBroker(&config.Config{Realtime: &config.RealtimeConfig{Source: config.RealtimeSourceApp, BufferSize: 32}}, logger)

	publisher := mockSvc.NewMockEventPublisher(t)
	publisher.EXPECT().PublishNotificationEvent(mock.Anything, mock.Anything).Return(nil).Maybe()

	s := &canteenScenario{
		store:  store,
		broker: broker,
		orders: NewOrderService(OrderServiceParams{
			TxManager:     txManager,
			ChangeFeed:    realtime.NewChangeFeed(broker),
			Publisher:     publisher,
			QRCodeService: qrcode.NewQRCodeService(128, "M"),
			Metrics:       metrics.Noop{},
			Logger:        logger,
		}),
		notifications: NewNotificationService(NotificationServiceParams{
			TxManager:  txManager,
			ChangeFeed: realtime.NewChangeFeed(broker),
			Metrics:    metrics.Noop{},
			Logger:     logger,
		}),
		menu:     NewMenuService(txManager, logger),
		profiles: NewProfileService(txManager, logger),
	}

	ctx := context.Background()
	for _, p := range []struct {
		actor *entity.Actor
		email string
		role  entity.Role
	}{
		{&s.student, "student@campus.test", entity.RoleStudent},
		{&s.staff, "staff@campus.test", entity.RoleCanteenStaff},
		{&s.admin, "admin@campus.test", entity.RoleAdmin},
	} {
		profile, err := s.profiles.CreateProfile(ctx, &usecase.CreateProfileInput{
			Email:    p.email,
			FullName: p.role.String() + " user",
			Role:     p.role,
		})
		require.NoError(t, err)
		*p.actor = entity.Actor{UserID: profile.ID, Role: profile.Role}
	}

	return s
}

func (s *canteenScenario) seedMenu(t *testing.T, items ...*entity.FoodItem) {
	t.Helper()

	for _, item := range items {
		item.IsAvailable = true
		if item.Category == "" {
			item.Category = "mains"
		}
	}
	require.NoError(t, s.menu.UpsertItems(context.Background(), items))
}

func (s *canteenScenario) placeOrder(t *testing.T, lines ...usecase.OrderLineInput) *entity.OrderDetails {
	t.Helper()

	order, err := s.orders.PlaceOrder(context.Background(), s.student, &usecase.PlaceOrderInput{Lines: lines})
	require.NoError(t, err)

	return order
}

func TestScenario_TotalIncludesTax(t *testing.T) {
	s := newCanteenScenario(t)
	burger := &entity.FoodItem{Name: "Burger", Price: 100}
	juice := &entity.FoodItem{Name: "Juice", Price: 50, Category: "drinks"}
	s.seedMenu(t, burger, juice)

	order := s.placeOrder(t,
		usecase.OrderLineInput{FoodItemID: burger.ID, Quantity: 2},
		usecase.OrderLineInput{FoodItemID: juice.ID, Quantity: 1},
	)

	assert.InDelta(t, 262.50, order.TotalAmount, 1e-9)

	var subtotal float64
	for _, item := range order.Items {
		subtotal += item.Price * float64(item.Quantity)
	}
	assert.InDelta(t, 250.0, subtotal, 1e-9)
	assert.InDelta(t, entity.RoundMoney(subtotal*(1+entity.TaxRate)), order.TotalAmount, 1e-9)

	stored, err := s.orders.GetOrder(context.Background(), s.student, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.TotalAmount, stored.TotalAmount)
	require.Len(t, stored.Items, 2)
	assert.Equal(t, "student user", stored.StudentName)
}

func TestScenario_TotalMatchesSubtotalForAnyCart(t *testing.T) {
	s := newCanteenScenario(t)
	prices := []float64{0.99, 12.49, 3.33, 48, 7.05}
	items := make([]*entity.FoodItem, 0, len(prices))
	for i, price := range prices {
		items = append(items, &entity.FoodItem{Name: "Item " + string(rune('A'+i)), Price: price})
	}
	s.seedMenu(t, items...)

	for qty := 1; qty <= 5; qty++ {
		lines := make([]usecase.OrderLineInput, 0, len(items))
		for i, item := range items[:qty] {
			lines = append(lines, usecase.OrderLineInput{FoodItemID: item.ID, Quantity: qty + i})
		}

		order := s.placeOrder(t, lines...)

		var subtotal float64
		for _, item := range order.Items {
			subtotal += item.LineTotal()
		}
		subtotal = entity.RoundMoney(subtotal)
		assert.InDelta(t, math.Round(subtotal*1.05*100)/100, order.TotalAmount, 1e-9)
	}
}

func TestScenario_StaffAdvanceNotifiesStudent(t *testing.T) {
	s := newCanteenScenario(t)
	ctx := context.Background()
	rice := &entity.FoodItem{Name: "Rice", Price: 60}
	s.seedMenu(t, rice)

	order := s.placeOrder(t, usecase.OrderLineInput{FoodItemID: rice.ID, Quantity: 1})
	assert.Equal(t, entity.OrderStatusPreparing, order.Status)

	before, err := s.notifications.UnreadCount(ctx, s.student.UserID)
	require.NoError(t, err)

	sub, err := s.broker.Subscribe(ctx, entity.ChangeFilter{
		Table:  entity.TableNotifications,
		Column: "user_id",
		Value:  s.student.UserID.String(),
		Mask:   entity.MaskInsert,
	})
	require.NoError(t, err)
	defer sub.Close()

	updated, err := s.orders.AdvanceStatus(ctx, s.staff, order.ID, entity.OrderStatusReady)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusReady, updated.Status)
	require.NotNil(t, updated.AssignedTo)
	assert.Equal(t, s.staff.UserID, *updated.AssignedTo)

	after, err := s.notifications.UnreadCount(ctx, s.student.UserID)
	require.NoError(t, err)
	assert.Equal(t, before+1, after)

	list, err := s.notifications.ListNotifications(ctx, s.student.UserID)
	require.NoError(t, err)
	require.NotEmpty(t, list)
	assert.Contains(t, list[0].Message, "ready for pickup")

	select {
	case event := <-sub.Events():
		assert.Equal(t, entity.ChangeInsert, event.Type)
		assert.Equal(t, s.student.UserID.String(), event.Columns["user_id"])
	case <-time.After(time.Second):
		t.Fatal("expected a notification insert event")
	}
}

func TestScenario_StudentCannotAdvance(t *testing.T) {
	s := newCanteenScenario(t)
	ctx := context.Background()
	rice := &entity.FoodItem{Name: "Rice", Price: 60}
	s.seedMenu(t, rice)
	order := s.placeOrder(t, usecase.OrderLineInput{FoodItemID: rice.ID, Quantity: 1})

	_, err := s.orders.AdvanceStatus(ctx, s.student, order.ID, entity.OrderStatusReady)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	stored, err := s.orders.GetOrder(ctx, s.admin, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPreparing, stored.Status)
}

func TestScenario_NoSkippingAndNoRepeat(t *testing.T) {
	s := newCanteenScenario(t)
	ctx := context.Background()
	rice := &entity.FoodItem{Name: "Rice", Price: 60}
	s.seedMenu(t, rice)
	order := s.placeOrder(t, usecase.OrderLineInput{FoodItemID: rice.ID, Quantity: 1})

	_, err := s.orders.AdvanceStatus(ctx, s.admin, order.ID, entity.OrderStatusDelivered)
	require.ErrorIs(t, err, domainerrors.ErrInvalidTransition)

	stored, err := s.orders.GetOrder(ctx, s.admin, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPreparing, stored.Status)

	_, err = s.orders.AdvanceStatus(ctx, s.staff, order.ID, entity.OrderStatusReady)
	require.NoError(t, err)

	unread, err := s.notifications.UnreadCount(ctx, s.student.UserID)
	require.NoError(t, err)

	_, err = s.orders.AdvanceStatus(ctx, s.staff, order.ID, entity.OrderStatusReady)
	require.ErrorIs(t, err, domainerrors.ErrInvalidTransition)

	stored, err = s.orders.GetOrder(ctx, s.admin, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusReady, stored.Status)

	again, err := s.notifications.UnreadCount(ctx, s.student.UserID)
	require.NoError(t, err)
	assert.Equal(t, unread, again, "a rejected transition writes no notification")
}

func TestScenario_ConcurrentAdvanceHasOneWinner(t *testing.T) {
	s := newCanteenScenario(t)
	ctx := context.Background()
	rice := &entity.FoodItem{Name: "Rice", Price: 60}
	s.seedMenu(t, rice)
	order := s.placeOrder(t, usecase.OrderLineInput{FoodItemID: rice.ID, Quantity: 1})

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.orders.AdvanceStatus(ctx, s.staff, order.ID, entity.OrderStatusReady)
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()

				return
			}
			assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)

	list, err := s.notifications.ListNotifications(ctx, s.student.UserID)
	require.NoError(t, err)
	assert.Len(t, list, 2, "one placement and one transition notification")
}

func TestScenario_MarkAllReadClearsBadge(t *testing.T) {
	s := newCanteenScenario(t)
	ctx := context.Background()
	rice := &entity.FoodItem{Name: "Rice", Price: 60}
	s.seedMenu(t, rice)

	for range 3 {
		order := s.placeOrder(t, usecase.OrderLineInput{FoodItemID: rice.ID, Quantity: 1})
		_, err := s.orders.AdvanceStatus(ctx, s.staff, order.ID, entity.OrderStatusReady)
		require.NoError(t, err)
	}

	flipped, err := s.notifications.MarkAllRead(ctx, s.student.UserID)
	require.NoError(t, err)
	assert.Equal(t, 6, flipped)

	unread, err := s.notifications.UnreadCount(ctx, s.student.UserID)
	require.NoError(t, err)
	assert.Equal(t, 0, unread)

	flipped, err = s.notifications.MarkAllRead(ctx, s.student.UserID)
	require.NoError(t, err)
	assert.Equal(t, 0, flipped)
}

func TestScenario_MarkReadIsIdempotent(t *testing.T) {
	s := newCanteenScenario(t)
	ctx := context.Background()
	rice := &entity.FoodItem{Name: "Rice", Price: 60}
	s.seedMenu(t, rice)
	s.placeOrder(t, usecase.OrderLineInput{FoodItemID: rice.ID, Quantity: 1})
	s.placeOrder(t, usecase.OrderLineInput{FoodItemID: rice.ID, Quantity: 2})

	list, err := s.notifications.ListNotifications(ctx, s.student.UserID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NoError(t, s.notifications.MarkRead(ctx, s.student.UserID, list[0].ID))
	unread, err := s.notifications.UnreadCount(ctx, s.student.UserID)
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	require.NoError(t, s.notifications.MarkRead(ctx, s.student.UserID, list[0].ID))
	again, err := s.notifications.UnreadCount(ctx, s.student.UserID)
	require.NoError(t, err)
	assert.Equal(t, unread, again)

	err = s.notifications.MarkRead(ctx, s.staff.UserID, list[1].ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotificationNotFound)
}

func TestScenario_ListOrdersIsStable(t *testing.T) {
	s := newCanteenScenario(t)
	ctx := context.Background()
	rice := &entity.FoodItem{Name: "Rice", Price: 60}
	s.seedMenu(t, rice)
	for range 4 {
		s.placeOrder(t, usecase.OrderLineInput{FoodItemID: rice.ID, Quantity: 1})
	}

	for _, actor := range []entity.Actor{s.student, s.staff, s.admin} {
		first, err := s.orders.ListOrders(ctx, actor, nil)
		require.NoError(t, err)
		second, err := s.orders.ListOrders(ctx, actor, nil)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Len(t, first, 4)
	}
}

func TestScenario_ConcurrentPlacementsGetDistinctNumbers(t *testing.T) {
	s := newCanteenScenario(t)
	rice := &entity.FoodItem{Name: "Rice", Price: 60}
	s.seedMenu(t, rice)

	const workers = 16
	numbers := make(chan string, workers)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			order, err := s.orders.PlaceOrder(context.Background(), s.student, &usecase.PlaceOrderInput{
				Lines: []usecase.OrderLineInput{{FoodItemID: rice.ID, Quantity: 1}},
			})
			if assert.NoError(t, err) {
				numbers <- order.OrderNumber
			}
		}()
	}
	wg.Wait()
	close(numbers)

	seen := make(map[string]bool)
	for number := range numbers {
		assert.False(t, seen[number], "duplicate order number %s", number)
		seen[number] = true
	}
	assert.Len(t, seen, workers)
}

func TestScenario_OrderNumberCollisionIsRetried(t *testing.T) {
	s := newCanteenScenario(t)
	rice := &entity.FoodItem{Name: "Rice", Price: 60}
	s.seedMenu(t, rice)

	numbers := []string{"ORD-20260301-AAAAAAAA", "ORD-20260301-AAAAAAAA", "ORD-20260301-BBBBBBBB"}
	srv := s.orders.(*orderService)
	srv.newOrderNumber = func(time.Time) string {
		next := numbers[0]
		numbers = numbers[1:]

		return next
	}

	first := s.placeOrder(t, usecase.OrderLineInput{FoodItemID: rice.ID, Quantity: 1})
	second := s.placeOrder(t, usecase.OrderLineInput{FoodItemID: rice.ID, Quantity: 1})

	assert.Equal(t, "ORD-20260301-AAAAAAAA", first.OrderNumber)
	assert.Equal(t, "ORD-20260301-BBBBBBBB", second.OrderNumber)

	list, err := s.notifications.ListNotifications(context.Background(), s.student.UserID)
	require.NoError(t, err)
	assert.Len(t, list, 2, "the failed attempt leaves no notification behind")
}

func TestScenario_PickupFlow(t *testing.T) {
	s := newCanteenScenario(t)
	ctx := context.Background()
	rice := &entity.FoodItem{Name: "Rice", Price: 60}
	s.seedMenu(t, rice)
	order := s.placeOrder(t, usecase.OrderLineInput{FoodItemID: rice.ID, Quantity: 1})

	png, err := s.orders.PickupQR(ctx, s.student, order.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, png)

	payload := `{"order_id":"` + order.ID.String() + `","order_number":"` + order.OrderNumber + `","type":"pickup"}`

	// Still preparing: pickup would skip ready.
	_, err = s.orders.ConfirmPickup(ctx, s.staff, payload)
	require.ErrorIs(t, err, domainerrors.ErrInvalidTransition)

	_, err = s.orders.AdvanceStatus(ctx, s.staff, order.ID, entity.OrderStatusReady)
	require.NoError(t, err)

	delivered, err := s.orders.ConfirmPickup(ctx, s.staff, payload)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivered, delivered.Status)

	_, err = s.orders.PickupQR(ctx, s.student, order.ID)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)

	_, err = s.orders.ConfirmPickup(ctx, s.staff, `{"order_id":"`+uuid.NewString()+`","order_number":"x","type":"pickup"}`)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestScenario_MenuGroupsByCategory(t *testing.T) {
	s := newCanteenScenario(t)
	s.seedMenu(t,
		&entity.FoodItem{Name: "Tea", Price: 20, Category: "drinks"},
		&entity.FoodItem{Name: "Noodles", Price: 70, Category: "mains"},
		&entity.FoodItem{Name: "Coffee", Price: 35, Category: "drinks"},
	)

	menu, err := s.menu.ListMenu(context.Background())
	require.NoError(t, err)
	require.Len(t, menu, 2)
	assert.Equal(t, "drinks", menu[0].Category)
	require.Len(t, menu[0].Items, 2)
	assert.Equal(t, "Coffee", menu[0].Items[0].Name)
	assert.Equal(t, "mains", menu[1].Category)
}
