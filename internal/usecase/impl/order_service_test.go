package impl

import (
	"context"
	"io"
	"log/slog"
	"math"
	"regexp"
	"testing"
	"time"

	"canteen/internal/domain/entity"
	domainerrors "canteen/internal/domain/errors"
	"canteen/internal/domain/repository"
	"canteen/internal/domain/service"
	mockRepo "canteen/internal/mocks/repository"
	mockSvc "canteen/internal/mocks/service"
	"canteen/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderServiceFixtures struct {
	service       *orderService
	txManager     *mockRepo.MockTransactionManager
	profileRepo   *mockRepo.MockProfileRepository
	foodRepo      *mockRepo.MockFoodItemRepository
	orderRepo     *mockRepo.MockOrderRepository
	notifRepo     *mockRepo.MockNotificationRepository
	changeFeed    *mockSvc.MockChangeFeed
	publisher     *mockSvc.MockEventPublisher
	qrCodeService *mockSvc.MockQRCodeService
	metrics       *mockSvc.MockMetrics
}

var fixedNow = time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)

func createTestOrderService(t *testing.T) *orderServiceFixtures {
	t.Helper()

	fx := &orderServiceFixtures{
		txManager:     mockRepo.NewMockTransactionManager(t),
		profileRepo:   mockRepo.NewMockProfileRepository(t),
		foodRepo:      mockRepo.NewMockFoodItemRepository(t),
		orderRepo:     mockRepo.NewMockOrderRepository(t),
		notifRepo:     mockRepo.NewMockNotificationRepository(t),
		changeFeed:    mockSvc.NewMockChangeFeed(t),
		publisher:     mockSvc.NewMockEventPublisher(t),
		qrCodeService: mockSvc.NewMockQRCodeService(t),
		metrics:       mockSvc.NewMockMetrics(t),
	}

	srv := NewOrderService(OrderServiceParams{
		TxManager:     fx.txManager,
		ChangeFeed:    fx.changeFeed,
		Publisher:     fx.publisher,
		QRCodeService: fx.qrCodeService,
		Metrics:       fx.metrics,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}).(*orderService)
	srv.now = func() time.Time { return fixedNow }
	fx.service = srv

	return fx
}

// expectTx runs the transaction callback against a factory exposing the fixture repositories.
func (fx *orderServiceFixtures) expectTx(t *testing.T, ctx context.Context) {
	t.Helper()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockFactory.EXPECT().ProfileRepo().Return(fx.profileRepo).Maybe()
			mockFactory.EXPECT().FoodItemRepo().Return(fx.foodRepo).Maybe()
			mockFactory.EXPECT().OrderRepo().Return(fx.orderRepo).Maybe()
			mockFactory.EXPECT().NotificationRepo().Return(fx.notifRepo).Maybe()

			return fn(mockFactory)
		})
}

func TestOrderService_PlaceOrder_Success(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	student := &entity.Profile{ID: uuid.New(), FullName: "Mei Lin", Role: entity.RoleStudent}
	rice := &entity.FoodItem{ID: uuid.New(), Name: "Rice Bowl", Price: 100, IsAvailable: true}
	tea := &entity.FoodItem{ID: uuid.New(), Name: "Milk Tea", Price: 50, IsAvailable: true}

	fx.expectTx(t, ctx)
	fx.profileRepo.EXPECT().FindByID(ctx, student.ID).Return(student, nil)
	fx.foodRepo.EXPECT().
		FindByIDs(ctx, []uuid.UUID{rice.ID, tea.ID}).
		Return(map[uuid.UUID]*entity.FoodItem{rice.ID: rice, tea.ID: tea}, nil)

	var createdOrder *entity.Order
	fx.orderRepo.EXPECT().
		CreateOrder(ctx, mock.AnythingOfType("*entity.Order")).
		Run(func(_ context.Context, order *entity.Order) { createdOrder = order }).
		Return(nil)
	fx.orderRepo.EXPECT().
		CreateOrderItems(ctx, mock.MatchedBy(func(items []*entity.OrderItem) bool { return len(items) == 2 })).
		Return(nil)

	var createdNotification *entity.Notification
	fx.notifRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Notification")).
		Run(func(_ context.Context, n *entity.Notification) { createdNotification = n }).
		Return(nil)

	var published []*entity.ChangeEvent
	fx.changeFeed.EXPECT().
		Publish(ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(_ context.Context, events ...*entity.ChangeEvent) { published = events })
	fx.metrics.EXPECT().OrderPlaced(262.50)
	fx.metrics.EXPECT().NotificationsCreated(1)
	fx.publisher.EXPECT().
		PublishNotificationEvent(ctx, mock.MatchedBy(func(e *service.NotificationEvent) bool {
			return e.UserID == student.ID.String() && e.OrderStatus == "preparing"
		})).
		Return(nil)

	order, err := fx.service.PlaceOrder(ctx, entity.Actor{UserID: student.ID, Role: entity.RoleStudent}, &usecase.PlaceOrderInput{
		Lines: []usecase.OrderLineInput{
			{FoodItemID: rice.ID, Quantity: 1},
			{FoodItemID: tea.ID, Quantity: 1},
			{FoodItemID: rice.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.InDelta(t, 262.50, order.TotalAmount, 1e-9)
	assert.Equal(t, entity.OrderStatusPreparing, order.Status)
	assert.Equal(t, "Mei Lin", order.StudentName)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.InDelta(t, 100.0, order.Items[0].Price, 1e-9)
	assert.Regexp(t, regexp.MustCompile(`^ORD-20260301-[0-9A-HJKMNP-TV-Z]{8}$`), order.OrderNumber)

	require.NotNil(t, createdOrder)
	assert.Equal(t, order.ID, createdOrder.ID)
	require.NotNil(t, createdNotification)
	assert.Equal(t, "Your order "+order.OrderNumber+" has been placed successfully!", createdNotification.Message)

	require.Len(t, published, 4)
	assert.Equal(t, entity.TableOrders, published[0].Table)
	assert.Equal(t, entity.TableOrderItems, published[1].Table)
	assert.Equal(t, entity.TableOrderItems, published[2].Table)
	assert.Equal(t, entity.TableNotifications, published[3].Table)
	assert.Equal(t, student.ID.String(), published[3].Columns["user_id"])
}

func TestOrderService_PlaceOrder_ValidatesCart(t *testing.T) {
	student := entity.Actor{UserID: uuid.New(), Role: entity.RoleStudent}
	sameItem := uuid.New()

	tests := []struct {
		name    string
		actor   entity.Actor
		input   *usecase.PlaceOrderInput
		wantErr error
	}{
		{
			name:    "empty cart",
			actor:   student,
			input:   &usecase.PlaceOrderInput{},
			wantErr: domainerrors.ErrEmptyCart,
		},
		{
			name:    "nil input",
			actor:   student,
			wantErr: domainerrors.ErrEmptyCart,
		},
		{
			name:  "zero quantity",
			actor: student,
			input: &usecase.PlaceOrderInput{Lines: []usecase.OrderLineInput{
				{FoodItemID: uuid.New(), Quantity: 0},
			}},
			wantErr: domainerrors.ErrInvalidQuantity,
		},
		{
			name:  "quantity above cap",
			actor: student,
			input: &usecase.PlaceOrderInput{Lines: []usecase.OrderLineInput{
				{FoodItemID: uuid.New(), Quantity: 1 << 40},
			}},
			wantErr: domainerrors.ErrInvalidQuantity,
		},
		{
			name:  "huge duplicate lines do not wrap around",
			actor: student,
			input: &usecase.PlaceOrderInput{Lines: []usecase.OrderLineInput{
				{FoodItemID: sameItem, Quantity: math.MaxInt},
				{FoodItemID: sameItem, Quantity: math.MaxInt},
			}},
			wantErr: domainerrors.ErrInvalidQuantity,
		},
		{
			name:  "merged duplicates exceed cap",
			actor: student,
			input: &usecase.PlaceOrderInput{Lines: []usecase.OrderLineInput{
				{FoodItemID: sameItem, Quantity: 60},
				{FoodItemID: sameItem, Quantity: 40},
			}},
			wantErr: domainerrors.ErrInvalidQuantity,
		},
		{
			name:  "staff cannot order",
			actor: entity.Actor{UserID: uuid.New(), Role: entity.RoleCanteenStaff},
			input: &usecase.PlaceOrderInput{Lines: []usecase.OrderLineInput{
				{FoodItemID: uuid.New(), Quantity: 1},
			}},
			wantErr: domainerrors.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestOrderService(t)

			order, err := fx.service.PlaceOrder(context.Background(), tt.actor, tt.input)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, order)
		})
	}
}

func TestOrderService_PlaceOrder_UnavailableItem(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	student := &entity.Profile{ID: uuid.New(), FullName: "Mei Lin", Role: entity.RoleStudent}
	soup := &entity.FoodItem{ID: uuid.New(), Name: "Soup", Price: 40, IsAvailable: false}

	fx.expectTx(t, ctx)
	fx.profileRepo.EXPECT().FindByID(ctx, student.ID).Return(student, nil)
	fx.foodRepo.EXPECT().FindByIDs(ctx, []uuid.UUID{soup.ID}).Return(map[uuid.UUID]*entity.FoodItem{soup.ID: soup}, nil)

	_, err := fx.service.PlaceOrder(ctx, entity.Actor{UserID: student.ID, Role: entity.RoleStudent}, &usecase.PlaceOrderInput{
		Lines: []usecase.OrderLineInput{{FoodItemID: soup.ID, Quantity: 1}},
	})

	assert.ErrorIs(t, err, domainerrors.ErrFoodItemUnavailable)
}

func TestOrderService_PlaceOrder_TotalBeyondStoreRange(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	student := &entity.Profile{ID: uuid.New(), FullName: "Mei Lin", Role: entity.RoleStudent}
	banquet := &entity.FoodItem{ID: uuid.New(), Name: "Banquet", Price: 5_000_000, IsAvailable: true}

	fx.expectTx(t, ctx)
	fx.profileRepo.EXPECT().FindByID(ctx, student.ID).Return(student, nil)
	fx.foodRepo.EXPECT().FindByIDs(ctx, []uuid.UUID{banquet.ID}).Return(map[uuid.UUID]*entity.FoodItem{banquet.ID: banquet}, nil)

	order, err := fx.service.PlaceOrder(ctx, entity.Actor{UserID: student.ID, Role: entity.RoleStudent}, &usecase.PlaceOrderInput{
		Lines: []usecase.OrderLineInput{{FoodItemID: banquet.ID, Quantity: 20}},
	})

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	assert.Nil(t, order)
}

func TestOrderService_PlaceOrder_UnknownItem(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	student := &entity.Profile{ID: uuid.New(), FullName: "Mei Lin", Role: entity.RoleStudent}
	missing := uuid.New()

	fx.expectTx(t, ctx)
	fx.profileRepo.EXPECT().FindByID(ctx, student.ID).Return(student, nil)
	fx.foodRepo.EXPECT().FindByIDs(ctx, []uuid.UUID{missing}).Return(map[uuid.UUID]*entity.FoodItem{}, nil)

	_, err := fx.service.PlaceOrder(ctx, entity.Actor{UserID: student.ID, Role: entity.RoleStudent}, &usecase.PlaceOrderInput{
		Lines: []usecase.OrderLineInput{{FoodItemID: missing, Quantity: 1}},
	})

	assert.ErrorIs(t, err, domainerrors.ErrFoodItemNotFound)
}

func TestOrderService_PlaceOrder_OrderNumberExhausted(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	generated := 0
	fx.service.newOrderNumber = func(time.Time) string {
		generated++

		return "ORD-20260301-AAAAAAAA"
	}

	student := &entity.Profile{ID: uuid.New(), FullName: "Mei Lin", Role: entity.RoleStudent}
	rice := &entity.FoodItem{ID: uuid.New(), Name: "Rice Bowl", Price: 100, IsAvailable: true}

	fx.expectTx(t, ctx)
	fx.profileRepo.EXPECT().FindByID(ctx, student.ID).Return(student, nil).Times(maxOrderNumberAttempts)
	fx.foodRepo.EXPECT().FindByIDs(ctx, []uuid.UUID{rice.ID}).
		Return(map[uuid.UUID]*entity.FoodItem{rice.ID: rice}, nil).Times(maxOrderNumberAttempts)
	fx.orderRepo.EXPECT().CreateOrder(ctx, mock.AnythingOfType("*entity.Order")).
		Return(errors.WithStack(repository.ErrDuplicateOrderNumber)).Times(maxOrderNumberAttempts)

	_, err := fx.service.PlaceOrder(ctx, entity.Actor{UserID: student.ID, Role: entity.RoleStudent}, &usecase.PlaceOrderInput{
		Lines: []usecase.OrderLineInput{{FoodItemID: rice.ID, Quantity: 1}},
	})

	assert.ErrorIs(t, err, domainerrors.ErrOrderNumberExhausted)
	assert.Equal(t, maxOrderNumberAttempts, generated)
}

func TestOrderService_AdvanceStatus_Success(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	staff := entity.Actor{UserID: uuid.New(), Role: entity.RoleCanteenStaff}
	order := &entity.OrderDetails{
		Order: &entity.Order{
			ID:          uuid.New(),
			OrderNumber: "ORD-20260301-ABCDEFGH",
			StudentID:   uuid.New(),
			Status:      entity.OrderStatusPreparing,
		},
		StudentName: "Mei Lin",
	}

	fx.expectTx(t, ctx)
	fx.orderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil)
	fx.orderRepo.EXPECT().
		UpdateStatus(ctx, mock.MatchedBy(func(update repository.StatusUpdate) bool {
			return update.From == entity.OrderStatusPreparing &&
				update.To == entity.OrderStatusReady &&
				update.AssignedTo != nil && *update.AssignedTo == staff.UserID
		})).
		Return(true, nil)

	var notification *entity.Notification
	fx.notifRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Notification")).
		Run(func(_ context.Context, n *entity.Notification) { notification = n }).
		Return(nil)
	fx.changeFeed.EXPECT().Publish(ctx, mock.Anything, mock.Anything)
	fx.metrics.EXPECT().OrderAdvanced(entity.OrderStatusReady)
	fx.metrics.EXPECT().NotificationsCreated(1)
	fx.publisher.EXPECT().PublishNotificationEvent(ctx, mock.Anything).Return(errors.New("broker down"))

	updated, err := fx.service.AdvanceStatus(ctx, staff, order.ID, entity.OrderStatusReady)
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusReady, updated.Status)
	require.NotNil(t, updated.AssignedTo)
	assert.Equal(t, staff.UserID, *updated.AssignedTo)
	require.NotNil(t, notification)
	assert.Equal(t, order.StudentID, notification.UserID)
	assert.Equal(t, "Your order ORD-20260301-ABCDEFGH is now ready for pickup!", notification.Message)
}

func TestOrderService_AdvanceStatus_StudentForbidden(t *testing.T) {
	fx := createTestOrderService(t)

	_, err := fx.service.AdvanceStatus(context.Background(),
		entity.Actor{UserID: uuid.New(), Role: entity.RoleStudent}, uuid.New(), entity.OrderStatusReady)

	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestOrderService_AdvanceStatus_RejectsSkip(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	order := &entity.OrderDetails{Order: &entity.Order{ID: uuid.New(), Status: entity.OrderStatusPreparing}}

	fx.expectTx(t, ctx)
	fx.orderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil)

	_, err := fx.service.AdvanceStatus(ctx, entity.Actor{UserID: uuid.New(), Role: entity.RoleAdmin}, order.ID, entity.OrderStatusDelivered)

	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)
}

func TestOrderService_AdvanceStatus_UnknownStatus(t *testing.T) {
	fx := createTestOrderService(t)

	_, err := fx.service.AdvanceStatus(context.Background(),
		entity.Actor{UserID: uuid.New(), Role: entity.RoleAdmin}, uuid.New(), entity.OrderStatus("cancelled"))

	assert.ErrorIs(t, err, domainerrors.ErrInvalidStatus)
}

func TestOrderService_AdvanceStatus_LostRace(t *testing.T) {
	tests := []struct {
		name    string
		reread  error
		wantErr error
	}{
		{name: "concurrent writer won", wantErr: domainerrors.ErrInvalidTransition},
		{name: "order vanished", reread: repository.ErrOrderNotFound, wantErr: domainerrors.ErrOrderNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestOrderService(t)
			ctx := context.Background()

			order := &entity.OrderDetails{Order: &entity.Order{ID: uuid.New(), Status: entity.OrderStatusReady}}

			fx.expectTx(t, ctx)
			fx.orderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil).Once()
			fx.orderRepo.EXPECT().UpdateStatus(ctx, mock.AnythingOfType("repository.StatusUpdate")).Return(false, nil)
			if tt.reread != nil {
				fx.orderRepo.EXPECT().FindByID(ctx, order.ID).Return(nil, tt.reread).Once()
			} else {
				fx.orderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil).Once()
			}

			_, err := fx.service.AdvanceStatus(ctx, entity.Actor{UserID: uuid.New(), Role: entity.RoleCanteenStaff}, order.ID, entity.OrderStatusDelivered)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestOrderService_ListOrders_ScopesByRole(t *testing.T) {
	studentID := uuid.New()

	tests := []struct {
		name       string
		actor      entity.Actor
		statusIn   []entity.OrderStatus
		wantFilter *entity.OrderFilter
	}{
		{
			name:       "student sees own orders",
			actor:      entity.Actor{UserID: studentID, Role: entity.RoleStudent},
			wantFilter: &entity.OrderFilter{StudentID: &studentID},
		},
		{
			name:       "staff sees the active queue",
			actor:      entity.Actor{UserID: uuid.New(), Role: entity.RoleCanteenStaff},
			wantFilter: &entity.OrderFilter{StatusIn: entity.ActiveOrderStatuses},
		},
		{
			name:       "staff filter is intersected",
			actor:      entity.Actor{UserID: uuid.New(), Role: entity.RoleCanteenStaff},
			statusIn:   []entity.OrderStatus{entity.OrderStatusReady, entity.OrderStatusDelivered},
			wantFilter: &entity.OrderFilter{StatusIn: []entity.OrderStatus{entity.OrderStatusReady}},
		},
		{
			name:     "staff asking only for delivered gets nothing",
			actor:    entity.Actor{UserID: uuid.New(), Role: entity.RoleCanteenStaff},
			statusIn: []entity.OrderStatus{entity.OrderStatusDelivered},
		},
		{
			name:       "admin sees everything",
			actor:      entity.Actor{UserID: uuid.New(), Role: entity.RoleAdmin},
			statusIn:   []entity.OrderStatus{entity.OrderStatusDelivered},
			wantFilter: &entity.OrderFilter{StatusIn: []entity.OrderStatus{entity.OrderStatusDelivered}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestOrderService(t)
			ctx := context.Background()

			if tt.wantFilter != nil {
				fx.expectTx(t, ctx)
				fx.orderRepo.EXPECT().List(ctx, *tt.wantFilter).Return([]*entity.OrderDetails{}, nil)
			}

			orders, err := fx.service.ListOrders(ctx, tt.actor, tt.statusIn)
			require.NoError(t, err)
			assert.NotNil(t, orders)
			assert.Empty(t, orders)
		})
	}
}

func TestOrderService_GetOrder_HidesOtherStudentsOrders(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	order := &entity.OrderDetails{Order: &entity.Order{ID: uuid.New(), StudentID: uuid.New()}}

	fx.expectTx(t, ctx)
	fx.orderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil)

	_, err := fx.service.GetOrder(ctx, entity.Actor{UserID: uuid.New(), Role: entity.RoleStudent}, order.ID)

	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestOrderService_PickupQR(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	student := entity.Actor{UserID: uuid.New(), Role: entity.RoleStudent}
	order := &entity.OrderDetails{Order: &entity.Order{
		ID:          uuid.New(),
		OrderNumber: "ORD-20260301-ABCDEFGH",
		StudentID:   student.UserID,
		Status:      entity.OrderStatusReady,
	}}

	fx.expectTx(t, ctx)
	fx.orderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil)
	fx.qrCodeService.EXPECT().
		GeneratePickupQR(service.PickupCode{OrderID: order.ID, OrderNumber: order.OrderNumber}).
		Return([]byte("png"), nil)

	png, err := fx.service.PickupQR(ctx, student, order.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), png)
}

func TestOrderService_ConfirmPickup_RejectsMismatchedNumber(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	order := &entity.OrderDetails{Order: &entity.Order{
		ID:          uuid.New(),
		OrderNumber: "ORD-20260301-ABCDEFGH",
		Status:      entity.OrderStatusReady,
	}}

	fx.qrCodeService.EXPECT().ParsePickupQR("payload").
		Return(service.PickupCode{OrderID: order.ID, OrderNumber: "ORD-20260301-ZZZZZZZZ"}, nil)
	fx.expectTx(t, ctx)
	fx.orderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil)

	_, err := fx.service.ConfirmPickup(ctx, entity.Actor{UserID: uuid.New(), Role: entity.RoleCanteenStaff}, "payload")

	assert.ErrorIs(t, err, domainerrors.ErrInvalidQRCode)
}

func TestNewOrderNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD-20261018-[0-9A-HJKMNP-TV-Z]{8}$`)
	at := time.Date(2026, 10, 18, 23, 59, 0, 0, time.UTC)

	seen := make(map[string]bool)
	for range 1000 {
		number := NewOrderNumber(at)
		assert.Regexp(t, pattern, number)
		seen[number] = true
	}
	assert.Greater(t, len(seen), 990)

	// The date is taken in UTC.
	local := time.Date(2026, 10, 19, 1, 0, 0, 0, time.FixedZone("UTC+8", 8*3600))
	assert.Regexp(t, pattern, NewOrderNumber(local))
}
