package postgres

import (
	"context"

	"canteen/internal/domain/entity"
	domainerrors "canteen/internal/domain/errors"
	"canteen/internal/domain/repository"
	"canteen/internal/errors"
	"canteen/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const orderNumberConstraint = "idx_orders_order_number"

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func (repo *orderRepository) CreateOrder(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	// Items are inserted explicitly by CreateOrderItems.
	if err := repo.db.WithContext(ctx).Omit("Items", "Student").Create(orderM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			if name := uniqueConstraintName(err); name == "" || name == orderNumberConstraint {
				return errors.WithStack(repository.ErrDuplicateOrderNumber)
			}
		}
		if isForeignKeyConstraintViolation(err) {
			return errors.Wrap(domainerrors.ErrProfileNotFound, "student profile missing")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

func (repo *orderRepository) CreateOrderItems(ctx context.Context, items []*entity.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	itemModels := make([]*model.OrderItemModel, 0, len(items))
	for _, item := range items {
		itemModels = append(itemModels, fromOrderItemDomain(item))
	}

	if err := repo.db.WithContext(ctx).Omit("FoodItem").Create(&itemModels).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return errors.Wrap(domainerrors.ErrFoodItemNotFound, "order item references unknown food item")
		}
		if isCheckConstraintViolation(err) {
			return errors.WithStack(domainerrors.ErrInvalidQuantity)
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order items")
	}

	for i, itemM := range itemModels {
		items[i].ID = itemM.ID
	}

	return nil
}

func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.OrderDetails, error) {
	var orderM model.OrderModel

	if err := repo.preloaded(ctx).Where("orders.id = ?", id).First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find order by ID")
	}

	return toOrderDetailsDomain(&orderM), nil
}

// UpdateStatus is a compare-and-set on the status column.
func (repo *orderRepository) UpdateStatus(ctx context.Context, update repository.StatusUpdate) (bool, error) {
	values := map[string]any{
		"status":     update.To.String(),
		"updated_at": update.UpdatedAt,
	}
	if update.AssignedTo != nil {
		values["assigned_to"] = gorm.Expr("COALESCE(assigned_to, ?)", *update.AssignedTo)
	}

	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ? AND status = ?", update.OrderID, update.From.String()).
		Updates(values)
	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return false, errors.WithStack(domainerrors.ErrInvalidStatus)
		}

		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order status")
	}

	return result.RowsAffected == 1, nil
}

func (repo *orderRepository) List(ctx context.Context, filter entity.OrderFilter) ([]*entity.OrderDetails, error) {
	query := repo.preloaded(ctx)

	if filter.StudentID != nil {
		query = query.Where("orders.student_id = ?", *filter.StudentID)
	}
	if len(filter.StatusIn) > 0 {
		statuses := make([]string, 0, len(filter.StatusIn))
		for _, status := range filter.StatusIn {
			statuses = append(statuses, status.String())
		}
		query = query.Where("orders.status IN ?", statuses)
	}

	var orderModels []*model.OrderModel
	if err := query.
		Order("orders.created_at DESC").
		Order("orders.id DESC").
		Find(&orderModels).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list orders")
	}

	orders := make([]*entity.OrderDetails, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDetailsDomain(orderM))
	}

	return orders, nil
}

func (repo *orderRepository) preloaded(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Preload("Student").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_items.id ASC")
		}).
		Preload("Items.FoodItem")
}

// --- Mapper Functions ---

func toOrderDetailsDomain(data *model.OrderModel) *entity.OrderDetails {
	items := make([]*entity.OrderItem, 0, len(data.Items))
	for _, itemM := range data.Items {
		items = append(items, &entity.OrderItem{
			ID:           itemM.ID,
			OrderID:      itemM.OrderID,
			FoodItemID:   itemM.FoodItemID,
			FoodItemName: itemM.FoodItem.Name,
			Quantity:     itemM.Quantity,
			Price:        itemM.Price,
		})
	}

	return &entity.OrderDetails{
		Order: &entity.Order{
			ID:          data.ID,
			OrderNumber: data.OrderNumber,
			StudentID:   data.StudentID,
			TotalAmount: data.TotalAmount,
			Status:      entity.OrderStatus(data.Status),
			AssignedTo:  data.AssignedTo,
			CreatedAt:   data.CreatedAt,
			UpdatedAt:   data.UpdatedAt,
			Items:       items,
		},
		StudentName: data.Student.FullName,
	}
}

func fromOrderDomain(data *entity.Order) *model.OrderModel {
	return &model.OrderModel{
		ID:          data.ID,
		OrderNumber: data.OrderNumber,
		StudentID:   data.StudentID,
		TotalAmount: data.TotalAmount,
		Status:      data.Status.String(),
		AssignedTo:  data.AssignedTo,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromOrderItemDomain(data *entity.OrderItem) *model.OrderItemModel {
	return &model.OrderItemModel{
		ID:         data.ID,
		OrderID:    data.OrderID,
		FoodItemID: data.FoodItemID,
		Quantity:   data.Quantity,
		Price:      data.Price,
	}
}
