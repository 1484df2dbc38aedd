package postgres

import (
	"context"

	"canteen/internal/domain/entity"
	domainerrors "canteen/internal/domain/errors"
	"canteen/internal/domain/repository"
	"canteen/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type foodItemRepository struct {
	db *gorm.DB
}

// NewFoodItemRepository is the constructor for foodItemRepository.
func NewFoodItemRepository(db *gorm.DB) repository.FoodItemRepository {
	return &foodItemRepository{db: db}
}

func (repo *foodItemRepository) Upsert(ctx context.Context, item *entity.FoodItem) error {
	itemM := fromFoodItemDomain(item)

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"description", "price", "image_url", "is_available", "category"}),
		}).
		Create(itemM).Error
	if err != nil {
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("food item price must be positive")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert food item")
	}

	item.ID = itemM.ID
	item.CreatedAt = itemM.CreatedAt

	return nil
}

func (repo *foodItemRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.FoodItem, error) {
	items := make(map[uuid.UUID]*entity.FoodItem, len(ids))
	if len(ids) == 0 {
		return items, nil
	}

	var itemModels []*model.FoodItemModel
	if err := repo.db.WithContext(ctx).Where("id IN ?", ids).Find(&itemModels).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find food items")
	}

	for _, itemM := range itemModels {
		items[itemM.ID] = toFoodItemDomain(itemM)
	}

	return items, nil
}

func (repo *foodItemRepository) ListAvailable(ctx context.Context) ([]*entity.FoodItem, error) {
	var itemModels []*model.FoodItemModel

	if err := repo.db.WithContext(ctx).
		Where("is_available = ?", true).
		Order("category ASC").
		Order("name ASC").
		Find(&itemModels).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list food items")
	}

	items := make([]*entity.FoodItem, 0, len(itemModels))
	for _, itemM := range itemModels {
		items = append(items, toFoodItemDomain(itemM))
	}

	return items, nil
}

// --- Mapper Functions ---

func toFoodItemDomain(data *model.FoodItemModel) *entity.FoodItem {
	return &entity.FoodItem{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		Price:       data.Price,
		ImageURL:    data.ImageURL,
		IsAvailable: data.IsAvailable,
		Category:    data.Category,
		CreatedAt:   data.CreatedAt,
	}
}

func fromFoodItemDomain(data *entity.FoodItem) *model.FoodItemModel {
	return &model.FoodItemModel{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		Price:       data.Price,
		ImageURL:    data.ImageURL,
		IsAvailable: data.IsAvailable,
		Category:    data.Category,
		CreatedAt:   data.CreatedAt,
	}
}
