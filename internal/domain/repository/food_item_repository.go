package repository

import (
	"context"

	"canteen/internal/domain/entity"
	"canteen/internal/errors"

	"github.com/google/uuid"
)

// ErrFoodItemNotFound is returned when a food item is not found.
var ErrFoodItemNotFound = errors.New("food item not found")

// FoodItemRepository defines catalog persistence.
type FoodItemRepository interface {
	// Upsert inserts the item or updates it by name.
	Upsert(ctx context.Context, item *entity.FoodItem) error

	// FindByIDs returns the items found, keyed by id. Missing ids are absent from the map.
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.FoodItem, error)

	// ListAvailable returns available items ordered by category then name.
	ListAvailable(ctx context.Context) ([]*entity.FoodItem, error)
}
