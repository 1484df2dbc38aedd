package usecase

import (
	"context"

	"canteen/internal/domain/entity"
)

// MenuUsecase defines the catalog operations.
type MenuUsecase interface {
	// ListMenu returns the available items grouped by category.
	ListMenu(ctx context.Context) ([]*entity.MenuCategory, error)

	// UpsertItems inserts or updates catalog items by name in one transaction.
	UpsertItems(ctx context.Context, items []*entity.FoodItem) error
}
