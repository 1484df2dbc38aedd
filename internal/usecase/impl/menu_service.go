package impl

import (
	"context"
	"log/slog"

	"canteen/internal/domain/entity"
	domainerrors "canteen/internal/domain/errors"
	"canteen/internal/domain/repository"
	"canteen/internal/usecase"

	"github.com/pkg/errors"
)

type menuService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewMenuService is the constructor for menuService.
func NewMenuService(txManager repository.TransactionManager, logger *slog.Logger) usecase.MenuUsecase {
	return &menuService{
		txManager: txManager,
		logger:    logger,
	}
}

// ListMenu groups available items by category, keeping the repository order.
func (srv *menuService) ListMenu(ctx context.Context) ([]*entity.MenuCategory, error) {
	var items []*entity.FoodItem
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.FoodItemRepo().ListAvailable(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list food items")
		}
		items = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list menu")
	}

	menu := []*entity.MenuCategory{}
	byCategory := make(map[string]*entity.MenuCategory)
	for _, item := range items {
		category, ok := byCategory[item.Category]
		if !ok {
			category = &entity.MenuCategory{Category: item.Category}
			byCategory[item.Category] = category
			menu = append(menu, category)
		}
		category.Items = append(category.Items, item)
	}

	return menu, nil
}

func (srv *menuService) UpsertItems(ctx context.Context, items []*entity.FoodItem) error {
	for _, item := range items {
		if item.Name == "" || item.Price <= 0 {
			return errors.Wrapf(domainerrors.ErrValidationFailed, "food item %q needs a name and a positive price", item.Name)
		}
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		foodRepo := repoFactory.FoodItemRepo()
		for _, item := range items {
			item.Price = entity.RoundMoney(item.Price)
			if err := foodRepo.Upsert(ctx, item); err != nil {
				return errors.Wrapf(err, "failed to upsert food item %q", item.Name)
			}
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to upsert menu")
	}

	srv.logger.Info("Menu items upserted", slog.Int("count", len(items)))

	return nil
}
