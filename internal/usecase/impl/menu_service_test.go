package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"canteen/internal/domain/entity"
	domainerrors "canteen/internal/domain/errors"
	"canteen/internal/domain/repository"
	mockRepo "canteen/internal/mocks/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMenuService_ListMenu_GroupsInRepositoryOrder(t *testing.T) {
	txManager := mockRepo.NewMockTransactionManager(t)
	service := NewMenuService(txManager, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	items := []*entity.FoodItem{
		{ID: uuid.New(), Name: "Coffee", Category: "drinks", Price: 35, IsAvailable: true},
		{ID: uuid.New(), Name: "Tea", Category: "drinks", Price: 20, IsAvailable: true},
		{ID: uuid.New(), Name: "Noodles", Category: "mains", Price: 70, IsAvailable: true},
	}

	txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockFoodRepo := mockRepo.NewMockFoodItemRepository(t)

			mockFactory.EXPECT().FoodItemRepo().Return(mockFoodRepo)
			mockFoodRepo.EXPECT().ListAvailable(ctx).Return(items, nil)

			return fn(mockFactory)
		})

	menu, err := service.ListMenu(ctx)
	require.NoError(t, err)
	require.Len(t, menu, 2)
	assert.Equal(t, "drinks", menu[0].Category)
	assert.Equal(t, []*entity.FoodItem{items[0], items[1]}, menu[0].Items)
	assert.Equal(t, "mains", menu[1].Category)
}

func TestMenuService_UpsertItems_RejectsInvalidPrice(t *testing.T) {
	txManager := mockRepo.NewMockTransactionManager(t)
	service := NewMenuService(txManager, slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := service.UpsertItems(context.Background(), []*entity.FoodItem{{Name: "Free Lunch", Price: 0}})

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}
