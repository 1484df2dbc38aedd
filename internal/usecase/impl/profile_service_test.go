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
	"canteen/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// profileServiceFixtures holds all test dependencies for profile service tests.
type profileServiceFixtures struct {
	service   usecase.ProfileUsecase
	txManager *mockRepo.MockTransactionManager
}

func createTestProfileService(t *testing.T) profileServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewProfileService(txManager, logger)

	return profileServiceFixtures{
		service:   service,
		txManager: txManager,
	}
}

func TestProfileService_GetProfile_Success(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	expected := &entity.Profile{
		ID:       userID,
		Email:    "mei@campus.test",
		FullName: "Mei Lin",
		Role:     entity.RoleStudent,
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockProfileRepo := mockRepo.NewMockProfileRepository(t)

			mockFactory.EXPECT().ProfileRepo().Return(mockProfileRepo)
			mockProfileRepo.EXPECT().FindByID(ctx, userID).Return(expected, nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	profile, err := fx.service.GetProfile(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, expected, profile)
}

func TestProfileService_GetProfile_NotFound(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockProfileRepo := mockRepo.NewMockProfileRepository(t)

			mockFactory.EXPECT().ProfileRepo().Return(mockProfileRepo)
			mockProfileRepo.EXPECT().FindByID(ctx, userID).Return(nil, repository.ErrProfileNotFound)

			return fn(mockFactory)
		})

	profile, err := fx.service.GetProfile(ctx, userID)

	assert.Nil(t, profile)
	assert.ErrorIs(t, err, domainerrors.ErrProfileNotFound)
}

func TestProfileService_CompleteSignup_CreatesStudent(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()

	var created *entity.Profile
	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockProfileRepo := mockRepo.NewMockProfileRepository(t)

			mockFactory.EXPECT().ProfileRepo().Return(mockProfileRepo)
			mockProfileRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.Profile")).
				Run(func(_ context.Context, profile *entity.Profile) { created = profile }).
				Return(nil)

			return fn(mockFactory)
		})

	profile, err := fx.service.CompleteSignup(ctx, userID, &usecase.CompleteSignupInput{
		Email:    "  Mei@Campus.test ",
		FullName: "Mei Lin",
	})

	require.NoError(t, err)
	assert.Equal(t, userID, profile.ID)
	assert.Equal(t, entity.RoleStudent, profile.Role)
	assert.Equal(t, "mei@campus.test", profile.Email)
	assert.Same(t, created, profile)
}

func TestProfileService_CompleteSignup_AlreadyExists(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockProfileRepo := mockRepo.NewMockProfileRepository(t)

			mockFactory.EXPECT().ProfileRepo().Return(mockProfileRepo)
			mockProfileRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.Profile")).
				Return(errors.WithStack(repository.ErrProfileExists))

			return fn(mockFactory)
		})

	_, err := fx.service.CompleteSignup(ctx, uuid.New(), &usecase.CompleteSignupInput{
		Email:    "mei@campus.test",
		FullName: "Mei Lin",
	})

	assert.ErrorIs(t, err, domainerrors.ErrProfileAlreadyExists)
}

func TestProfileService_CreateProfile_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input *usecase.CreateProfileInput
	}{
		{name: "missing email", input: &usecase.CreateProfileInput{FullName: "Staff", Role: entity.RoleCanteenStaff}},
		{name: "missing name", input: &usecase.CreateProfileInput{Email: "staff@campus.test", Role: entity.RoleCanteenStaff}},
		{name: "invalid role", input: &usecase.CreateProfileInput{Email: "staff@campus.test", FullName: "Staff"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestProfileService(t)

			_, err := fx.service.CreateProfile(context.Background(), tt.input)

			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
		})
	}
}
