package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"canteen/internal/domain/entity"
	domainerrors "canteen/internal/domain/errors"
	"canteen/internal/domain/repository"
	"canteen/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
	now       func() time.Time
}

// NewProfileService is the constructor for profileService.
func NewProfileService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.ProfileUsecase {
	return &profileService{
		txManager: txManager,
		logger:    logger,
		now:       time.Now,
	}
}

// GetProfile retrieves the profile that drives role routing.
func (srv *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	srv.logger.Debug("Getting profile", "userID", userID)

	var profile *entity.Profile

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.ProfileRepo().FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrProfileNotFound) {
				return errors.Wrap(domainerrors.ErrProfileNotFound, "profile not found")
			}

			return errors.Wrap(err, "failed to find profile")
		}
		profile = found

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to get profile")
	}

	return profile, nil
}

// CompleteSignup creates a student profile keyed by the identity provider subject.
func (srv *profileService) CompleteSignup(ctx context.Context, userID uuid.UUID, input *usecase.CompleteSignupInput) (*entity.Profile, error) {
	return srv.CreateProfile(ctx, &usecase.CreateProfileInput{
		ID:       userID,
		Email:    input.Email,
		FullName: input.FullName,
		Role:     entity.RoleStudent,
	})
}

// CreateProfile provisions a profile with the given role.
func (srv *profileService) CreateProfile(ctx context.Context, input *usecase.CreateProfileInput) (*entity.Profile, error) {
	profile := &entity.Profile{
		ID:        input.ID,
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		FullName:  strings.TrimSpace(input.FullName),
		Role:      input.Role,
		CreatedAt: srv.now().UTC(),
	}
	if profile.ID == uuid.Nil {
		profile.ID = uuid.Must(uuid.NewV7())
	}
	if profile.Email == "" || profile.FullName == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "email and full name are required")
	}
	if !profile.Role.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "invalid role")
	}

	srv.logger.Info("Creating profile", "userID", profile.ID, "role", profile.Role.String())

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.ProfileRepo().Create(ctx, profile); err != nil {
			if errors.Is(err, repository.ErrProfileExists) {
				return errors.Wrap(domainerrors.ErrProfileAlreadyExists, "profile already exists")
			}

			return errors.Wrap(err, "failed to create profile")
		}

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to create profile")
	}

	return profile, nil
}
