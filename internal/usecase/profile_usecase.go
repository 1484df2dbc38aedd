package usecase

import (
	"context"

	"canteen/internal/domain/entity"

	"github.com/google/uuid"
)

// ProfileUsecase defines the interface for profile-related business operations.
type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)

	// CompleteSignup creates the student profile for a freshly authenticated account.
	CompleteSignup(ctx context.Context, userID uuid.UUID, input *CompleteSignupInput) (*entity.Profile, error)

	// CreateProfile provisions a profile with any role. Used by operators.
	CreateProfile(ctx context.Context, input *CreateProfileInput) (*entity.Profile, error)
}

// --- Input DTOs ---

// CompleteSignupInput defines the data required to finish signing up.
type CompleteSignupInput struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required,max=255"`
}

// CreateProfileInput defines the data required to provision a profile.
type CreateProfileInput struct {
	ID       uuid.UUID   `json:"id"`
	Email    string      `json:"email" validate:"required,email"`
	FullName string      `json:"full_name" validate:"required,max=255"`
	Role     entity.Role `json:"role"`
}
