package context

import (
	"canteen/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// KeyActor is the key for storing the authenticated actor in echo.Context.
	KeyActor ContextKey = "actor"

	// KeyProfile is the key for storing the caller's profile in echo.Context.
	KeyProfile ContextKey = "profile"
)

// SetActor stores the authenticated caller.
func SetActor(c echo.Context, actor entity.Actor) {
	c.Set(string(KeyActor), actor)
}

// GetActor returns the authenticated caller, if any.
func GetActor(c echo.Context) (entity.Actor, bool) {
	actor, ok := c.Get(string(KeyActor)).(entity.Actor)

	return actor, ok
}

// SetProfile stores the caller's profile.
func SetProfile(c echo.Context, profile *entity.Profile) {
	c.Set(string(KeyProfile), profile)
}

// GetProfile returns the caller's profile. It is nil before signup completes.
func GetProfile(c echo.Context) *entity.Profile {
	profile, _ := c.Get(string(KeyProfile)).(*entity.Profile)

	return profile
}

// KeyUserID is the key for storing the token subject in echo.Context.
const KeyUserID ContextKey = "userID"

// SetUserID stores the token subject.
func SetUserID(c echo.Context, userID uuid.UUID) {
	c.Set(string(KeyUserID), userID)
}

// GetUserID returns the token subject, if any.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(string(KeyUserID)).(uuid.UUID)

	return userID, ok && userID != uuid.Nil
}
