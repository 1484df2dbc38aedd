package middleware

import (
	"strings"

	"canteen/internal/delivery/api/response"
	deliverycontext "canteen/internal/delivery/context"
	"canteen/internal/domain/entity"
	domainerrors "canteen/internal/domain/errors"
	"canteen/internal/domain/service"
	"canteen/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const keyEmail = "email"

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	TokenService service.TokenService
	ProfileUC    usecase.ProfileUsecase
}

// AuthMiddleware authenticates bearer tokens and resolves the caller's role.
type AuthMiddleware struct {
	tokenSvc  service.TokenService
	profileUC usecase.ProfileUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		tokenSvc:  params.TokenService,
		profileUC: params.ProfileUC,
	}
}

// Authenticate validates the bearer token and stores the subject on the context.
// Browsers cannot set headers on websocket upgrades, so an access_token query
// parameter is accepted as well.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, ok := bearerToken(c)
		if !ok {
			return response.Unauthorized(c, "UNAUTHORIZED", "Authorization header is missing or malformed")
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, "UNAUTHORIZED", "Invalid or expired token")
		}

		deliverycontext.SetUserID(c, claims.UserID)
		c.Set(keyEmail, claims.Email)

		return next(c)
	}
}

// RequireProfile loads the caller's profile and stores the actor. It must be
// used AFTER Authenticate. Callers without a profile must complete signup first.
func (m *AuthMiddleware) RequireProfile(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := GetUserID(c)
		if !ok {
			return response.Unauthorized(c, "UNAUTHORIZED", "User not authenticated")
		}

		profile, err := m.profileUC.GetProfile(c.Request().Context(), userID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrProfileNotFound) {
				return response.Forbidden(c, "PROFILE_REQUIRED", "Complete signup before using the canteen")
			}

			return response.HandleAppError(c, err)
		}

		deliverycontext.SetProfile(c, profile)
		deliverycontext.SetActor(c, entity.Actor{UserID: profile.ID, Role: profile.Role})

		return next(c)
	}
}

// RequireOrderManager rejects callers that may not advance orders. It must be
// used AFTER RequireProfile.
func (m *AuthMiddleware) RequireOrderManager(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, ok := deliverycontext.GetActor(c)
		if !ok || !actor.Role.CanManageOrders() {
			return response.Forbidden(c, "FORBIDDEN", "Permission denied: canteen staff or admin role required")
		}

		return next(c)
	}
}

// GetUserID returns the authenticated subject.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	return deliverycontext.GetUserID(c)
}

// GetEmail returns the email claim of the token, which may be empty.
func GetEmail(c echo.Context) string {
	email, _ := c.Get(keyEmail).(string)

	return email
}

// GetActor returns the actor stored by RequireProfile.
func GetActor(c echo.Context) (entity.Actor, bool) {
	return deliverycontext.GetActor(c)
}

func bearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		token := c.QueryParam("access_token")

		return token, token != ""
	}

	token, found := strings.CutPrefix(authHeader, "Bearer ")
	if !found || token == "" {
		return "", false
	}

	return token, true
}
