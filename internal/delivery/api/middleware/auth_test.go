package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "canteen/internal/delivery/context"
	"canteen/internal/domain/entity"
	domainerrors "canteen/internal/domain/errors"
	"canteen/internal/domain/service"
	mockSvc "canteen/internal/mocks/service"
	mockUC "canteen/internal/mocks/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authFixtures struct {
	middleware *AuthMiddleware
	tokenSvc   *mockSvc.MockTokenService
	profileUC  *mockUC.MockProfileUsecase
}

func createTestAuthMiddleware(t *testing.T) authFixtures {
	tokenSvc := mockSvc.NewMockTokenService(t)
	profileUC := mockUC.NewMockProfileUsecase(t)

	return authFixtures{
		middleware: NewAuthMiddleware(AuthMiddlewareParams{TokenService: tokenSvc, ProfileUC: profileUC}),
		tokenSvc:   tokenSvc,
		profileUC:  profileUC,
	}
}

func newAuthContext(authHeader, target string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()

	return echo.New().NewContext(req, rec), rec
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		header     string
		target     string
		token      string
		validErr   error
		wantStatus int
	}{
		{name: "valid bearer", header: "Bearer good", target: "/", token: "good", wantStatus: http.StatusOK},
		{name: "query token for websocket", target: "/?access_token=good", token: "good", wantStatus: http.StatusOK},
		{name: "missing header", target: "/", wantStatus: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", target: "/", wantStatus: http.StatusUnauthorized},
		{name: "expired", header: "Bearer old", target: "/", token: "old", validErr: errors.New("token is expired"), wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAuthMiddleware(t)
			c, rec := newAuthContext(tt.header, tt.target)

			if tt.token != "" {
				if tt.validErr != nil {
					fx.tokenSvc.EXPECT().ValidateToken(tt.token).Return(nil, tt.validErr)
				} else {
					fx.tokenSvc.EXPECT().ValidateToken(tt.token).Return(&service.Claims{UserID: userID, Email: "mei@campus.test"}, nil)
				}
			}

			err := fx.middleware.Authenticate(func(c echo.Context) error {
				got, ok := GetUserID(c)
				assert.True(t, ok)
				assert.Equal(t, userID, got)
				assert.Equal(t, "mei@campus.test", GetEmail(c))

				return c.NoContent(http.StatusOK)
			})(c)

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestAuthMiddleware_RequireProfile(t *testing.T) {
	userID := uuid.New()

	t.Run("stores actor", func(t *testing.T) {
		fx := createTestAuthMiddleware(t)
		c, rec := newAuthContext("", "/")
		deliverycontext.SetUserID(c, userID)

		profile := &entity.Profile{ID: userID, Role: entity.RoleCanteenStaff}
		fx.profileUC.EXPECT().GetProfile(mock.Anything, userID).Return(profile, nil)

		err := fx.middleware.RequireProfile(func(c echo.Context) error {
			actor, ok := GetActor(c)
			assert.True(t, ok)
			assert.Equal(t, entity.Actor{UserID: userID, Role: entity.RoleCanteenStaff}, actor)
			assert.Same(t, profile, deliverycontext.GetProfile(c))

			return c.NoContent(http.StatusOK)
		})(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("signup not completed", func(t *testing.T) {
		fx := createTestAuthMiddleware(t)
		c, rec := newAuthContext("", "/")
		deliverycontext.SetUserID(c, userID)

		fx.profileUC.EXPECT().GetProfile(mock.Anything, userID).Return(nil, domainerrors.ErrProfileNotFound)

		err := fx.middleware.RequireProfile(func(echo.Context) error {
			t.Fatal("next must not run")

			return nil
		})(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "PROFILE_REQUIRED")
	})
}

func TestAuthMiddleware_RequireOrderManager(t *testing.T) {
	tests := []struct {
		name       string
		role       entity.Role
		wantStatus int
	}{
		{name: "student", role: entity.RoleStudent, wantStatus: http.StatusForbidden},
		{name: "staff", role: entity.RoleCanteenStaff, wantStatus: http.StatusOK},
		{name: "admin", role: entity.RoleAdmin, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAuthMiddleware(t)
			c, rec := newAuthContext("", "/")
			deliverycontext.SetActor(c, entity.Actor{UserID: uuid.New(), Role: tt.role})

			err := fx.middleware.RequireOrderManager(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})(c)

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
