package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"canteen/config"
	deliverycontext "canteen/internal/delivery/context"
	"canteen/internal/domain/entity"
	domainerrors "canteen/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		header string
		keep   bool
	}{
		{name: "caller id kept", header: "trace-7", keep: true},
		{name: "missing id minted"},
		{name: "malformed id replaced", header: "bad id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(deliverycontext.HeaderXRequestID, tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var seen string
			handler := NewRequestIDMiddleware(slog.Default()).Process(func(c echo.Context) error {
				seen = deliverycontext.RequestIDFrom(c.Request().Context())

				return nil
			})
			require.NoError(t, handler(c))

			assert.NotEmpty(t, seen)
			assert.Equal(t, seen, rec.Header().Get(deliverycontext.HeaderXRequestID))
			assert.Equal(t, seen, deliverycontext.RequestID(c))
			if tt.keep {
				assert.Equal(t, tt.header, seen)
			} else {
				assert.NotEqual(t, tt.header, seen)
			}
		})
	}
}

func TestLoggerMiddleware_LevelsAndQuietPaths(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		debug   bool
		handler echo.HandlerFunc
		want    string
	}{
		{
			name:    "success hidden outside debug",
			path:    "/api/v1/menu",
			handler: func(c echo.Context) error { return c.NoContent(http.StatusOK) },
		},
		{
			name:    "success shown in debug",
			path:    "/api/v1/menu",
			debug:   true,
			handler: func(c echo.Context) error { return c.NoContent(http.StatusOK) },
			want:    "level=INFO",
		},
		{
			name:    "app error uses its status",
			path:    "/api/v1/orders/:id",
			handler: func(echo.Context) error { return errors.WithStack(domainerrors.ErrOrderNotFound) },
			want:    "status=404",
		},
		{
			name:    "unknown error is a 500",
			path:    "/api/v1/orders",
			handler: func(echo.Context) error { return errors.New("boom") },
			want:    "level=ERROR",
		},
		{
			name:    "quiet path never logged",
			path:    "/health",
			handler: func(echo.Context) error { return errors.New("boom") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
			cfg := &config.Config{}
			cfg.Env.Debug = tt.debug

			e := echo.New()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
			c.SetPath(tt.path)

			_ = NewLoggerMiddleware(logger, cfg, "/health").Handle(tt.handler)(c)

			if tt.want == "" {
				assert.Empty(t, buf.String())

				return
			}
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestLoggerMiddleware_RecordsActor(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	userID := uuid.New()

	c := echo.New().NewContext(httptest.NewRequest(http.MethodPatch, "/", nil), httptest.NewRecorder())
	c.SetPath("/api/v1/orders/:id/status")
	deliverycontext.SetActor(c, entity.Actor{UserID: userID, Role: entity.RoleCanteenStaff})

	handler := NewLoggerMiddleware(logger, &config.Config{}).Handle(func(echo.Context) error {
		return errors.WithStack(domainerrors.ErrInvalidTransition)
	})
	_ = handler(c)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "canteen_staff", line["role"])
	assert.Equal(t, userID.String(), line["user_id"])
	assert.EqualValues(t, http.StatusConflict, line["status"])
}
