package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"canteen/internal/domain/entity"
	domainerrors "canteen/internal/domain/errors"
	mockUC "canteen/internal/mocks/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestNotificationHandler(t *testing.T) (*NotificationHandler, *mockUC.MockNotificationUsecase) {
	notificationUC := mockUC.NewMockNotificationUsecase(t)

	return NewNotificationHandler(NotificationHandlerParams{
		NotificationUC: notificationUC,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}), notificationUC
}

func TestNotificationHandler_UnreadCount(t *testing.T) {
	h, notificationUC := newTestNotificationHandler(t)
	userID := uuid.New()

	c, rec := newTestContext(http.MethodGet, "/api/v1/notifications/unread-count", "")
	withActor(c, entity.Actor{UserID: userID, Role: entity.RoleStudent})

	notificationUC.EXPECT().UnreadCount(mock.Anything, userID).Return(2, nil)

	require.NoError(t, h.UnreadCount(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":2}`, string(decodeEnvelope(t, rec).Data))
}

func TestNotificationHandler_MarkRead(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "marked", wantCode: http.StatusNoContent},
		{name: "not the caller's notification", err: domainerrors.ErrNotificationNotFound, wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, notificationUC := newTestNotificationHandler(t)
			userID := uuid.New()
			notificationID := uuid.New()

			c, rec := newTestContext(http.MethodPost, "/api/v1/notifications/"+notificationID.String()+"/read", "")
			c.SetParamNames("id")
			c.SetParamValues(notificationID.String())
			withActor(c, entity.Actor{UserID: userID, Role: entity.RoleStudent})

			notificationUC.EXPECT().MarkRead(mock.Anything, userID, notificationID).Return(tt.err)

			require.NoError(t, h.MarkRead(c))
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestNotificationHandler_MarkAllRead(t *testing.T) {
	h, notificationUC := newTestNotificationHandler(t)
	userID := uuid.New()

	c, rec := newTestContext(http.MethodPost, "/api/v1/notifications/read-all", "")
	withActor(c, entity.Actor{UserID: userID, Role: entity.RoleCanteenStaff})

	notificationUC.EXPECT().MarkAllRead(mock.Anything, userID).Return(5, nil)

	require.NoError(t, h.MarkAllRead(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"marked":5}`, string(decodeEnvelope(t, rec).Data))
}

func TestNotificationHandler_ListNotifications_RequiresUser(t *testing.T) {
	h, _ := newTestNotificationHandler(t)

	c, rec := newTestContext(http.MethodGet, "/api/v1/notifications", "")

	require.NoError(t, h.ListNotifications(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
