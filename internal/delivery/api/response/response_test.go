package response

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "canteen/internal/delivery/context"
	domainerrors "canteen/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	deliverycontext.SetRequestID(c, "req-1")

	return c, rec
}

func TestList_ReportsCount(t *testing.T) {
	c, rec := newContext()

	require.NoError(t, List(c, []string{"a", "b"}, 2))

	var body struct {
		Data []string `json:"data"`
		Meta Meta     `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"a", "b"}, body.Data)
	assert.Equal(t, "req-1", body.Meta.RequestID)
	require.NotNil(t, body.Meta.Count)
	assert.Equal(t, 2, *body.Meta.Count)
}

func TestError_DropsDetailsForAuthFailures(t *testing.T) {
	c, rec := newContext()

	require.NoError(t, Error(c, http.StatusForbidden, "FORBIDDEN", "no", map[string]string{"role": "student"}))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "FORBIDDEN", body.Error.Code)
	assert.Nil(t, body.Error.Details)
}

func TestHandleAppError(t *testing.T) {
	t.Run("domain error keeps its status", func(t *testing.T) {
		c, rec := newContext()

		require.NoError(t, HandleAppError(c, errors.Wrap(domainerrors.ErrOrderNotFound, "lookup")))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "ORDER_NOT_FOUND")
	})

	t.Run("deadline becomes 503", func(t *testing.T) {
		c, rec := newContext()

		require.NoError(t, HandleAppError(c, errors.WithStack(context.DeadlineExceeded)))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("unknown error is passed on", func(t *testing.T) {
		c, rec := newContext()
		cause := errors.New("boom")

		err := HandleAppError(c, cause)
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, 0, rec.Body.Len())
	})
}
