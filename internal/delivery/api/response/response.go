// Package response renders the JSON envelope every API endpoint answers with.
package response

import (
	"context"
	"net/http"

	deliverycontext "canteen/internal/delivery/context"
	domainerrors "canteen/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SuccessResponse wraps the payload of a successful call.
type SuccessResponse struct {
	Data any   `json:"data"`
	Meta *Meta `json:"meta"`
}

// ErrorResponse wraps a failed call.
type ErrorResponse struct {
	Error *ErrorInfo `json:"error"`
	Meta  *Meta      `json:"meta"`
}

// ErrorInfo is the machine-readable part of a failure.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Meta carries the request id and, for collections, the item count and an
// optional breakdown of it.
type Meta struct {
	RequestID string `json:"request_id,omitempty"`
	Count     *int   `json:"count,omitempty"`
	Breakdown any    `json:"breakdown,omitempty"`
}

func meta(c echo.Context) *Meta {
	return &Meta{RequestID: deliverycontext.RequestID(c)}
}

// Success writes data under the given status.
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, SuccessResponse{Data: data, Meta: meta(c)})
}

// Created writes a 201 with the new resource.
func Created(c echo.Context, data any) error {
	return Success(c, http.StatusCreated, data)
}

// List writes a collection together with its size. A nil slice is rendered
// by the caller as an empty one.
func List(c echo.Context, items any, count int) error {
	m := meta(c)
	m.Count = &count

	return c.JSON(http.StatusOK, SuccessResponse{Data: items, Meta: m})
}

// ListWithBreakdown is List plus per-group counts, such as orders per status.
func ListWithBreakdown(c echo.Context, items any, count int, breakdown any) error {
	m := meta(c)
	m.Count = &count
	m.Breakdown = breakdown

	return c.JSON(http.StatusOK, SuccessResponse{Data: items, Meta: m})
}

// PNG writes raw image bytes, used for pickup codes.
func PNG(c echo.Context, image []byte) error {
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")

	return c.Blob(http.StatusOK, "image/png", image)
}

// Error writes a failure envelope. Details are dropped for server errors and
// for authentication or authorization failures.
func Error(c echo.Context, statusCode int, errorCode string, message string, details any) error {
	if statusCode >= http.StatusInternalServerError ||
		statusCode == http.StatusUnauthorized ||
		statusCode == http.StatusForbidden {
		details = nil
	}

	return c.JSON(statusCode, ErrorResponse{
		Error: &ErrorInfo{Code: errorCode, Message: message, Details: details},
		Meta:  meta(c),
	})
}

// BadRequest returns a 400.
func BadRequest(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusBadRequest, errorCode, message, nil)
}

// BadRequestWithDetails returns a 400 with per-field details.
func BadRequestWithDetails(c echo.Context, errorCode string, message string, details any) error {
	return Error(c, http.StatusBadRequest, errorCode, message, details)
}

// BindingError reports a body or parameter that could not be decoded.
func BindingError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusBadRequest, errorCode, message, nil)
}

func Unauthorized(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusUnauthorized, errorCode, message, nil)
}

func Forbidden(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusForbidden, errorCode, message, nil)
}

func InternalServerError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusInternalServerError, errorCode, message, nil)
}

// HandleAppError renders domain errors with their own status and code. A
// store call that ran out of time becomes a 503; anything else is returned
// for the central error handler.
func HandleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), nil)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Error(c, http.StatusServiceUnavailable, "TIMEOUT", "the canteen is busy, try again", nil)
	}

	return errors.WithStack(err)
}
