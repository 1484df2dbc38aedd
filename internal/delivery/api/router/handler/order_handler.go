package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"canteen/internal/delivery/api/middleware"
	"canteen/internal/delivery/api/response"
	"canteen/internal/delivery/api/validator"
	"canteen/internal/domain/entity"
	"canteen/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Logger  *slog.Logger
}

// OrderHandler serves order placement and the order lifecycle.
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		logger:  params.Logger,
	}
}

// AdvanceStatusRequest represents the request body for moving an order forward
type AdvanceStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ConfirmPickupRequest represents the scanned pickup QR payload
type ConfirmPickupRequest struct {
	QRData string `json:"qr_data" validate:"required"`
}

// PlaceOrder handles checkout of the caller's cart.
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Caller is not authenticated")
	}

	var req usecase.PlaceOrderInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequestWithDetails(c, "VALIDATION_ERROR", "Invalid order input", validator.FieldErrors(err))
	}

	// The write must finish even if the client goes away.
	order, err := h.orderUC.PlaceOrder(context.WithoutCancel(c.Request().Context()), actor, &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, order)
}

// ListOrders handles the role-scoped order listing. Repeated or comma-separated
// status parameters narrow the result.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Caller is not authenticated")
	}

	var statusIn []entity.OrderStatus
	for _, raw := range c.QueryParams()["status"] {
		for part := range strings.SplitSeq(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				statusIn = append(statusIn, entity.OrderStatus(part))
			}
		}
	}

	orders, err := h.orderUC.ListOrders(c.Request().Context(), actor, statusIn)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if actor.Role == entity.RoleAdmin {
		return response.ListWithBreakdown(c, orders, len(orders), entity.CountByStatus(orders))
	}

	return response.List(c, orders, len(orders))
}

// GetOrder returns one order with its items.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Caller is not authenticated")
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID format")
	}

	order, err := h.orderUC.GetOrder(c.Request().Context(), actor, orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order)
}

// AdvanceStatus moves an order one step forward.
func (h *OrderHandler) AdvanceStatus(c echo.Context) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Caller is not authenticated")
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID format")
	}

	var req AdvanceStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequestWithDetails(c, "VALIDATION_ERROR", "Invalid status input", validator.FieldErrors(err))
	}

	order, err := h.orderUC.AdvanceStatus(context.WithoutCancel(c.Request().Context()), actor, orderID, entity.OrderStatus(req.Status))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order)
}

// PickupQR renders the pickup QR code of an order as a PNG.
func (h *OrderHandler) PickupQR(c echo.Context) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Caller is not authenticated")
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID format")
	}

	png, err := h.orderUC.PickupQR(c.Request().Context(), actor, orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.PNG(c, png)
}

// ConfirmPickup marks the order in a scanned pickup QR code as delivered.
func (h *OrderHandler) ConfirmPickup(c echo.Context) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Caller is not authenticated")
	}

	var req ConfirmPickupRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid pickup input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequestWithDetails(c, "VALIDATION_ERROR", "Invalid pickup input", validator.FieldErrors(err))
	}

	order, err := h.orderUC.ConfirmPickup(context.WithoutCancel(c.Request().Context()), actor, req.QRData)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order)
}
