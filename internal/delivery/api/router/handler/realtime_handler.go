package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"canteen/internal/delivery/api/middleware"
	"canteen/internal/delivery/api/response"
	deliverycontext "canteen/internal/delivery/context"
	"canteen/internal/domain/entity"
	"canteen/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"golang.org/x/net/websocket"
)

var errUnsupportedTable = errors.New("unsupported realtime table")

// RealtimeHandlerParams holds dependencies for RealtimeHandler, injected by Fx.
type RealtimeHandlerParams struct {
	fx.In

	ChangeFeed service.ChangeFeed
	Logger     *slog.Logger
}

// RealtimeHandler streams change events over a websocket.
type RealtimeHandler struct {
	changeFeed service.ChangeFeed
	logger     *slog.Logger
}

// NewRealtimeHandler is the constructor for RealtimeHandler
func NewRealtimeHandler(params RealtimeHandlerParams) *RealtimeHandler {
	return &RealtimeHandler{
		changeFeed: params.ChangeFeed,
		logger:     params.Logger,
	}
}

// StreamEnd is the last frame sent before the server closes the stream.
type StreamEnd struct {
	Closed bool   `json:"closed"`
	Reason string `json:"reason,omitempty"`
}

// Stream upgrades to a websocket and forwards the change events the caller may
// see: their own notifications, and orders scoped by role. The client should
// re-fetch whenever an event arrives or the stream ends.
func (h *RealtimeHandler) Stream(c echo.Context) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Caller is not authenticated")
	}

	filter, err := changeFilterFor(actor, c.QueryParam("table"), c.QueryParam("event"))
	if err != nil {
		return response.BadRequest(c, "INVALID_SUBSCRIPTION", err.Error())
	}

	logger := deliverycontext.LoggerFrom(c.Request().Context(), h.logger)

	sub, err := h.changeFeed.Subscribe(c.Request().Context(), filter)
	if err != nil {
		return response.BadRequest(c, "INVALID_SUBSCRIPTION", err.Error())
	}
	defer sub.Close()

	server := websocket.Server{
		// Origin checks are left to the CORS middleware.
		Handshake: func(*websocket.Config, *http.Request) error { return nil },
		Handler: func(ws *websocket.Conn) {
			defer ws.Close()

			// Any read error means the client went away.
			go func() {
				var discard string
				for {
					if err := websocket.Message.Receive(ws, &discard); err != nil {
						sub.Close()

						return
					}
				}
			}()

			for event := range sub.Events() {
				if err := websocket.JSON.Send(ws, event); err != nil {
					logger.Debug("Realtime client write failed", slog.Any("error", err))

					return
				}
			}

			end := StreamEnd{Closed: true}
			if err := sub.Err(); err != nil {
				end.Reason = err.Error()
			}
			_ = websocket.JSON.Send(ws, end)
		},
	}

	logger.Debug("Realtime stream opened",
		slog.String("table", filter.Table),
		slog.String("column", filter.Column),
	)
	server.ServeHTTP(c.Response(), c.Request())

	return nil
}

// changeFilterFor narrows a subscription to the rows the actor may read.
func changeFilterFor(actor entity.Actor, table, event string) (entity.ChangeFilter, error) {
	mask, err := parseEventMask(event)
	if err != nil {
		return entity.ChangeFilter{}, err
	}

	filter := entity.ChangeFilter{Table: table, Mask: mask}

	switch table {
	case entity.TableNotifications:
		filter.Column = "user_id"
		filter.Value = actor.UserID.String()
	case entity.TableOrders:
		switch actor.Role {
		case entity.RoleStudent:
			filter.Column = "student_id"
			filter.Value = actor.UserID.String()
		case entity.RoleCanteenStaff, entity.RoleAdmin:
			// Unfiltered: the ready to delivered update is what drops an order
			// from the staff queue.
		default:
			return entity.ChangeFilter{}, errors.WithStack(entity.ErrUnknownRole)
		}
	default:
		return entity.ChangeFilter{}, errors.Wrapf(errUnsupportedTable, "%q", table)
	}

	return filter, nil
}

func parseEventMask(event string) (entity.EventMask, error) {
	if event == "" || event == "*" {
		return entity.MaskAll, nil
	}

	var mask entity.EventMask
	for part := range strings.SplitSeq(event, ",") {
		switch entity.ChangeType(strings.ToUpper(strings.TrimSpace(part))) {
		case entity.ChangeInsert:
			mask |= entity.MaskInsert
		case entity.ChangeUpdate:
			mask |= entity.MaskUpdate
		case entity.ChangeDelete:
			mask |= entity.MaskDelete
		default:
			return 0, errors.Errorf("unsupported event %q", part)
		}
	}

	return mask, nil
}
