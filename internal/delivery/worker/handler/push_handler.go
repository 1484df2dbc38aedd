// Package handler decodes notification events arriving at the notifier and
// dispatches them to device push.
package handler

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"canteen/config"
	deliverycontext "canteen/internal/delivery/context"
	"canteen/internal/domain/constants"
	"canteen/internal/domain/service"
	"canteen/internal/infra/pubsub"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// PushHandler receives Pub/Sub push deliveries of notification events.
type PushHandler struct {
	verifier   *pushVerifier
	logger     *slog.Logger
	dispatcher *Dispatcher
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config     *config.Config
	Logger     *slog.Logger
	Dispatcher *Dispatcher
}

// NewPushHandler enables OIDC verification for the google provider outside
// the develop environment.
func NewPushHandler(params PushHandlerParams) *PushHandler {
	h := &PushHandler{
		logger:     params.Logger,
		dispatcher: params.Dispatcher,
	}

	cfg := params.Config.PubSub
	if cfg != nil && cfg.Provider == constants.PubSubProviderGoogle && params.Config.Env.Env != constants.EnvDevelop {
		h.verifier = &pushVerifier{
			audience:       cfg.PushAudience,
			serviceAccount: cfg.PushServiceAccount,
			validate:       idtoken.Validate,
		}
	}

	return h
}

// HandlePush answers 2xx to acknowledge, 503 to have Pub/Sub redeliver and
// 4xx for deliveries that can never succeed.
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifier != nil {
		if err := h.verifier.verify(c.Request()); err != nil {
			h.logger.Warn("[Worker] Rejected push delivery", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg pubsub.PushMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Worker] Push message data is not base64", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	event, err := DecodeEvent(data)
	if err != nil {
		h.logger.Error("[Worker] Failed to parse notification event",
			slog.String("message_id", pushMsg.Message.MessageID),
			slog.Any("error", err),
		)

		return c.NoContent(http.StatusBadRequest)
	}

	ctx, reqLogger := deliverycontext.Scope(ctx, h.logger, extractRequestID(ctx, pushMsg.Message.Attributes, event))
	reqLogger.Info("[Worker] Processing notification event",
		slog.String("notification_id", event.NotificationID),
		slog.String("user_id", event.UserID),
		slog.String("message_id", pushMsg.Message.MessageID),
	)

	if err := h.dispatcher.Dispatch(ctx, event); err != nil {
		retryable := IsRetryableError(err)
		reqLogger.Error("[Worker] Failed to process notification",
			slog.String("notification_id", event.NotificationID),
			slog.Any("error", err),
			slog.Bool("retryable", retryable),
		)
		if retryable {
			return c.NoContent(http.StatusServiceUnavailable)
		}
	}

	return c.NoContent(http.StatusOK)
}

// extractRequestID prefers the message attribute, then the event body, then
// the id the middleware bound to ctx.
func extractRequestID(ctx context.Context, attributes map[string]string, event *service.NotificationEvent) string {
	if requestID := attributes["request_id"]; requestID != "" {
		return deliverycontext.NormalizeRequestID(requestID)
	}
	if event.RequestID != "" {
		return deliverycontext.NormalizeRequestID(event.RequestID)
	}
	if requestID := deliverycontext.RequestIDFrom(ctx); requestID != "" {
		return requestID
	}

	return deliverycontext.NewRequestID()
}

type tokenValidator func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// pushVerifier checks the OIDC token Pub/Sub attaches to authenticated push
// subscriptions.
type pushVerifier struct {
	audience       string
	serviceAccount string
	validate       tokenValidator
}

func (v *pushVerifier) verify(req *http.Request) error {
	token, ok := strings.CutPrefix(req.Header.Get(echo.HeaderAuthorization), "Bearer ")
	if !ok || token == "" {
		return errors.New("missing bearer token")
	}

	audience := v.audience
	if audience == "" {
		scheme := "https"
		if req.TLS == nil {
			scheme = "http"
		}
		audience = fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)
	}

	payload, err := v.validate(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "invalid push token")
	}
	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("unexpected issuer %q", payload.Issuer)
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok && !verified {
		return errors.New("push identity email not verified")
	}
	if v.serviceAccount != "" {
		if email, _ := payload.Claims["email"].(string); email != v.serviceAccount {
			return errors.Errorf("unexpected push identity %q", email)
		}
	}

	return nil
}
