package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/interviewme/backend/internal/core/domain"
)

// WebhookIDContextKey is where the signature middleware stores the verified
// delivery id.
const WebhookIDContextKey = "webhook_id"

// EventDispatcher is the interface the handler uses to hand over events.
// Dispatch returns once the event has been processed.
type EventDispatcher interface {
	Dispatch(ctx context.Context, event domain.IdentityEvent) error
}

// WebhookHandler receives identity provider user events.
type WebhookHandler struct {
	dispatcher EventDispatcher
	log        zerolog.Logger
}

func NewWebhookHandler(dispatcher EventDispatcher, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{dispatcher: dispatcher, log: log}
}

// Identity handles POST /webhooks/identity. A non-2xx answer makes the
// provider redeliver.
//
// @Summary      Receive identity provider user events
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        svix-id         header    string  true  "Delivery id"
// @Param        svix-timestamp  header    string  true  "Unix timestamp"
// @Param        svix-signature  header    string  true  "v1,<base64 signature>"
// @Success      200  {object}  successResponse{data=webhookAck}
// @Failure      400  {object}  failResponse
// @Failure      401  {object}  failResponse
// @Failure      500  {object}  failResponse
// @Router       /webhooks/identity [post]
func (h *WebhookHandler) Identity(c echo.Context) error {
	var payload identityWebhookPayload
	if err := json.NewDecoder(c.Request().Body).Decode(&payload); err != nil {
		return domain.NewValidationError("body", "Invalid webhook payload")
	}
	if payload.Type == "" {
		return domain.NewValidationError("type", "Event type is required")
	}

	deliveryID, _ := c.Get(WebhookIDContextKey).(string)
	ev := toIdentityEvent(deliveryID, payload)

	if err := h.dispatcher.Dispatch(c.Request().Context(), ev); err != nil {
		h.log.Error().Err(err).
			Str("delivery_id", deliveryID).
			Str("type", ev.Type).
			Msg("webhook processing failed")
		return fmt.Errorf("webhook %s: %w", ev.Type, err)
	}

	return success(c, http.StatusOK, webhookAck{Received: true})
}
