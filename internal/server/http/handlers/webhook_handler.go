package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cyna-app/commerce/internal/domain/model"
	"github.com/cyna-app/commerce/internal/server/http/dto"
)

// SignatureHeader carries the hex HMAC-SHA256 of the raw webhook body.
const SignatureHeader = "X-Payment-Signature"

// Event types the provider emits for the payment objects in scope.
const (
	eventIntentSucceeded = "payment_intent.succeeded"
	eventIntentFailed    = "payment_intent.payment_failed"
	eventIntentCanceled  = "payment_intent.canceled"
	eventChargeRefunded  = "charge.refunded"
	eventChargePartially = "charge.partially_refunded"
)

// WebhookHandler ingests provider payment notifications.
type WebhookHandler struct {
	facade WebhookFacade
	secret string
	logger *slog.Logger
}

// NewWebhookHandler constructs WebhookHandler.
func NewWebhookHandler(facade WebhookFacade, secret string, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{facade: facade, secret: secret, logger: logger}
}

// Handle processes POST /api/webhooks/payment. The provider signs the raw
// body; an invalid signature is rejected before any parsing.
func (h *WebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if !h.verifySignature(body, c.GetHeader(SignatureHeader)) {
		c.Status(http.StatusUnauthorized)
		return
	}

	var event dto.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	status, relevant := statusForEvent(event)
	if !relevant {
		h.logger.Info("webhook event ignored", slog.String("type", event.Type), slog.String("event_id", event.ID))
		c.Status(http.StatusOK)
		return
	}

	object := event.Data.Object
	if object.ID == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	var metadata model.Metadata
	for key, val := range object.Metadata {
		metadata.Annotate(key, val)
	}

	var method *model.PaymentMethod
	if pm := object.PaymentMethod; pm != nil {
		method = &model.PaymentMethod{Type: pm.Type, Brand: pm.Brand, LastFour: pm.LastFour, Label: pm.Label}
	}

	order, err := h.facade.ApplyPaymentUpdate(c.Request.Context(), model.PaymentUpdate{
		PaymentRef:    object.ID,
		Status:        status,
		Amount:        object.Amount,
		Currency:      object.Currency,
		Metadata:      metadata,
		PaymentMethod: method,
	})
	if err != nil {
		h.logger.Error("webhook apply failed", slog.String("event_id", event.ID), slog.String("error", err.Error()))
		c.Status(http.StatusInternalServerError)
		return
	}

	h.logger.Info("webhook applied",
		slog.String("type", event.Type),
		slog.String("payment_ref", object.ID),
		slog.Int64("order_id", order.ID),
		slog.String("status", string(order.Status)),
	)
	c.Status(http.StatusOK)
}

func (h *WebhookHandler) verifySignature(body []byte, signature string) bool {
	if h.secret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// statusForEvent maps a provider event type onto the status to store. The
// object's own status wins when the event carries one.
func statusForEvent(event dto.WebhookEvent) (model.OrderStatus, bool) {
	if object := event.Data.Object; object.Status != "" {
		switch event.Type {
		case eventIntentSucceeded, eventIntentFailed, eventIntentCanceled, eventChargeRefunded, eventChargePartially:
			return model.OrderStatus(object.Status), true
		}
		return "", false
	}

	switch event.Type {
	case eventIntentSucceeded:
		return model.OrderStatusPaid, true
	case eventIntentFailed:
		return model.OrderStatusFailed, true
	case eventIntentCanceled:
		return model.OrderStatusCancelled, true
	case eventChargeRefunded:
		return model.OrderStatusRefunded, true
	case eventChargePartially:
		return model.OrderStatusPartiallyRefunded, true
	}
	return "", false
}
