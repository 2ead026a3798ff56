package handlers

import (
	"errors"
	"io"
	"net/http"

	"ceylonescape/models"
	"ceylonescape/services/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler exposes checkout creation and the provider webhook.
type PaymentHandler struct {
	Service payment.Service
	Logger  *zap.Logger
}

// NewPaymentHandler creates a PaymentHandler.
func NewPaymentHandler(svc payment.Service, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{Service: svc, Logger: logger}
}

// CreateCheckoutSession handles POST /create-checkout-session.
func (h *PaymentHandler) CreateCheckoutSession(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"errors": []gin.H{{"msg": "Invalid request body"}},
		})
		return
	}

	url, err := h.Service.CreateCheckoutSession(c.Request.Context(), req)
	if err != nil {
		var ve *payment.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{
				"status": "error",
				"errors": []gin.H{{"msg": ve.Message, "param": ve.Field}},
			})
			return
		}
		h.Logger.Error("Checkout session error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Internal Server Error",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// HandleWebhook handles POST /api/bookings/webhook. The body is passed to the
// reconciler as raw bytes; signature verification needs the exact payload the
// provider signed, so nothing may parse it first.
func (h *PaymentHandler) HandleWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.Logger.Error("Failed to read webhook body", zap.Error(err))
		c.String(http.StatusBadRequest, "Webhook Error: could not read body")
		return
	}

	sig := c.GetHeader("Stripe-Signature")
	if err := h.Service.HandleWebhook(c.Request.Context(), payload, sig); err != nil {
		if errors.Is(err, payment.ErrSignatureInvalid) {
			h.Logger.Warn("Webhook signature verification failed", zap.Error(err))
			c.String(http.StatusBadRequest, "Webhook Error: %v", err)
			return
		}
		// Processing failure after a valid signature: let the provider retry.
		h.Logger.Error("Webhook processing error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "webhook processing failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
