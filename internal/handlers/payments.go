package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/commencementdepot/storefront-orders-service/internal/logging"
	"github.com/commencementdepot/storefront-orders-service/internal/service"
)

// CreatePaymentIntent handles POST /create-payment-intent
func (h *Handlers) CreatePaymentIntent(c *gin.Context) {
	var req service.CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind payment intent request", logging.Fields{"error": err.Error()})
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.orderService.CreatePaymentIntent(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// PaymentWebhook handles POST /webhook
func (h *Handlers) PaymentWebhook(c *gin.Context) {
	signature := c.GetHeader("X-Payment-Signature")

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.Error("Failed to read webhook payload", logging.Fields{"error": err.Error()})
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	if err := h.orderService.HandlePaymentWebhook(c.Request.Context(), payload, signature); err != nil {
		h.logger.Error("Webhook processing failed", logging.Fields{"error": err.Error()})
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
