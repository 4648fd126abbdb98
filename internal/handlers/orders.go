package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/commencementdepot/storefront-orders-service/internal/logging"
	"github.com/commencementdepot/storefront-orders-service/internal/service"
)

// ConfirmOrder handles POST /confirm-order
func (h *Handlers) ConfirmOrder(c *gin.Context) {
	var req service.ConfirmOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind request", logging.Fields{"error": err.Error()})
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.orderService.ConfirmOrder(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetReceipt handles GET /orders/:id/receipt
func (h *Handlers) GetReceipt(c *gin.Context) {
	orderID := c.Param("id")

	html, err := h.orderService.GetReceipt(c.Request.Context(), orderID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// TestEmail handles GET /test-email
func (h *Handlers) TestEmail(c *gin.Context) {
	if err := h.orderService.SendTestEmail(c.Request.Context()); err != nil {
		h.logger.Error("Test email failed", logging.Fields{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send test email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Test email sent"})
}
