package httpserver

import (
	"net/http"

	"storefront/internal/service/checkout"
	"github.com/gin-gonic/gin"
)

func (h *handlers) submitCheckout(c *gin.Context) {
	var form checkout.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	order, err := h.deps.CheckoutSvc.Submit(c.Request.Context(), sessionID(c), form)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order_id": order.ID, "status": order.Status})
}

func (h *handlers) checkoutStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.deps.CheckoutSvc.Status(sessionID(c)))
}
