package httpserver

import (
	"net/http"

	reviewsvc "storefront/internal/service/review"
	"github.com/gin-gonic/gin"
)

type createReviewRequest struct {
	ProductID string `json:"product_id"`
	reviewsvc.Input
}

func (h *handlers) listProductReviews(c *gin.Context) {
	reviews, err := h.deps.ReviewSvc.ListByProduct(c.Request.Context(), c.Param("productId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(reviews))
}

func (h *handlers) createReview(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	review, err := h.deps.ReviewSvc.Create(c.Request.Context(), sessionID(c), req.ProductID, req.Input)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (h *handlers) updateReview(c *gin.Context) {
	var in reviewsvc.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	review, err := h.deps.ReviewSvc.Update(c.Request.Context(), sessionID(c), c.Param("id"), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *handlers) deleteReview(c *gin.Context) {
	if err := h.deps.ReviewSvc.Delete(c.Request.Context(), sessionID(c), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
