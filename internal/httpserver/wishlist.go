package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type addWishlistItemRequest struct {
	ProductID string `json:"product_id"`
}

func (h *handlers) listWishlist(c *gin.Context) {
	entries, err := h.deps.WishlistSvc.List(c.Request.Context(), sessionID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	out := make([]wishlistEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toWishlistEntry(e))
	}
	c.JSON(http.StatusOK, out)
}

func (h *handlers) addWishlistItem(c *gin.Context) {
	var req addWishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	entry, err := h.deps.WishlistSvc.Add(c.Request.Context(), sessionID(c), req.ProductID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toWishlistEntry(*entry))
}

func (h *handlers) removeWishlistItem(c *gin.Context) {
	if err := h.deps.WishlistSvc.Remove(c.Request.Context(), sessionID(c), c.Param("productId")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) checkWishlistItem(c *gin.Context) {
	ok, err := h.deps.WishlistSvc.Contains(c.Request.Context(), sessionID(c), c.Param("productId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"in_wishlist": ok})
}
