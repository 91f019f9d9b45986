package httpserver

import (
	"errors"
	"net/http"

	"storefront/internal/domain"
	"storefront/internal/service/cart"
	"storefront/internal/service/checkout"
	ordersvc "storefront/internal/service/order"
	productsvc "storefront/internal/service/product"
	reviewsvc "storefront/internal/service/review"
	"storefront/internal/service/wishlist"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *handlers) writeError(c *gin.Context, err error) {
	var verr *checkout.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "errors": verr.Errors})
	case errors.Is(err, domain.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": "insufficient stock"})
	case errors.Is(err, checkout.ErrOrderFailed):
		h.logger.Warn("http: checkout failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": checkout.ErrOrderFailed.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrMissingProduct),
		errors.Is(err, wishlist.ErrMissingProduct),
		errors.Is(err, productsvc.ErrInvalidPriceRange),
		errors.Is(err, reviewsvc.ErrInvalidRating),
		errors.Is(err, reviewsvc.ErrCommentLength):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, cart.ErrProductUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, checkout.ErrSubmissionInFlight),
		errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ordersvc.ErrOrderNotCancellable):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, reviewsvc.ErrNotPurchased):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		h.logger.Error("http: internal error", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
