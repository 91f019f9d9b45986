package httpserver

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	productrepo "storefront/internal/repository/product"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func (h *handlers) listProducts(c *gin.Context) {
	filter, err := parseProductFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	products, err := h.deps.ProductSvc.List(c.Request.Context(), filter)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductList(products))
}

func (h *handlers) listProductsByCategory(c *gin.Context) {
	products, err := h.deps.ProductSvc.ListByCategory(c.Request.Context(), c.Param("categoryId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductList(products))
}

func (h *handlers) getProduct(c *gin.Context) {
	p, err := h.deps.ProductSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if !p.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*p))
}

func (h *handlers) listCategories(c *gin.Context) {
	cats, err := h.deps.CategorySvc.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(cats))
}

func (h *handlers) getCategory(c *gin.Context) {
	cat, err := h.deps.CategorySvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *handlers) listSubcategories(c *gin.Context) {
	cats, err := h.deps.CategorySvc.Subcategories(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(cats))
}

// parseProductFilter reads the list query string. Prices are currency amounts
// ("12.50") and are converted to cents.
func parseProductFilter(c *gin.Context) (productrepo.ListFilter, error) {
	filter := productrepo.ListFilter{
		CategoryID: strings.TrimSpace(c.Query("category_id")),
		Search:     strings.TrimSpace(c.Query("q")),
		Sort:       c.Query("sort"),
	}
	var err error
	if filter.MinPriceCents, err = parseAmount(c, "min_price"); err != nil {
		return filter, err
	}
	if filter.MaxPriceCents, err = parseAmount(c, "max_price"); err != nil {
		return filter, err
	}
	if filter.Limit, err = parseNonNegative(c, "limit"); err != nil {
		return filter, err
	}
	if filter.Offset, err = parseNonNegative(c, "offset"); err != nil {
		return filter, err
	}
	return filter, nil
}

func parseAmount(c *gin.Context, key string) (*int64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return nil, fmt.Errorf("invalid %s", key)
	}
	cents := d.Shift(2).Round(0).IntPart()
	return &cents, nil
}

func parseNonNegative(c *gin.Context, key string) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
