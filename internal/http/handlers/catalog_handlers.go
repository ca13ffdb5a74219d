package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/you/shopfront/domain"
	"github.com/you/shopfront/internal/money"
	"github.com/you/shopfront/internal/services"
)

// CatalogHandlers serves categories and paginated product listings
type CatalogHandlers struct {
	catalog   *services.CatalogService
	formatter *money.Formatter
}

// NewCatalogHandlers creates new catalog handlers
func NewCatalogHandlers(catalog *services.CatalogService, formatter *money.Formatter) *CatalogHandlers {
	return &CatalogHandlers{catalog: catalog, formatter: formatter}
}

// Categories lists all product categories
func (h *CatalogHandlers) Categories(c *gin.Context) {
	categories, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		respondBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}

// Products serves one page of a category's products. A request superseded by
// a newer one answers 409; clients treat that as "ignore this response".
func (h *CatalogHandlers) Products(c *gin.Context) {
	categoryID, err := strconv.ParseInt(c.Query("categoryId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "categoryId is required"})
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "0"))

	result, err := h.catalog.LoadProducts(c.Request.Context(), categoryID, page, size)
	if err != nil {
		if errors.Is(err, domain.ErrFetchSuperseded) {
			c.JSON(http.StatusConflict, gin.H{"status": "superseded"})
			return
		}
		respondBackendError(c, err)
		return
	}

	products := make([]gin.H, 0, len(result.Content))
	for _, p := range result.Content {
		products = append(products, gin.H{
			"id":            p.ID,
			"title":         p.Title,
			"image_url":     p.ImageURL,
			"selling_price": p.SellingPrice,
			"display_price": h.formatter.Format(p.SellingPrice),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"content":     products,
			"page":        page,
			"total_pages": result.TotalPages,
		},
	})
}
