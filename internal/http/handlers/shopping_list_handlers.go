package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/shopfront/domain"
	"github.com/you/shopfront/internal/services"
)

// ShoppingListHandlers serves the handwritten shopping list feature
type ShoppingListHandlers struct {
	list *services.ShoppingListService
	cart *services.CartStore
}

// NewShoppingListHandlers creates new shopping list handlers
func NewShoppingListHandlers(list *services.ShoppingListService, cart *services.CartStore) *ShoppingListHandlers {
	return &ShoppingListHandlers{list: list, cart: cart}
}

// BuildRequest carries the confirmed shopping list lines
type BuildRequest struct {
	Lines []string `json:"lines" binding:"required"`
}

// Extract accepts an image upload and returns the recognized lines for the
// user to review before anything touches the cart
func (h *ShoppingListHandlers) Extract(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "An image file is required"})
		return
	}
	defer file.Close()

	lines, err := h.list.ExtractLines(c.Request.Context(), header.Filename, file)
	if err != nil {
		respondBackendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"lines": lines,
		},
	})
}

// Build searches the catalog with the confirmed lines and returns the
// resulting cart
func (h *ShoppingListHandlers) Build(c *gin.Context) {
	var req BuildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.list.BuildCart(c.Request.Context(), req.Lines); err != nil {
		if errors.Is(err, domain.ErrNoKeywords) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "The list has no usable lines"})
			return
		}
		respondBackendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"items": h.cart.Items(),
		},
	})
}
