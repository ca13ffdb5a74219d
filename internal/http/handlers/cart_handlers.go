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

// CartHandlers serves the mirrored cart and its mutations
type CartHandlers struct {
	cart      *services.CartStore
	formatter *money.Formatter
}

// NewCartHandlers creates new cart handlers
func NewCartHandlers(cart *services.CartStore, formatter *money.Formatter) *CartHandlers {
	return &CartHandlers{cart: cart, formatter: formatter}
}

// AddItemRequest carries an add-to-cart mutation
type AddItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity"`
}

// Get returns the mirrored cart with the running subtotal
func (h *CartHandlers) Get(c *gin.Context) {
	if err := h.cart.Refresh(c.Request.Context()); err != nil {
		respondBackendError(c, err)
		return
	}
	h.respondCart(c)
}

// AddItem adds a product to the cart. Quantity defaults to 1.
func (h *CartHandlers) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	if err := h.cart.AddItem(c.Request.Context(), req.ProductID, req.Quantity); err != nil {
		h.cartError(c, err)
		return
	}
	h.respondCart(c)
}

// Increment raises an item's quantity by one
func (h *CartHandlers) Increment(c *gin.Context) {
	item, ok := h.findItem(c)
	if !ok {
		return
	}

	if err := h.cart.UpdateQuantity(c.Request.Context(), item.ID, item.Quantity+1); err != nil {
		h.cartError(c, err)
		return
	}
	h.respondCart(c)
}

// Decrement lowers an item's quantity by one. At quantity 1 it does nothing;
// removal is a separate, explicit action.
func (h *CartHandlers) Decrement(c *gin.Context) {
	item, ok := h.findItem(c)
	if !ok {
		return
	}

	if item.Quantity <= 1 {
		h.respondCart(c)
		return
	}

	if err := h.cart.UpdateQuantity(c.Request.Context(), item.ID, item.Quantity-1); err != nil {
		h.cartError(c, err)
		return
	}
	h.respondCart(c)
}

// RemoveItem deletes one cart line
func (h *CartHandlers) RemoveItem(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}

	if err := h.cart.RemoveItem(c.Request.Context(), itemID); err != nil {
		h.cartError(c, err)
		return
	}
	h.respondCart(c)
}

// Clear empties the cart
func (h *CartHandlers) Clear(c *gin.Context) {
	if err := h.cart.Clear(c.Request.Context()); err != nil {
		h.cartError(c, err)
		return
	}
	h.respondCart(c)
}

func (h *CartHandlers) findItem(c *gin.Context) (domain.CartItem, bool) {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return domain.CartItem{}, false
	}
	for _, item := range h.cart.Items() {
		if item.ID == itemID {
			return item, true
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Item not in cart"})
	return domain.CartItem{}, false
}

func (h *CartHandlers) respondCart(c *gin.Context) {
	items := h.cart.Items()
	lines := make([]gin.H, 0, len(items))
	for _, item := range items {
		lines = append(lines, gin.H{
			"id":            item.ID,
			"product":       item.Product,
			"quantity":      item.Quantity,
			"display_price": h.formatter.Format(item.Product.SellingPrice),
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"items":            lines,
			"subtotal":         h.cart.Subtotal(),
			"display_subtotal": h.formatter.Format(h.cart.Subtotal()),
		},
	})
}

func (h *CartHandlers) cartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be at least 1"})
	case errors.Is(err, domain.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not signed in"})
	default:
		respondBackendError(c, err)
	}
}
