package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/shopfront/domain"
	"github.com/you/shopfront/internal/services"
)

// CheckoutHandlers serves the order placement endpoint
type CheckoutHandlers struct {
	checkout *services.CheckoutService
}

// NewCheckoutHandlers creates new checkout handlers
func NewCheckoutHandlers(checkout *services.CheckoutService) *CheckoutHandlers {
	return &CheckoutHandlers{checkout: checkout}
}

// PlaceOrderRequest carries the shipping address and card form
type PlaceOrderRequest struct {
	Address domain.Address `json:"address" binding:"required"`
	Card    struct {
		Number string `json:"number" binding:"required"`
		Expiry string `json:"expiry" binding:"required"`
		CVV    string `json:"cvv" binding:"required"`
	} `json:"card" binding:"required"`
}

// PlaceOrder validates the forms, creates the order, and submits payment
func (h *CheckoutHandlers) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	card := domain.CardDetails{
		Number: req.Card.Number,
		Expiry: req.Card.Expiry,
		CVV:    req.Card.CVV,
	}

	result, err := h.checkout.PlaceOrder(c.Request.Context(), req.Address, card)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAddressIncomplete):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Every address field is required"})
		case errors.Is(err, domain.ErrCardNumberInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Card number is invalid"})
		case errors.Is(err, domain.ErrCardExpiryInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Expiry must be MM/YY"})
		case errors.Is(err, domain.ErrCardExpired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Card has expired"})
		case errors.Is(err, domain.ErrCardCVVInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": "CVV is invalid"})
		default:
			respondBackendError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": result.Message,
		},
	})
}
