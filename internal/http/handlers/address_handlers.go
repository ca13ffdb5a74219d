package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/you/shopfront/domain"
	"github.com/you/shopfront/internal/services"
)

// AddressHandlers serves the shipping address book
type AddressHandlers struct {
	book *services.AddressBook
}

// NewAddressHandlers creates new address handlers
func NewAddressHandlers(book *services.AddressBook) *AddressHandlers {
	return &AddressHandlers{book: book}
}

// List returns all saved addresses
func (h *AddressHandlers) List(c *gin.Context) {
	addresses, err := h.book.List(c.Request.Context())
	if err != nil {
		respondBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": addresses})
}

// Create saves a new address
func (h *AddressHandlers) Create(c *gin.Context) {
	var address domain.Address
	if err := c.ShouldBindJSON(&address); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.book.Create(c.Request.Context(), address)
	if err != nil {
		h.addressError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": created})
}

// Update replaces an existing address
func (h *AddressHandlers) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address id"})
		return
	}

	var address domain.Address
	if err := c.ShouldBindJSON(&address); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	address.ID = id

	updated, err := h.book.Update(c.Request.Context(), address)
	if err != nil {
		h.addressError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// Delete removes an address
func (h *AddressHandlers) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address id"})
		return
	}

	if err := h.book.Delete(c.Request.Context(), id); err != nil {
		respondBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "Address deleted",
		},
	})
}

func (h *AddressHandlers) addressError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrAddressIncomplete) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Every address field is required"})
		return
	}
	respondBackendError(c, err)
}
