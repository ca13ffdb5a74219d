package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/shopfront/domain"
	"github.com/you/shopfront/internal/infrastructure/backend"
)

// respondBackendError translates an upstream failure into a response. A
// backend status is forwarded as-is with its message; anything else is a
// gateway-side failure.
func respondBackendError(c *gin.Context, err error) {
	var statusErr *backend.StatusError
	if errors.As(err, &statusErr) {
		msg := statusErr.Message
		if msg == "" {
			msg = http.StatusText(statusErr.StatusCode)
		}
		c.JSON(statusErr.StatusCode, gin.H{"error": msg})
		return
	}
	if errors.Is(err, domain.ErrMalformedResponse) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Backend returned a malformed response"})
		return
	}
	if errors.Is(err, domain.ErrNotAuthenticated) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not signed in"})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": "Backend request failed"})
}
