package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/shopfront/domain"
	"github.com/you/shopfront/internal/services"
)

// AuthHandlers exposes the OTP login and registration flows and the session
// itself over HTTP
type AuthHandlers struct {
	loginFlow    *services.LoginFlow
	registerFlow *services.RegistrationFlow
	session      *services.SessionStore
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(loginFlow *services.LoginFlow, registerFlow *services.RegistrationFlow, session *services.SessionStore) *AuthHandlers {
	return &AuthHandlers{
		loginFlow:    loginFlow,
		registerFlow: registerFlow,
		session:      session,
	}
}

// EmailRequest carries the email step of the login flow
type EmailRequest struct {
	Email string `json:"email" binding:"required"`
}

// ProfileRequest carries the profile step of the registration flow
type ProfileRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required"`
}

// CodeRequest carries the one-time code step of either flow
type CodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// LoginEmail handles the email step of the login flow
func (h *AuthHandlers) LoginEmail(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.loginFlow.SubmitEmail(c.Request.Context(), req.Email); err != nil {
		h.flowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"state": h.loginFlow.State(),
			"email": h.loginFlow.Email(),
		},
	})
}

// LoginCode handles the code step of the login flow
func (h *AuthHandlers) LoginCode(c *gin.Context) {
	var req CodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.loginFlow.SubmitCode(c.Request.Context(), req.Code); err != nil {
		h.flowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"state":         h.loginFlow.State(),
			"authenticated": h.session.Authenticated(),
		},
	})
}

// LoginBack returns the login flow from code entry to email entry
func (h *AuthHandlers) LoginBack(c *gin.Context) {
	h.loginFlow.Back()
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"state": h.loginFlow.State(),
			"email": h.loginFlow.Email(),
		},
	})
}

// LoginState reports where the login flow currently stands
func (h *AuthHandlers) LoginState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"state": h.loginFlow.State(),
			"email": h.loginFlow.Email(),
			"busy":  h.loginFlow.Busy(),
			"error": h.loginFlow.Err(),
		},
	})
}

// RegisterProfile handles the profile step of the registration flow
func (h *AuthHandlers) RegisterProfile(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.registerFlow.SubmitProfile(c.Request.Context(), req.FullName, req.Email); err != nil {
		h.flowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"state":     h.registerFlow.State(),
			"full_name": h.registerFlow.FullName(),
			"email":     h.registerFlow.Email(),
		},
	})
}

// RegisterCode handles the code step of the registration flow
func (h *AuthHandlers) RegisterCode(c *gin.Context) {
	var req CodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.registerFlow.SubmitCode(c.Request.Context(), req.Code); err != nil {
		h.flowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"state":         h.registerFlow.State(),
			"authenticated": h.session.Authenticated(),
		},
	})
}

// RegisterBack returns the registration flow from code entry to the profile step
func (h *AuthHandlers) RegisterBack(c *gin.Context) {
	h.registerFlow.Back()
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"state":     h.registerFlow.State(),
			"full_name": h.registerFlow.FullName(),
			"email":     h.registerFlow.Email(),
		},
	})
}

// RegisterState reports where the registration flow currently stands
func (h *AuthHandlers) RegisterState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"state":     h.registerFlow.State(),
			"full_name": h.registerFlow.FullName(),
			"email":     h.registerFlow.Email(),
			"busy":      h.registerFlow.Busy(),
			"error":     h.registerFlow.Err(),
		},
	})
}

// Session reports the resolved session state
func (h *AuthHandlers) Session(c *gin.Context) {
	if !h.session.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "pending"})
		return
	}

	data := gin.H{
		"authenticated": h.session.Authenticated(),
		"verified":      h.session.Verified(),
	}
	if claims, ok := h.session.Claims(); ok {
		data["email"] = claims.Email
		data["full_name"] = claims.FullName
		data["expires_at"] = claims.ExpiresAt
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// Logout ends the session and clears the persisted token
func (h *AuthHandlers) Logout(c *gin.Context) {
	if err := h.session.Logout(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "Logged out successfully",
		},
	})
}

func (h *AuthHandlers) flowError(c *gin.Context, err error) {
	switch err {
	case domain.ErrEmailRequired, domain.ErrNameRequired, domain.ErrCodeRequired:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case domain.ErrRequestInFlight:
		c.JSON(http.StatusConflict, gin.H{"error": "A request is already in flight"})
	case domain.ErrFlowTransition:
		c.JSON(http.StatusConflict, gin.H{"error": "Step not available from the current state"})
	case domain.ErrTokenInvalid, domain.ErrTokenExpired:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Received an unusable token"})
	default:
		respondBackendError(c, err)
	}
}
