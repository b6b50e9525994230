package controllers

import (
	"net/http"

	"hostpulse/internal/services"

	"github.com/gin-gonic/gin"
)

// AuthController mints bearer tokens when the service runs protected.
type AuthController struct {
	auth *services.AuthService
}

// NewAuthController builds a controller on the given auth service.
func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// GetToken issues a token for the named client.
func (ac *AuthController) GetToken(c *gin.Context) {
	name := c.DefaultQuery("name", "hostpulse-client")
	if !validClientName(name) {
		respondError(c, http.StatusBadRequest, "invalid client name format")
		return
	}

	token, expiresAt, err := ac.auth.GenerateToken(name)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"name":       name,
		"expires_at": expiresAt.UTC(),
		"timestamp":  now(),
	})
}

// validClientName accepts hostname-like identifiers only.
func validClientName(name string) bool {
	if len(name) < 1 || len(name) > 255 {
		return false
	}
	for _, r := range name {
		if !((r >= 'a' && r <= 'z') ||
			(r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') ||
			r == '-' || r == '_' || r == '.') {
			return false
		}
	}
	return true
}
