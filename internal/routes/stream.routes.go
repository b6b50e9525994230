package routes

import (
	"hostpulse/internal/controllers"
	"hostpulse/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterStreamRoutes mounts the live snapshot stream. The stream
// controller checks tokens itself since websocket clients pass them as a
// query parameter.
func RegisterStreamRoutes(r *gin.Engine, stc *controllers.StreamController) {
	r.GET("/ws", stc.HandleWebSocket)
}

// RegisterAuthRoutes mounts the token endpoint behind its own stricter
// rate limit. Only called in protected mode.
func RegisterAuthRoutes(r *gin.Engine, ac *controllers.AuthController) {
	tokenLimiter := middleware.NewTokenRateLimiter()
	r.GET("/auth/token", middleware.RateLimit(tokenLimiter), ac.GetToken)
}
