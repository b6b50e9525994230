package routes

import (
	"hostpulse/internal/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterSystemRoutes mounts the index, health and host-info endpoints.
// These stay open even in protected mode so load balancers can probe.
func RegisterSystemRoutes(r *gin.Engine, sc *controllers.SystemController) {
	r.GET("/", sc.GetRoot)
	r.GET("/health", sc.GetHealth)
	r.GET("/system", sc.GetSystem)
	r.NoRoute(sc.NotFound)
}
