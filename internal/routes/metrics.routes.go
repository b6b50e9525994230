package routes

import (
	"hostpulse/internal/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterMetricRoutes mounts the metric endpoints. guards are applied to
// the whole group; protected mode passes the token middleware here.
func RegisterMetricRoutes(r *gin.Engine, mc *controllers.MetricsController, guards ...gin.HandlerFunc) {
	metrics := r.Group("/metrics", guards...)
	{
		metrics.GET("", mc.GetAll)
		metrics.GET("/cpu", mc.GetCPU)
		metrics.GET("/memory", mc.GetMemory)
		metrics.GET("/disk", mc.GetDisk)
		metrics.GET("/network", mc.GetNetwork)
	}
}
