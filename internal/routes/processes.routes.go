package routes

import (
	"hostpulse/internal/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterProcessRoutes mounts the process listing endpoint.
func RegisterProcessRoutes(r *gin.Engine, pc *controllers.ProcessController, guards ...gin.HandlerFunc) {
	processes := r.Group("/processes", guards...)
	{
		processes.GET("", pc.GetProcesses)
	}
}
