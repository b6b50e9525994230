package controllers

import (
	"net/http"
	"sort"

	"hostpulse/internal/services"

	"github.com/gin-gonic/gin"
)

// Version is the API version reported by the index endpoint.
const Version = "1.0.0"

// endpointIndex maps endpoint names to paths for the index and 404 bodies.
var endpointIndex = map[string]string{
	"health":    "/health",
	"system":    "/system",
	"metrics":   "/metrics",
	"cpu":       "/metrics/cpu",
	"memory":    "/metrics/memory",
	"disk":      "/metrics/disk",
	"network":   "/metrics/network",
	"processes": "/processes",
	"stream":    "/ws",
}

// SystemController serves the index, health and host-info endpoints.
type SystemController struct {
	metrics *services.MetricsService
}

// NewSystemController builds a controller on the given aggregator.
func NewSystemController(metrics *services.MetricsService) *SystemController {
	return &SystemController{metrics: metrics}
}

// GetRoot returns API information and the endpoint index.
func (sc *SystemController) GetRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"api":       "hostpulse",
		"version":   Version,
		"status":    "running",
		"timestamp": now(),
		"endpoints": endpointIndex,
	})
}

// GetHealth is the health check for load balancers and monitors.
func (sc *SystemController) GetHealth(c *gin.Context) {
	system, err := sc.metrics.CollectSystem(c.Request.Context())
	if err != nil {
		respondCollectionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"timestamp":      now(),
		"uptime_seconds": system.UptimeSeconds,
	})
}

// GetSystem returns static host information.
func (sc *SystemController) GetSystem(c *gin.Context) {
	system, err := sc.metrics.CollectSystem(c.Request.Context())
	if err != nil {
		respondCollectionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"timestamp": now(), "system": system})
}

// NotFound handles unknown paths with a body listing what does exist.
func (sc *SystemController) NotFound(c *gin.Context) {
	paths := make([]string, 0, len(endpointIndex)+1)
	paths = append(paths, "/")
	for _, p := range endpointIndex {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	c.JSON(http.StatusNotFound, gin.H{
		"error":               http.StatusText(http.StatusNotFound),
		"message":             "The endpoint " + c.Request.URL.Path + " does not exist",
		"available_endpoints": paths,
	})
}
