package controllers

import (
	"errors"
	"net/http"
	"time"

	"hostpulse/internal/probe"
	"hostpulse/internal/services"

	"github.com/gin-gonic/gin"
)

// MetricsController serves the metric endpoints off the aggregator.
type MetricsController struct {
	metrics *services.MetricsService
}

// NewMetricsController builds a controller on the given aggregator.
func NewMetricsController(metrics *services.MetricsService) *MetricsController {
	return &MetricsController{metrics: metrics}
}

// GetAll returns the combined snapshot. Failing sections are omitted and
// noted in the snapshot's errors map; the response is still 200.
func (mc *MetricsController) GetAll(c *gin.Context) {
	snap := mc.metrics.CollectAll(c.Request.Context())
	c.JSON(http.StatusOK, snap)
}

// GetCPU returns the CPU subsection.
func (mc *MetricsController) GetCPU(c *gin.Context) {
	cpu, err := mc.metrics.CollectCPU(c.Request.Context())
	if err != nil {
		respondCollectionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"timestamp": now(), "cpu": cpu})
}

// GetMemory returns the memory subsection.
func (mc *MetricsController) GetMemory(c *gin.Context) {
	memory, err := mc.metrics.CollectMemory(c.Request.Context())
	if err != nil {
		respondCollectionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"timestamp": now(), "memory": memory})
}

// GetDisk returns disk usage for the filesystem at the path query
// parameter, default "/". A missing path is a 404.
func (mc *MetricsController) GetDisk(c *gin.Context) {
	path := c.DefaultQuery("path", "/")

	disk, err := mc.metrics.CollectDisk(c.Request.Context(), path)
	if err != nil {
		respondCollectionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"timestamp": now(), "disk": disk})
}

// GetNetwork returns the network subsection.
func (mc *MetricsController) GetNetwork(c *gin.Context) {
	network, err := mc.metrics.CollectNetwork(c.Request.Context())
	if err != nil {
		respondCollectionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"timestamp": now(), "network": network})
}

// respondCollectionError maps collector error kinds to status codes.
func respondCollectionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, probe.ErrPathNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, err.Error())
	}
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"error":   http.StatusText(status),
		"message": message,
	})
}

func now() time.Time {
	return time.Now().UTC()
}
