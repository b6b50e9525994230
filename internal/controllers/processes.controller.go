package controllers

import (
	"net/http"
	"strconv"

	"hostpulse/internal/services"

	"github.com/gin-gonic/gin"
)

const maxProcessLimit = 50

// ProcessController serves the ranked process list.
type ProcessController struct {
	metrics *services.MetricsService
}

// NewProcessController builds a controller on the given aggregator.
func NewProcessController(metrics *services.MetricsService) *ProcessController {
	return &ProcessController{metrics: metrics}
}

// GetProcesses returns the top processes by CPU usage. The limit query
// parameter defaults to 10 and is capped at 50.
func (pc *ProcessController) GetProcesses(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "10")

	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid limit parameter: "+limitStr)
		return
	}
	if limit < 1 {
		respondError(c, http.StatusBadRequest, "limit must be at least 1")
		return
	}
	if limit > maxProcessLimit {
		respondError(c, http.StatusBadRequest, "limit cannot exceed 50")
		return
	}

	processes, err := pc.metrics.CollectProcesses(c.Request.Context(), limit)
	if err != nil {
		respondCollectionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"timestamp": now(),
		"count":     len(processes),
		"processes": processes,
	})
}
