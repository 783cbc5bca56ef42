package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SystemHandler serves health and service metadata endpoints.
type SystemHandler struct {
	BaseHandler
	serviceName string
	version     string
	startedAt   time.Time
}

// NewSystemHandler creates a SystemHandler.
func NewSystemHandler(serviceName, version string, logger *zap.Logger) *SystemHandler {
	return &SystemHandler{
		BaseHandler: NewBaseHandler(logger),
		serviceName: serviceName,
		version:     version,
		startedAt:   time.Now(),
	}
}

// Health handles GET /health.
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Info handles GET /info.
func (h *SystemHandler) Info(c *gin.Context) {
	h.Success(c, http.StatusOK, gin.H{
		"service": h.serviceName,
		"version": h.version,
		"uptime":  time.Since(h.startedAt).String(),
	})
}
