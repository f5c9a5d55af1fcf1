package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	circleapp "github.com/lockin/backend/internal/application/circle"
)

// MaintenanceHandler exposes operational endpoints for on-demand maintenance
type MaintenanceHandler struct {
	BaseHandler
	lifecycleService *circleapp.LifecycleService
}

// NewMaintenanceHandler creates a new MaintenanceHandler
func NewMaintenanceHandler(lifecycleService *circleapp.LifecycleService) *MaintenanceHandler {
	return &MaintenanceHandler{lifecycleService: lifecycleService}
}

// RegisterRoutes registers maintenance routes
func (h *MaintenanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	maintenance := rg.Group("/maintenance")
	{
		maintenance.POST("/archive-expired-groups", h.ArchiveSweep)
	}
}

// ArchiveSweep runs the group archival sweep immediately. The same
// sweep runs on a timer when enabled; this endpoint exists so
// operators can force a pass without waiting for the next tick.
func (h *MaintenanceHandler) ArchiveSweep(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		h.Unauthorized(c, "Invalid user identity")
		return
	}

	count, err := h.lifecycleService.ArchiveExpired(c.Request.Context(), time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"archived": count})
}
