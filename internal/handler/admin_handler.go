package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/promptvault/promptvault/internal/service"
	"github.com/promptvault/promptvault/pkg/logger"
	"go.uber.org/zap"
)

type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Stats handles GET /admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// UsersSummary handles GET /admin/users/summary
func (h *AdminHandler) UsersSummary(c *gin.Context) {
	summaries, err := h.adminService.UsersSummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// DeleteUser handles DELETE /admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	adminID := currentUserID(c)
	logger.Log.Info("Admin deleting user",
		zap.String("admin_id", adminID.String()),
		zap.String("target_user_id", id.String()),
	)

	if err := h.adminService.DeleteUser(c.Request.Context(), adminID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
