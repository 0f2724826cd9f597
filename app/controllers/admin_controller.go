package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prospect-fusion/app/responses"
	"github.com/prospect-fusion/app/services"
)

// AdminController handles operational endpoints.
type AdminController struct {
	adminService *services.AdminService
	logger       *zap.Logger
}

// NewAdminController builds the controller.
func NewAdminController(adminService *services.AdminService, logger *zap.Logger) *AdminController {
	return &AdminController{
		adminService: adminService,
		logger:       logger,
	}
}

// GetStats returns system and cache statistics.
func (ac *AdminController) GetStats(c *gin.Context) {
	stats, err := ac.adminService.GetSystemStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "STATS_ERROR",
			Message: "erreur de collecte des stats: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// InvalidateCache empties the comparison cache.
func (ac *AdminController) InvalidateCache(c *gin.Context) {
	if err := ac.adminService.InvalidateCache(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "CACHE_INVALIDATE_ERROR",
			Message: "erreur d'invalidation du cache: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cache invalide"})
}
