package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/prospect-fusion/app/controllers"
)

// SetupAPIRoutes wires the versioned API.
func SetupAPIRoutes(router *gin.Engine, prospectController *controllers.ProspectController, adminController *controllers.AdminController) {
	v1 := router.Group("/v1")
	{
		addresses := v1.Group("/addresses")
		{
			addresses.POST("/compare", prospectController.CompareAddress)
			addresses.POST("/parse", prospectController.ParseAddress)
		}

		prospect := v1.Group("/prospect")
		{
			prospect.POST("/fuse", prospectController.Fuse)
			prospect.POST("/classify", prospectController.Classify)
			prospect.POST("/runs", prospectController.RunProspect)
			prospect.GET("/runs", prospectController.ListRuns)
			prospect.GET("/runs/:runID", prospectController.GetRun)
			prospect.GET("/runs/:runID/search", prospectController.SearchRun)
		}

		admin := v1.Group("/admin")
		{
			admin.GET("/stats", adminController.GetStats)
			admin.POST("/cache/invalidate", adminController.InvalidateCache)
		}

		v1.GET("/health", prospectController.HealthCheck)
	}
}

// SetupHealthRoutes wires the root-level probes.
func SetupHealthRoutes(router *gin.Engine, prospectController *controllers.ProspectController) {
	router.GET("/health", prospectController.HealthCheck)
	router.GET("/ready", prospectController.HealthCheck)
	router.GET("/live", prospectController.HealthCheck)
}
