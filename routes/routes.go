package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/prospect-fusion/app/controllers"
)

// SetupAllRoutes wires middleware and every route group.
func SetupAllRoutes(router *gin.Engine, prospectController *controllers.ProspectController, adminController *controllers.AdminController) {
	setupMiddleware(router)

	SetupWebRoutes(router)
	SetupHealthRoutes(router, prospectController)
	SetupAPIRoutes(router, prospectController, adminController)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":  "Route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
}

func setupMiddleware(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
}
