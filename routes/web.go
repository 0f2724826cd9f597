package routes

import (
	"github.com/gin-gonic/gin"
)

// SetupWebRoutes wires the informational pages.
func SetupWebRoutes(router *gin.Engine) {
	web := router.Group("/")
	{
		web.GET("/", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"message": "Prospect Fusion Service",
				"version": "1.0.0",
				"docs":    "/docs",
			})
		})

		web.GET("/docs", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"api": "Prospect Fusion API v1",
				"endpoints": map[string]string{
					"compare":    "POST /v1/addresses/compare",
					"parse":      "POST /v1/addresses/parse",
					"fuse":       "POST /v1/prospect/fuse",
					"classify":   "POST /v1/prospect/classify",
					"run":        "POST /v1/prospect/runs",
					"get_run":    "GET /v1/prospect/runs/:runID",
					"search_run": "GET /v1/prospect/runs/:runID/search?q=",
					"health":     "GET /v1/health",
				},
			})
		})
	}
}
