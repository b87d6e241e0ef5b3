// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/jssgo/jss-edge/internal/application/container"
	"github.com/jssgo/jss-edge/internal/presentation/http/handlers"
	"github.com/jssgo/jss-edge/internal/presentation/http/middleware"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(container.Logger))
	r.Use(middleware.CORSMiddleware())

	// Initialize handlers
	feaasHandlers := handlers.NewFeaasHandlers(container.StylesheetService, container.Logger, container.PerfTracker)
	layoutHandlers := handlers.NewLayoutHandlers(container.LayoutService, container.Logger, container.PerfTracker)
	adminHandlers := handlers.NewAdminHandlers(container.LayoutService, container.AuthService, container.Logger, container.PerfTracker)
	requireAdmin := adminHandlers.AdminAuthMiddleware()

	r.GET("/health", handlers.GetHealth)

	api := r.Group("/api/v1")
	api.Use(middleware.SiteMiddleware(container.Config.SiteName))
	{
		feaas := api.Group("/feaas")
		{
			feaas.POST("/stylesheets", feaasHandlers.PostStylesheets)
			feaas.GET("/stylesheet-url", feaasHandlers.GetStylesheetURL)
		}

		layoutGroup := api.Group("/layout")
		{
			layoutGroup.GET("", layoutHandlers.GetLayout)
			layoutGroup.GET("/head", layoutHandlers.GetLayoutHead)
			layoutGroup.GET("/cache", layoutHandlers.GetLayoutCache)
			layoutGroup.DELETE("/cache", requireAdmin, layoutHandlers.DeleteLayoutCache)
		}

		api.POST("/admin/login", adminHandlers.PostLogin)

		admin := api.Group("/admin")
		admin.Use(requireAdmin)
		{
			admin.GET("/activity", adminHandlers.GetActivityMetrics)
			admin.GET("/logs/levels", adminHandlers.GetLogLevels)
			admin.POST("/logs/levels", adminHandlers.SetLogLevel)
		}
	}

	return r
}
