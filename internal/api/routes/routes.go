// Package routes defines the HTTP routes for the UnifiedUI Document Service.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/unifiedui/document-service/internal/api/handlers"
	"github.com/unifiedui/document-service/internal/api/middleware"
)

// BasePath is the prefix shared by every API route.
const BasePath = "/api/v1/document-service"

// Config holds the dependencies for setting up routes.
type Config struct {
	HealthHandler    *handlers.HealthHandler
	DocumentsHandler *handlers.DocumentsHandler
}

// Setup configures all routes on the Gin engine.
func Setup(r *gin.Engine, cfg *Config) {
	v1 := r.Group(BasePath)
	{
		v1.GET("/health", cfg.HealthHandler.Health)
		v1.GET("/ready", cfg.HealthHandler.Ready)
		v1.GET("/live", cfg.HealthHandler.Live)

		docs := v1.Group("/documents")
		{
			docs.GET("/*id", cfg.DocumentsHandler.GetDocument)
			docs.POST("/bulk", cfg.DocumentsHandler.GetDocuments)
		}

		all := v1.Group("/views/all")
		{
			all.GET("/count", cfg.DocumentsHandler.CountAll)
			all.GET("/first", cfg.DocumentsHandler.FirstOfAll)
			all.GET("/last", cfg.DocumentsHandler.LastOfAll)
		}
	}

	r.NoRoute(middleware.NotFound())
	r.NoMethod(middleware.MethodNotAllowed())
}

// SetupWithMiddleware sets up routes with common middleware.
func SetupWithMiddleware(r *gin.Engine, cfg *Config, loggingMw *middleware.LoggingMiddleware, errorMw *middleware.ErrorMiddleware) {
	r.Use(loggingMw.RequestLogger())
	r.Use(loggingMw.Logger())
	r.Use(errorMw.Recovery())

	Setup(r, cfg)
}
