package http

import (
	"github.com/gin-gonic/gin"

	"github.com/vidshop/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Video catalog and analysis proxies
		videos := v1.Group("/videos")
		{
			videos.GET("", handler.ListVideos)
			videos.GET("/:id", handler.GetVideo)
			videos.POST("/:id/select", handler.SelectVideo)
			videos.POST("/:id/related", handler.RelatedProducts)
			videos.PUT("/:id/metadata", handler.SaveMetadata)
		}

		v1.GET("/analyze", handler.Analyze)
		v1.POST("/search", handler.Search)

		// Viewer session: playback ticks and manual collapse toggles
		session := v1.Group("/session")
		{
			session.POST("/tick", handler.SessionTick)
			session.POST("/toggle", handler.ToggleCollapse)
		}

		// Cart
		cart := v1.Group("/cart")
		{
			cart.GET("", handler.GetCart)
			cart.DELETE("", handler.ClearCart)
			cart.POST("/toggle", handler.ToggleCart)
			cart.POST("/items", handler.AddCartItem)
			cart.POST("/related", handler.AddRelatedToCart)
			cart.PATCH("/items/:id", handler.UpdateCartQuantity)
			cart.DELETE("/items/:id", handler.RemoveCartItem)
		}
	}

	return router
}
