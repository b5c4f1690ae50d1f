package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sciops/workorder-gin/internal/config"
	"github.com/sciops/workorder-gin/internal/ws"
	"gorm.io/gorm"
)

// SetupRoutes builds the engine with the shared middleware, health and
// metrics endpoints, and the websocket mount. Business routes are
// registered on the returned engine by the server command.
func SetupRoutes(cfg *config.Config, hub *ws.Hub, db *gorm.DB) *gin.Engine {
	if config.IsProduction(cfg) {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(RequestIDMiddleware())
	router.Use(RequestLogMiddleware())
	router.Use(ErrorHandlerMiddleware())
	router.Use(CORSMiddleware(cfg.CORS.AllowedOrigins))
	if cfg.RateLimit.RPS > 0 {
		router.Use(RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}

	healthController := NewHealthController(db)
	router.GET("/health", healthController.Check)

	router.GET("/metrics", MetricsHandler)

	if hub != nil {
		router.GET("/ws/events", ws.Handler(hub))
	}

	return router
}
