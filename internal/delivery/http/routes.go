package http

import (
	"github.com/bazarfresh/backend/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(requestid.New())
	router.Use(Recovery(logger))
	router.Use(RequestLogger(logger))
	router.Use(corsMiddleware(cfg.Server.AllowedOrigins))
	if cfg.RateLimit.PerIP > 0 {
		router.Use(RateLimit(cfg.RateLimit.PerIP))
	}

	router.GET("/", handler.Root)
	router.GET("/health", handler.HealthCheck)
	router.POST("/chat", handler.Chat)

	return router
}

// corsMiddleware builds the CORS policy. The chat widget is embedded on the
// storefront, so the default deployment allows all origins.
func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	corsCfg := cors.DefaultConfig()
	if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = allowedOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "X-Request-ID")
	return cors.New(corsCfg)
}
