package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/orderstatus/internal/server/http/handlers"
	"github.com/polkiloo/orderstatus/internal/server/http/middleware"
)

// maxRequestBody caps decoded size of compressed request bodies.
const maxRequestBody = 1 << 20

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.Facade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest(maxRequestBody))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	statusHandler := handlers.NewOrderStatusHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	engine.GET("/health", healthHandler.Check)

	statuses := engine.Group("/orderstatus")
	statuses.GET("/:orderId", statusHandler.Get)
	statuses.PUT("/:orderId", statusHandler.Update)

	return engine
}
