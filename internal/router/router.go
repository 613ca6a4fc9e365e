package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/openai-cake/backend/internal/api"
	"github.com/pageza/openai-cake/backend/internal/metrics"
	"github.com/pageza/openai-cake/backend/internal/middleware"
)

// Options controls the optional parts of the router
type Options struct {
	// Metrics exposes /metrics when set
	Metrics bool
	// RateLimiter guards /get-recipe when non-nil
	RateLimiter *middleware.RateLimiter
	// TrustedProxies may set the client IP through X-Forwarded-For.
	// Empty means the remote address is always used.
	TrustedProxies []string
}

// SetupRouter configures the application routes
func SetupRouter(recipeHandler *api.RecipeHandler, log *zap.Logger, opts Options) *gin.Engine {
	router := gin.New()
	if err := router.SetTrustedProxies(opts.TrustedProxies); err != nil {
		log.Warn("ignoring invalid trusted proxies", zap.Strings("proxies", opts.TrustedProxies), zap.Error(err))
		_ = router.SetTrustedProxies(nil)
	}

	router.Use(
		middleware.RequestID(),
		middleware.Logger(log.Named("http")),
		middleware.Recovery(log),
		middleware.CORS(),
	)
	router.NoRoute(middleware.NotFound)

	router.GET("/health", api.Health)
	if opts.Metrics {
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	var recipeMiddleware []gin.HandlerFunc
	if opts.RateLimiter != nil {
		recipeMiddleware = append(recipeMiddleware, opts.RateLimiter.Middleware())
	}
	recipeHandler.RegisterRoutes(router, recipeMiddleware...)

	return router
}
