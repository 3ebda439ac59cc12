// Package http wires the gin engine: middleware chain, route groups and the
// HTTP server lifecycle.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lutrii-inc/lutrii/internal/infrastructure/auth"
	"github.com/lutrii-inc/lutrii/internal/infrastructure/ratelimit"
	"github.com/lutrii-inc/lutrii/internal/interfaces/http/handlers"
	"github.com/lutrii-inc/lutrii/internal/interfaces/http/middleware"
	sharedConfig "github.com/lutrii-inc/lutrii/internal/shared/config"
	"github.com/lutrii-inc/lutrii/internal/shared/constants"
	"github.com/lutrii-inc/lutrii/internal/shared/logger"
)

type RouterConfig struct {
	Server    sharedConfig.ServerConfig
	RateLimit sharedConfig.RateLimitConfig
	// AllowedOrigins is the CORS whitelist.
	AllowedOrigins []string
}

type Handlers struct {
	Auth         *handlers.AuthHandler
	Platform     *handlers.PlatformHandler
	Subscription *handlers.SubscriptionHandler
	Merchant     *handlers.MerchantHandler
}

type Router struct {
	engine *gin.Engine
	server *http.Server
	config RouterConfig
	logger logger.Interface
}

func NewRouter(
	cfg RouterConfig,
	h Handlers,
	jwtService *auth.JWTService,
	limiter ratelimit.RateLimiter,
	log logger.Interface,
) *Router {
	if cfg.Server.Mode == constants.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger(log))
	engine.Use(middleware.CORS(cfg.AllowedOrigins))
	engine.Use(middleware.SecurityHeaders())
	engine.Use(middleware.ErrorHandler())

	authMW := middleware.NewAuthMiddleware(jwtService, log)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := engine.Group("/api/v1")

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/token", h.Auth.IssueToken)
		authGroup.POST("/refresh", h.Auth.RefreshToken)
	}

	platform := v1.Group("/platform")
	platform.Use(authMW.RequireAuth())
	{
		platform.GET("", h.Platform.Get)
		platform.POST("", authMW.RequireAdmin(), h.Platform.Initialize)
		platform.PATCH("", authMW.RequireAdmin(), h.Platform.UpdateConfig)
		platform.POST("/pause", authMW.RequireAdmin(), h.Platform.Pause)
		platform.POST("/unpause", authMW.RequireAdmin(), h.Platform.Unpause)
	}

	executeLimit := ratelimit.RateLimitConfig{RequestsPerMinute: cfg.RateLimit.ExecutePerMinute}
	reviewLimit := ratelimit.RateLimitConfig{RequestsPerHour: cfg.RateLimit.ReviewPerHour}

	subscriptions := v1.Group("/subscriptions")
	subscriptions.Use(authMW.RequireAuth())
	{
		subscriptions.POST("", h.Subscription.Create)
		subscriptions.GET("", h.Subscription.List)
		subscriptions.GET("/:addr", h.Subscription.Get)
		subscriptions.DELETE("/:addr", h.Subscription.Close)
		subscriptions.POST("/:addr/pause", h.Subscription.Pause)
		subscriptions.POST("/:addr/resume", h.Subscription.Resume)
		subscriptions.POST("/:addr/cancel", h.Subscription.Cancel)
		subscriptions.PATCH("/:addr/limits", h.Subscription.UpdateLimits)
		subscriptions.PATCH("/:addr/amount", h.Subscription.UpdateAmount)
		subscriptions.POST("/:addr/execute",
			middleware.RateLimit(limiter, "execute", executeLimit),
			h.Subscription.Execute)
	}

	merchants := v1.Group("/merchants")
	merchants.Use(authMW.RequireAuth())
	{
		merchants.POST("", h.Merchant.Apply)
		merchants.GET("", h.Merchant.List)
		merchants.GET("/:addr", h.Merchant.Get)
		merchants.PATCH("/:addr", h.Merchant.UpdateInfo)
		merchants.POST("/:addr/approve", authMW.RequireAdmin(), h.Merchant.Approve)
		merchants.POST("/:addr/suspend", authMW.RequireAdmin(), h.Merchant.Suspend)
		merchants.POST("/:addr/premium-badge", h.Merchant.SubscribePremiumBadge)
		merchants.GET("/:addr/reviews", h.Merchant.ListReviews)
		merchants.POST("/:addr/reviews",
			middleware.RateLimit(limiter, "review", reviewLimit),
			h.Merchant.SubmitReview)
	}

	return &Router{
		engine: engine,
		config: cfg,
		logger: log,
	}
}

// Engine exposes the underlying gin engine for tests.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) Start() error {
	r.server = &http.Server{
		Addr:              r.config.Server.GetAddr(),
		Handler:           r.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	r.logger.Infow("HTTP server starting", "addr", r.server.Addr)
	if err := r.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (r *Router) Shutdown(ctx context.Context) error {
	if r.server == nil {
		return nil
	}
	r.logger.Infow("HTTP server shutting down")
	return r.server.Shutdown(ctx)
}
