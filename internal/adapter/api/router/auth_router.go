package router

import (
	"github.com/labstack/echo/v4"

	"truthprevails/internal/adapter/api/handler"
	"truthprevails/internal/adapter/api/middleware"
	"truthprevails/internal/infrastructure/ratelimit"
)

func SetupAuthRouter(e *echo.Echo, authHandler *handler.AuthHandler, authMiddleware *middleware.AuthMiddleware, limiter *ratelimit.RateLimiter) {
	auth := e.Group("/api/auth")

	// Public routes
	auth.POST("/signup", authHandler.Signup, middleware.RateLimit(limiter))

	// Protected routes
	protected := auth.Group("")
	protected.Use(authMiddleware.Authenticate)

	protected.POST("/federated", authHandler.FederatedSignIn, middleware.RateLimit(limiter))
	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/profile", authHandler.UpdateProfile)
	protected.GET("/wallet", authHandler.GetWallet)
	protected.DELETE("/account", authHandler.DeleteAccount)
}
