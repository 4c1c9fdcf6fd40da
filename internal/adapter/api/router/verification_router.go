package router

import (
	"github.com/labstack/echo/v4"

	"truthprevails/internal/adapter/api/handler"
	"truthprevails/internal/adapter/api/middleware"
	"truthprevails/internal/infrastructure/ratelimit"
)

func SetupVerificationRouter(e *echo.Echo, verificationHandler *handler.VerificationHandler, authMiddleware *middleware.AuthMiddleware, limiter *ratelimit.RateLimiter) {
	verification := e.Group("/api/verification")

	// Public routes
	public := verification.Group("", middleware.RateLimit(limiter))
	public.POST("/verify", verificationHandler.Verify)
	public.POST("/verify-batch", verificationHandler.VerifyBatch)
	public.POST("/verify-file", verificationHandler.VerifyFile)
	public.GET("/recent", verificationHandler.Recent)
	public.GET("/submitter/:address", verificationHandler.BySubmitter)
	public.GET("/stats", verificationHandler.Stats)

	// Protected routes
	verification.POST("/submit", verificationHandler.Submit, authMiddleware.Authenticate)
}
