package router

import (
	"github.com/labstack/echo/v4"

	"truthprevails/internal/adapter/api/handler"
	"truthprevails/internal/adapter/api/middleware"
	"truthprevails/internal/infrastructure/ratelimit"
)

func SetupTamperRouter(e *echo.Echo, tamperHandler *handler.TamperHandler, limiter *ratelimit.RateLimiter) {
	tamper := e.Group("/api/tamper-detection", middleware.RateLimit(limiter))

	tamper.POST("/analyze", tamperHandler.Analyze)
	tamper.POST("/analyze-batch", tamperHandler.AnalyzeBatch)
}
