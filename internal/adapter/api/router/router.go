package router

import (
	"github.com/labstack/echo/v4"

	"truthprevails/internal/adapter/api/handler"
	"truthprevails/internal/adapter/api/middleware"
	"truthprevails/internal/infrastructure/ratelimit"
)

type Limiters struct {
	Auth   *ratelimit.RateLimiter
	Public *ratelimit.RateLimiter
}

func Setup(e *echo.Echo, h handler.Handlers, authMiddleware *middleware.AuthMiddleware, limiters Limiters) {
	SetupHealthRouter(e, h.Health)
	SetupAuthRouter(e, h.Auth, authMiddleware, limiters.Auth)
	SetupFileRouter(e, h.File, authMiddleware)
	SetupVerificationRouter(e, h.Verification, authMiddleware, limiters.Public)
	SetupTamperRouter(e, h.Tamper, limiters.Public)
	SetupWebSocketRouter(e, h.WebSocket, authMiddleware)
}
