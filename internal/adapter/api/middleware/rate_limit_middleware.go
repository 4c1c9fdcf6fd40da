package middleware

import (
	"fmt"
	"math"

	"github.com/labstack/echo/v4"

	"truthprevails/internal/infrastructure/ratelimit"
	"truthprevails/pkg/errors"
	"truthprevails/pkg/logger"
	"truthprevails/pkg/response"
)

// RateLimit keys the limiter by client IP.
func RateLimit(limiter *ratelimit.RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			allowed, wait := limiter.Allow(ip)
			if !allowed {
				retryAfter := int(math.Ceil(wait.Seconds()))
				logger.Warn("Rate limit exceeded for %s on %s", ip, c.Path())
				c.Response().Header().Set("Retry-After", fmt.Sprint(retryAfter))
				return response.Error(c, errors.TooManyRequests("Rate limit exceeded").
					WithDetails(map[string]int{"retryAfter": retryAfter}))
			}

			return next(c)
		}
	}
}
