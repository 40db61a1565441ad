package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mtcleaning/account-service/internal/pkg/metrics"
	"github.com/mtcleaning/account-service/internal/core/domain"
	"github.com/mtcleaning/account-service/internal/core/ports"
)

// RateLimit rejects callers that exceeded their budget, keyed by client IP.
// A nil limiter disables the middleware. Limiter errors let the request
// through.
func RateLimit(limiter ports.RateLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if limiter == nil {
			return next
		}
		return func(c echo.Context) error {
			ip := c.RealIP()

			allowed, err := limiter.Allow(c.Request().Context(), ip)
			if err != nil {
				log.Warn().Err(err).Str("ip", ip).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}
			if !allowed {
				metrics.RateLimitedTotal.Inc()
				log.Info().Str("ip", ip).Str("path", c.Path()).Msg("rate limit exceeded")
				return domain.NewError(domain.ErrRateLimited, "Too many requests")
			}

			return next(c)
		}
	}
}
