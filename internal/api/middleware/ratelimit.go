package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/daybook/journal-api/internal/api/metrics"
)

// AttemptLimiter abstracts the fixed-window counter (Redis).
type AttemptLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit throttles credential endpoints per client IP. The limiter failing
// (Redis down) lets the request through — availability over strictness here.
func RateLimit(limiter AttemptLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				log.Warn().Err(err).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}
			if !ok {
				metrics.RateLimitedTotal.Inc()
				return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "too many attempts, slow down"})
			}
			return next(c)
		}
	}
}
