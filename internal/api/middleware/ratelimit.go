package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/acquisitions/user-api/internal/api/metrics"
	"github.com/acquisitions/user-api/internal/core/domain"
)

const rateLimitWindow = time.Minute

// Limiter is the narrow admission-control contract the middleware consumes.
// Implementations decide whether one more request fits inside the sliding
// window for the given key.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// requestsPerMinute returns the window budget for a role tier. Anonymous
// requests fall into the guest tier.
func requestsPerMinute(role string) int {
	switch role {
	case domain.RoleAdmin:
		return 100
	case domain.RoleUser:
		return 20
	default:
		return 10
	}
}

// RateLimit consults the limiter once per request, keyed by role tier and
// client IP. Limiter failures are non-fatal: the request is let through with
// a warning rather than taking the API down with the limiter store.
func RateLimit(limiter Limiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if role == "" {
				role = "guest"
			}

			key := "ratelimit:" + role + ":" + c.RealIP()
			allowed, err := limiter.Allow(c.Request().Context(), key, requestsPerMinute(role), rateLimitWindow)
			if err != nil {
				log.Warn().Err(err).Str("key", key).Msg("rate limit check failed, allowing request")
				return next(c)
			}

			if !allowed {
				metrics.RateLimitDecisionsTotal.WithLabelValues(role, "denied").Inc()
				log.Warn().
					Str("ip", c.RealIP()).
					Str("role", role).
					Str("path", c.Path()).
					Msg("rate limit exceeded")
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}

			metrics.RateLimitDecisionsTotal.WithLabelValues(role, "allowed").Inc()
			return next(c)
		}
	}
}
