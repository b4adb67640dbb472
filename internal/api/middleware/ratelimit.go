package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/users-service/internal/api/metrics"
)

// Limiter counts hits per key. Implemented by the Redis fixed-window limiter.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
	Limit() int
}

// RateLimit rejects callers that exceed l with 429 and a Retry-After header.
// Keys combine the route and the client IP. Limiter errors let the request
// through. A nil limiter disables the middleware.
func RateLimit(l Limiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if l == nil {
			return next
		}
		return func(c echo.Context) error {
			ip := c.RealIP()
			if ip == "" {
				ip = "unknown"
			}
			route := c.Path()

			ok, retry, err := l.Allow(c.Request().Context(), route+":"+ip)
			if err != nil {
				log.Warn().Err(err).Str("route", route).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}

			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(l.Limit()))
			if !ok {
				secs := int(math.Ceil(retry.Seconds()))
				if secs < 1 {
					secs = 1
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(secs))
				metrics.RateLimitedTotal.WithLabelValues(route).Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
