package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"dailyrewards/pkg/errors"
	"dailyrewards/pkg/logger"
	"dailyrewards/pkg/response"
)

type Limiter interface {
	Allow(key, action string) (bool, time.Duration)
}

type RateLimitMiddleware struct {
	limiter Limiter
}

func NewRateLimitMiddleware(limiter Limiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter}
}

// Limit throttles action per authenticated user, or per client IP before auth.
func (m *RateLimitMiddleware) Limit(action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key, ok := c.Get(ContextUID).(string)
			if !ok || key == "" {
				key = c.RealIP()
			}

			if allowed, wait := m.limiter.Allow(key, action); !allowed {
				logger.Warn("RATE LIMIT: %s blocked for %s (retry in %v)", key, action, wait)
				return response.Error(c, errors.TooManyRequests("Too many requests, please try again later", wait))
			}

			return next(c)
		}
	}
}
