package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lutrii-inc/lutrii/internal/infrastructure/ratelimit"
	"github.com/lutrii-inc/lutrii/internal/shared/utils"

	apperrors "github.com/lutrii-inc/lutrii/internal/shared/errors"
)

// RateLimit throttles a route group per authenticated caller, falling back to
// the client IP for unauthenticated requests. Redis being unavailable fails
// open so an outage does not block all traffic.
func RateLimit(limiter ratelimit.RateLimiter, scope string, config ratelimit.RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := scope + ":" + limiterKey(c)

		allowed, err := limiter.Allow(key, config)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, &apperrors.AppError{
				Type:    apperrors.ErrorTypeBadRequest,
				Message: "rate limit exceeded, please try again later",
				Code:    http.StatusTooManyRequests,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func limiterKey(c *gin.Context) string {
	if address := CallerAddress(c); address != "" {
		return address
	}
	return c.ClientIP()
}
