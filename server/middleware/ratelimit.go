package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/rxfetch/errors"
	"github.com/kbukum/rxfetch/resilience"
)

// RateLimit refuses requests with 429 RATE_LIMITED while rl has no tokens.
// The bucket is shared by all callers.
func RateLimit(rl *resilience.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow() {
			appErr := errors.RateLimited(rl.Name())
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
			return
		}
		c.Next()
	}
}
