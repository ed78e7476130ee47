package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/rxfetch/errors"
	"github.com/kbukum/rxfetch/logger"
)

// Recovery turns a handler panic into a 500 INTERNAL_ERROR response and logs
// the stack.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.WithContext(c.Request.Context()).Error("panic recovered", map[string]interface{}{
					"error":  fmt.Sprintf("%v", r),
					"stack":  string(debug.Stack()),
					"path":   c.Request.URL.Path,
					"method": c.Request.Method,
				})
				appErr := errors.Internal(fmt.Errorf("panic: %v", r))
				c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
			}
		}()
		c.Next()
	}
}
