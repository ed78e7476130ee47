package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/rxfetch/logger"
)

var quietPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
	"/version": true,
}

// RequestLogger logs every request with method, route, status and duration.
// Probe and scrape paths are skipped.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if quietPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := map[string]interface{}{
			"method":             c.Request.Method,
			"path":               c.Request.URL.Path,
			"status":             status,
			logger.FieldDuration: time.Since(start).Milliseconds(),
		}
		if len(c.Errors) > 0 {
			fields[logger.FieldError] = c.Errors.String()
		}
		logByStatus(log.WithContext(c.Request.Context()), fields, status)
	}
}

// logByStatus logs request fields at the level matching the status code.
func logByStatus(log *logger.Logger, fields map[string]interface{}, status int) {
	switch {
	case status >= 500:
		log.Error("request completed", fields)
	case status >= 400:
		log.Warn("request completed", fields)
	default:
		log.Debug("request completed", fields)
	}
}
