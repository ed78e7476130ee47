package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/rxfetch/metrics"
)

// Metrics records request counts and latencies on reg, labeled by route
// template so that /users/1 and /users/3 share a series.
func Metrics(reg *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		reg.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		reg.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
