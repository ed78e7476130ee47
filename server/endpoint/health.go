package endpoint

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/rxfetch/observability"
)

// HealthFunc reports the health of a service.
type HealthFunc func(ctx context.Context) *observability.ServiceHealth

// Health serves check's result: 200 while up or degraded, 503 when down.
func Health(check HealthFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		sh := check(c.Request.Context())
		status := http.StatusOK
		if sh.Status == observability.HealthStatusDown {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, sh)
	}
}
