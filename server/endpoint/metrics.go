package endpoint

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/rxfetch/metrics"
)

// Metrics serves reg in the Prometheus exposition format.
func Metrics(reg *metrics.Registry) gin.HandlerFunc {
	return gin.WrapH(reg.Handler())
}
