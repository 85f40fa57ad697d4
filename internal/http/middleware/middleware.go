package middleware

import (
	"strconv"
	"time"

	"lead_scoring_backend/platform/metrics"

	"github.com/gin-gonic/gin"
)

// RequestTimer records request latency per route template and status.
// Unmatched routes are grouped under "unmatched" to bound label cardinality.
func RequestTimer() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
