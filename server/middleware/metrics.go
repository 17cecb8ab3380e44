package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/todoapi/observability"
)

// Metrics returns a Gin middleware that records request count, duration and
// in-flight requests. A nil metrics records nothing.
func Metrics(metrics *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		start := time.Now()
		metrics.RecordRequestStart(ctx)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		metrics.RecordRequestEnd(ctx, route, c.Request.Method, status, time.Since(start))
		if status >= 500 {
			metrics.RecordError(ctx, "http_5xx", "http")
		}
	}
}
