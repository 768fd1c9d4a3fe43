package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shotclock/backend/internal/metrics"
)

// RequestMetrics records method, route and status for every request.
func RequestMetrics(rec *metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		rec.RecordHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
