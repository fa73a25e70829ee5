package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

type RequestRecorder interface {
	ObserveRequest(method, route string, status int, d time.Duration)
}

// Metrics records every request under its route template, so /employees/1
// and /employees/2 share a series.
func Metrics(rec RequestRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		rec.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
