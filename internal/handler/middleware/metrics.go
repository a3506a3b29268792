package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

type RequestObserver interface {
	Observe(method, route string, status int, d time.Duration)
}

// Metrics records per-route request counts and latency. Unmatched routes share one label.
func Metrics(obs RequestObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		obs.Observe(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
