package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/setavenger/raito-oracle/internal/metrics"
)

// MetricsMiddleware records request counts and durations per route.
func MetricsMiddleware(c *gin.Context) {
	started := time.Now()
	c.Next()

	path := c.FullPath()
	if path == "" {
		path = "unmatched"
	}
	metrics.ObserveRequest(c.Request.Method, path, c.Writer.Status(), started)
}

// SecurityHeadersMiddleware sets browser hardening headers on every response.
func SecurityHeadersMiddleware(c *gin.Context) {
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("X-Frame-Options", "DENY")
	c.Header("X-XSS-Protection", "1; mode=block")
	c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
	c.Next()
}
