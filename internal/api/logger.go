package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/genesis-combat/internal/logging"
)

// RequestLogger logs one structured line per request, replacing gin's
// default text logger.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		fields := logging.Fields{
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
		}
		if c.Writer.Status() >= 500 {
			logging.Warn("request failed", fields)
			return
		}
		logging.Debug("request", fields)
	}
}
