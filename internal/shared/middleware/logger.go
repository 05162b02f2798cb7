package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library-backend/pkg/logger"
)

// Logger emits one structured line per request after the handler chain ran.
// Server errors are logged at warn level so they stand out in the stream.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		fields := map[string]interface{}{
			"request_id": c.GetString("request_id"),
			"method":     c.Request.Method,
			"path":       path,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
			"client_ip":  c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Warn("request completed with server error", fields)
		} else {
			logger.Info("request completed", fields)
		}
	}
}
