package middleware

import (
	"time"

	"todo_webapp/internal/logger"

	"github.com/gin-gonic/gin"
)

// RequestLog writes one structured line per request. Run it after RequestID.
func RequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		l := logger.WithContext(c.Request.Context())
		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			args = append(args, "errors", c.Errors.String())
		}
		if c.Writer.Status() >= 500 {
			l.Error("request", args...)
			return
		}
		l.Info("request", args...)
	}
}
