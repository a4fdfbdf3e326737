package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs one structured line per request. Requests carry the
// caller's X-Request-ID when present, otherwise a fresh UUID, and the ID is
// echoed back on the response for correlation.
func RequestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Header("X-Request-ID", reqID)

		start := time.Now()
		c.Next()

		log.WithFields(logrus.Fields{
			"req_id":    reqID,
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"remote_ip": c.ClientIP(),
			"latency":   time.Since(start).String(),
		}).Info("request completed")
	}
}
