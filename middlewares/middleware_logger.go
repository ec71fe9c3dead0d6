package middlewares

import (
	"time"

	"github.com/faressmahmoud/DeliciousBites-RMS/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := logrus.Fields{
			"method":  c.Request.Method,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"path":    path,
			"ip":      c.ClientIP(),
		}
		if role, ok := c.Get(ContextRole); ok {
			fields["role"] = role
		}

		entry := utils.InfoLogger.WithFields(fields)
		switch {
		case c.Writer.Status() >= 500:
			utils.ErrorLogger.WithFields(fields).Error("request")
		case c.Writer.Status() >= 400:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}
