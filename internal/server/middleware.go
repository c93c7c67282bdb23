package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/studylit/internal/logger"
)

// requestLogger writes one line per request through the application logger.
func requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()

	keyvals := []interface{}{
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration", time.Since(start),
	}
	if c.Writer.Status() >= 500 {
		logger.Warn("HTTP request", keyvals...)
		return
	}
	logger.Info("HTTP request", keyvals...)
}
