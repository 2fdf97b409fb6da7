// Package requestlog provides middleware for request tracing and logging
package requestlog

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gravadigital/proagil-api/internal/logger"
)

const (
	// HeaderRequestID carries the request id in both directions
	HeaderRequestID = "X-Request-ID"
	// ContextKey is where the request id is stored in the gin context
	ContextKey = "request_id"
)

// New returns a middleware that tags every request with an id and logs its outcome
func New() gin.HandlerFunc {
	return NewWithLogger(logger.HTTP())
}

// NewWithLogger is New with an explicit logger
func NewWithLogger(l *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		requestID := c.GetHeader(HeaderRequestID)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		c.Set(ContextKey, requestID)
		c.Header(HeaderRequestID, requestID)

		l.Debug("Request started",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"remote_addr", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
		)

		c.Next()

		latency := time.Since(startTime)
		status := c.Writer.Status()

		logLevel := l.Info
		if status >= 500 {
			logLevel = l.Error
		} else if status >= 400 {
			logLevel = l.Warn
		}

		logLevel("Request completed",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"latency", latency,
			"size", c.Writer.Size(),
		)
	}
}

// RequestID returns the id assigned to the current request
func RequestID(c *gin.Context) string {
	return c.GetString(ContextKey)
}
