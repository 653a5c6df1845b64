package middleware

import (
	"net/http"

	"lesson-planner/internal/logger"
	"lesson-planner/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DefaultMaxRequestSize bounds form submissions. Lesson plan forms are small.
const DefaultMaxRequestSize = 1 << 20

// RequestSizeLimitMiddleware rejects bodies that declare more than maxSize
// bytes and caps the rest while they are read. GET exports carry no body and
// pass through untouched.
func RequestSizeLimitMiddleware(maxSize int64) gin.HandlerFunc {
	if maxSize <= 0 {
		maxSize = DefaultMaxRequestSize
	}

	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.Body == http.NoBody && c.Request.ContentLength <= 0 {
			c.Next()
			return
		}

		if c.Request.ContentLength > maxSize {
			logger.Warn("Request body too large",
				zap.String("request_id", GetRequestID(c)),
				zap.String("path", c.Request.URL.Path),
				zap.Int64("content_length", c.Request.ContentLength),
				zap.Int64("limit", maxSize),
				zap.String("event", "request_too_large"),
			)
			utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "Request body too large")
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}
