package middleware

import (
	"time"
	"watog/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDKey = "request_id"

// RequestLogger stamps every request with an X-Request-ID and logs it once
// the handler chain has finished.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Set(RequestIDKey, reqID)
		c.Header("X-Request-ID", reqID)

		start := time.Now()
		c.Next()

		fields := []any{
			"request_id", reqID,
			"method", c.Request.Method,
			"uri", c.Request.RequestURI,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"response_size", c.Writer.Size(),
		}
		if len(c.Errors) > 0 {
			logger.Log.Errorw("request", append(fields, "errors", c.Errors.String())...)
			return
		}
		logger.Log.Infow("request", fields...)
	}
}
