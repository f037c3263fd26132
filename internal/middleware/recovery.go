package middleware

import (
	"fmt"
	"net/http"
	"watog/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorReporter receives unexpected errors, typically Sentry.
type ErrorReporter interface {
	CaptureException(err error)
}

// Recovery turns a panic into the standard 500 envelope and reports it.
func Recovery(reporter ErrorReporter) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		err, ok := recovered.(error)
		if !ok {
			err = fmt.Errorf("panic: %v", recovered)
		}
		logger.Log.Errorw("panic recovered", "err", err, "path", c.Request.URL.Path)
		if reporter != nil {
			reporter.CaptureException(err)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"status": false, "error": "internal_error"})
	})
}
