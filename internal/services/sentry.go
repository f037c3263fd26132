package services

import (
	"time"
	"watog/internal/config"
	"watog/internal/logger"

	"github.com/getsentry/sentry-go"
)

// ErrorReporter forwards unexpected errors to Sentry when configured.
type ErrorReporter struct {
	initialized bool
}

func NewErrorReporter(cfg config.SentryConfig) *ErrorReporter {
	if cfg.DSN == "" {
		logger.Log.Info("SENTRY_DSN not set, Sentry disabled")
		return &ErrorReporter{}
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
	})
	if err != nil {
		logger.Log.Errorw("sentry initialization failed", "err", err)
		return &ErrorReporter{}
	}

	logger.Log.Info("sentry initialized")
	return &ErrorReporter{initialized: true}
}

func (r *ErrorReporter) Enabled() bool {
	return r != nil && r.initialized
}

// CaptureException 上报错误，未初始化时忽略
func (r *ErrorReporter) CaptureException(err error) {
	if !r.Enabled() || err == nil {
		return
	}
	sentry.CaptureException(err)
}

func (r *ErrorReporter) Flush(timeout time.Duration) bool {
	if !r.Enabled() {
		return true
	}
	return sentry.Flush(timeout)
}
