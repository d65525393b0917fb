package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sportsfeed/contentguard/pkg/common"
)

type requestLoggerMiddleware struct {
	logger *logrus.Logger
}

// NewRequestLoggerMiddleware tags each request with an id, echoing the
// caller's X-Request-Id when present, and logs the outcome at debug level.
// Server errors are logged at error level.
func NewRequestLoggerMiddleware(logger *logrus.Logger) Middleware {
	return &requestLoggerMiddleware{logger: logger}
}

func (m *requestLoggerMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := c.Get(common.RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Locals(common.RequestIDContextKey, requestID)
		c.Set(common.RequestIDHeader, requestID)

		err := c.Next()

		status := c.Response().StatusCode()
		entry := m.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
		})
		if status >= fiber.StatusInternalServerError {
			entry.Error("request failed")
		} else {
			entry.Debug("request completed")
		}
		return err
	}
}
