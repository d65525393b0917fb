package middleware

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/sportsfeed/contentguard/pkg/common"
	infra "github.com/sportsfeed/contentguard/pkg/infra/websocket"
)

type websocketMiddleware struct {
	logger    *logrus.Logger
	semaphore *infra.Semaphore
}

// NewWebsocketMiddleware rejects plain HTTP on websocket routes and reserves
// a connection slot for each upgrade. The handler releases the slot.
func NewWebsocketMiddleware(logger *logrus.Logger, semaphore *infra.Semaphore) Middleware {
	return &websocketMiddleware{
		logger:    logger,
		semaphore: semaphore,
	}
}

func (m *websocketMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		if !m.semaphore.Acquire() {
			m.logger.Warn("maximum websocket connections reached, rejecting connection")
			return fiber.ErrTooManyRequests
		}
		c.Locals(common.WsSemaphoreKey, m.semaphore)
		return c.Next()
	}
}
