package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type healthHandler struct {
	logger  *logrus.Logger
	pingers map[string]Pinger
}

// NewHealthHandler reports 503 when any named dependency fails its ping.
func NewHealthHandler(logger *logrus.Logger, pingers map[string]Pinger) Handler {
	return &healthHandler{
		logger:  logger,
		pingers: pingers,
	}
}

// Handle @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "Healthy"
// @Failure 503 {object} map[string]interface{} "A dependency is unavailable"
// @Router /health [get]
func (h *healthHandler) Handle(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	checks := make(fiber.Map, len(h.pingers))
	for name, p := range h.pingers {
		if err := p.Ping(ctx); err != nil {
			h.logger.WithError(err).WithField("dependency", name).Warn("health check failed")
			checks[name] = "unavailable"
			status = fiber.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	state := "ok"
	if status != fiber.StatusOK {
		state = "degraded"
	}
	return c.Status(status).JSON(fiber.Map{
		"status": state,
		"checks": checks,
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
