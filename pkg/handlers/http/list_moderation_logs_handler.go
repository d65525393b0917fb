package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	appmod "github.com/sportsfeed/contentguard/pkg/app/moderation"
)

type listModerationLogsHandler struct {
	logger   *logrus.Logger
	reviewer appmod.ReportReviewer
}

func NewListModerationLogsHandler(logger *logrus.Logger, reviewer appmod.ReportReviewer) Handler {
	return &listModerationLogsHandler{
		logger:   logger,
		reviewer: reviewer,
	}
}

// Handle @Summary List moderation log entries of a user
// @Tags Moderation Logs
// @Param Authorization header string true "Authorization token"
// @Produce json
// @Param user_id query string true "User ID"
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Page size (max 100)" default(20)
// @Success 200 {array} modlog.Entry "Log entries"
// @Failure 400 {object} ErrorResponse "user_id missing"
// @Router /api/v1/moderation-logs [get]
func (h *listModerationLogsHandler) Handle(c *fiber.Ctx) error {
	entries, err := h.reviewer.ListModerationLogs(
		c.Context(),
		c.Query("user_id"),
		c.QueryInt("offset", 0),
		c.QueryInt("limit", appmod.DefaultPageLimit),
	)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusOK).JSON(entries)
}
