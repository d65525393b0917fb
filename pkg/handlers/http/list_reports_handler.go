package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	appmod "github.com/sportsfeed/contentguard/pkg/app/moderation"
	"github.com/sportsfeed/contentguard/pkg/domain/report"
)

type listReportsHandler struct {
	logger   *logrus.Logger
	reviewer appmod.ReportReviewer
}

func NewListReportsHandler(logger *logrus.Logger, reviewer appmod.ReportReviewer) Handler {
	return &listReportsHandler{
		logger:   logger,
		reviewer: reviewer,
	}
}

// Handle @Summary List moderation reports
// @Description Returns reports newest first, optionally filtered by status
// @Tags Reports
// @Param Authorization header string true "Authorization token"
// @Produce json
// @Param status query string false "open, resolved or dismissed"
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Page size (max 100)" default(20)
// @Success 200 {object} moderation.ReportPage "Reports"
// @Failure 400 {object} ErrorResponse "Invalid status"
// @Router /api/v1/reports [get]
func (h *listReportsHandler) Handle(c *fiber.Ctx) error {
	page, err := h.reviewer.ListReports(
		c.Context(),
		report.Status(c.Query("status")),
		c.QueryInt("offset", 0),
		c.QueryInt("limit", appmod.DefaultPageLimit),
	)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusOK).JSON(page)
}
