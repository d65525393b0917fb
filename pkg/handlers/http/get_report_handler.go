package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	appmod "github.com/sportsfeed/contentguard/pkg/app/moderation"
)

type getReportHandler struct {
	logger   *logrus.Logger
	reviewer appmod.ReportReviewer
}

func NewGetReportHandler(logger *logrus.Logger, reviewer appmod.ReportReviewer) Handler {
	return &getReportHandler{
		logger:   logger,
		reviewer: reviewer,
	}
}

// Handle @Summary Retrieve a report by ID
// @Tags Reports
// @Param Authorization header string true "Authorization token"
// @Produce json
// @Param report_id path string true "Report ID"
// @Success 200 {object} report.Report "Report"
// @Failure 400 {object} ErrorResponse "Invalid report_id"
// @Failure 404 {object} ErrorResponse "Report not found"
// @Router /api/v1/reports/{report_id} [get]
func (h *getReportHandler) Handle(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("report_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid report_id"})
	}

	rep, err := h.reviewer.GetReport(c.Context(), reportID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusOK).JSON(rep)
}
