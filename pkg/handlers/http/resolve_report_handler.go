package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	appmod "github.com/sportsfeed/contentguard/pkg/app/moderation"
	"github.com/sportsfeed/contentguard/pkg/common"
	"github.com/sportsfeed/contentguard/pkg/domain/report"
	"github.com/sportsfeed/contentguard/pkg/handlers/http/request"
)

type resolveReportHandler struct {
	logger   *logrus.Logger
	reviewer appmod.ReportReviewer
}

func NewResolveReportHandler(logger *logrus.Logger, reviewer appmod.ReportReviewer) Handler {
	return &resolveReportHandler{
		logger:   logger,
		reviewer: reviewer,
	}
}

// Handle @Summary Resolve or dismiss a report
// @Description Closes an open report. With restore=true a resolved report makes the post visible again.
// @Tags Reports
// @Param Authorization header string true "Authorization token"
// @Accept json
// @Produce json
// @Param report_id path string true "Report ID"
// @Param request body request.ResolveReportRequest true "Resolution"
// @Success 200 {object} report.Report "Closed report"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Report not found"
// @Failure 409 {object} ErrorResponse "Report already closed"
// @Router /api/v1/reports/{report_id}/resolve [put]
func (h *resolveReportHandler) Handle(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("report_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid report_id"})
	}

	req, err := request.ParseResolveReportRequest(c.Body())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, h.logger, err)
	}

	actor, _ := c.Locals(common.ActorContextKey).(string)
	rep, err := h.reviewer.ResolveReport(c.Context(), reportID, appmod.ReportResolution{
		Status:  report.Status(req.Status),
		Note:    req.Note,
		Restore: req.Restore,
		Actor:   actor,
	})
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusOK).JSON(rep)
}
