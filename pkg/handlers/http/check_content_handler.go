package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	appmod "github.com/sportsfeed/contentguard/pkg/app/moderation"
	"github.com/sportsfeed/contentguard/pkg/common"
	"github.com/sportsfeed/contentguard/pkg/handlers/http/request"
	modcore "github.com/sportsfeed/contentguard/pkg/moderation"
)

type checkContentHandler struct {
	logger  *logrus.Logger
	checker appmod.ContentChecker
}

func NewCheckContentHandler(logger *logrus.Logger, checker appmod.ContentChecker) Handler {
	return &checkContentHandler{
		logger:  logger,
		checker: checker,
	}
}

// Handle @Summary Check user content before it is published
// @Description Classifies a post caption or chat message and returns whether it may be published. A blocked verdict is still a 200 response.
// @Tags Moderation
// @Accept json
// @Produce json
// @Param request body request.CheckRequest true "Content to check"
// @Success 200 {object} moderation.CheckResponse "Verdict"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Router /api/v1/moderation/check [post]
func (h *checkContentHandler) Handle(c *fiber.Ctx) error {
	req, err := request.ParseCheckRequest(c.Body())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	checkContext, err := modcore.ParseCallerContext(req.Context)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	resp, err := h.checker.Check(c.Context(), appmod.CheckRequest{
		Text:      req.Text,
		Context:   checkContext,
		Languages: request.Languages(req.Languages),
		UserID:    req.UserID,
		ContentID: req.ContentID,
		UserAgent: c.Get(common.UserAgentHeader),
	})
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}
