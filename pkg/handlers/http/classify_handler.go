package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	appmod "github.com/sportsfeed/contentguard/pkg/app/moderation"
	"github.com/sportsfeed/contentguard/pkg/handlers/http/request"
)

type classifyHandler struct {
	logger     *logrus.Logger
	classifier appmod.Classifier
}

func NewClassifyHandler(logger *logrus.Logger, classifier appmod.Classifier) Handler {
	return &classifyHandler{
		logger:     logger,
		classifier: classifier,
	}
}

// Handle @Summary Classify text
// @Description Runs the rule based classifier and returns the full verdict. Nothing is logged or persisted.
// @Tags Moderation
// @Accept json
// @Produce json
// @Param request body request.ClassifyRequest true "Text and classification options"
// @Success 200 {object} moderation.Result "Classification result"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Router /api/v1/moderation/classify [post]
func (h *classifyHandler) Handle(c *fiber.Ctx) error {
	req, err := request.ParseClassifyRequest(c.Body())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	result, err := h.classifier.Classify(req.Text, req.Options())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}
