package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	appmod "github.com/sportsfeed/contentguard/pkg/app/moderation"
	"github.com/sportsfeed/contentguard/pkg/common"
)

type reloadRulesHandler struct {
	logger   *logrus.Logger
	reloader appmod.RulesReloader
}

func NewReloadRulesHandler(logger *logrus.Logger, reloader appmod.RulesReloader) Handler {
	return &reloadRulesHandler{
		logger:   logger,
		reloader: reloader,
	}
}

// Handle @Summary Reload the rule table
// @Description Re-reads the configured rule file and swaps it in on every instance. A rejected table leaves the active one serving.
// @Tags Rules
// @Param Authorization header string true "Authorization token"
// @Produce json
// @Success 200 {object} moderation.RuleSetSummary "New rule set summary"
// @Failure 400 {object} ErrorResponse "Rule table rejected"
// @Router /api/v1/rules/reload [post]
func (h *reloadRulesHandler) Handle(c *fiber.Ctx) error {
	actor, _ := c.Locals(common.ActorContextKey).(string)
	summary, err := h.reloader.Reload(c.Context(), actor)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusOK).JSON(summary)
}
