package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	modcore "github.com/sportsfeed/contentguard/pkg/moderation"
)

type RuleSummarizer interface {
	Summary() modcore.RuleSetSummary
}

type getRulesHandler struct {
	logger *logrus.Logger
	rules  RuleSummarizer
}

func NewGetRulesHandler(logger *logrus.Logger, rules RuleSummarizer) Handler {
	return &getRulesHandler{
		logger: logger,
		rules:  rules,
	}
}

// Handle @Summary Active rule set
// @Description Summarizes the rule table loaded at startup. Rule terms are not exposed.
// @Tags Rules
// @Param Authorization header string true "Authorization token"
// @Produce json
// @Success 200 {object} moderation.RuleSetSummary "Rule set summary"
// @Router /api/v1/rules [get]
func (h *getRulesHandler) Handle(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.rules.Summary())
}
