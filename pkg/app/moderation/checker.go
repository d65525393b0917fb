package moderation

import (
	"context"

	"github.com/sirupsen/logrus"
	modcore "github.com/sportsfeed/contentguard/pkg/moderation"
	"github.com/sportsfeed/contentguard/pkg/utils"
)

type CheckRequest struct {
	Text      string
	Context   modcore.Context
	Languages []modcore.Language
	UserID    string
	ContentID string
	UserAgent string
}

type CheckResponse struct {
	Allowed bool            `json:"allowed"`
	Warning string          `json:"warning,omitempty"`
	Message string          `json:"message,omitempty"`
	Result  *modcore.Result `json:"result"`
}

//go:generate mockery --name=ContentChecker --dir=. --output=./mocks --filename=content_checker_mock.go --case=underscore --with-expecter
type ContentChecker interface {
	Check(ctx context.Context, req CheckRequest) (*CheckResponse, error)
}

type contentChecker struct {
	logger     *logrus.Logger
	classifier Classifier
	recorder   LogRecorder
	languages  []modcore.Language
}

// NewContentChecker serves post submission and chat sends. defaultLanguages is
// used when a request names none; nil means every language of the rule set.
func NewContentChecker(
	logger *logrus.Logger,
	classifier Classifier,
	recorder LogRecorder,
	defaultLanguages []modcore.Language,
) ContentChecker {
	return &contentChecker{
		logger:     logger,
		classifier: classifier,
		recorder:   recorder,
		languages:  defaultLanguages,
	}
}

func (c *contentChecker) Check(ctx context.Context, req CheckRequest) (*CheckResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	checkContext, err := modcore.ParseCallerContext(string(req.Context))
	if err != nil {
		return nil, err
	}

	languages := req.Languages
	if len(languages) == 0 {
		languages = c.languages
	}
	result, err := c.classifier.Classify(req.Text, modcore.Options{
		Languages:          languages,
		Context:            checkContext,
		UsePatternMatching: true,
	})
	if err != nil {
		return nil, err
	}

	resp := &CheckResponse{
		Allowed: !result.ShouldBlock,
		Result:  result,
	}
	switch {
	case result.ShouldBlock:
		resp.Message = modcore.UserMessage(result)
	case result.ShouldWarn:
		resp.Warning = modcore.WarningMessage
	}

	if !result.IsClean {
		c.logger.WithFields(logrus.Fields{
			"user_id":    req.UserID,
			"context":    result.Context,
			"action":     result.Action,
			"risk_score": result.RiskScore,
			"content":    utils.Truncate(req.Text, logFieldLimit),
		}).Info("content violation detected")
		c.recorder.Record(newLogEntry(req.UserID, req.ContentID, req.Text, utils.Platform(req.UserAgent), result))
	}
	return resp, nil
}
