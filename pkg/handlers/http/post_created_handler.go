package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	appmod "github.com/sportsfeed/contentguard/pkg/app/moderation"
	"github.com/sportsfeed/contentguard/pkg/common"
	"github.com/sportsfeed/contentguard/pkg/handlers/http/request"
	"github.com/sportsfeed/contentguard/pkg/infra/httpx"
)

type postCreatedHandler struct {
	logger      *logrus.Logger
	moderator   appmod.PostModerator
	maxBodySize int64
}

func NewPostCreatedHandler(logger *logrus.Logger, moderator appmod.PostModerator, maxBodySize int) Handler {
	return &postCreatedHandler{
		logger:      logger,
		moderator:   moderator,
		maxBodySize: int64(maxBodySize),
	}
}

// Handle @Summary Post creation trigger
// @Description Authoritative moderation of a newly stored post. Blocked posts are hidden and reported. Repeated deliveries of the same post are acknowledged without reprocessing.
// @Tags Hooks
// @Accept json
// @Produce json
// @Param Content-Encoding header string false "gzip, br, zstd or deflate"
// @Param request body request.PostCreatedRequest true "Created post"
// @Success 200 {object} moderation.PostModerationOutcome "Moderation outcome"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 413 {object} ErrorResponse "Decoded body too large"
// @Router /api/v1/hooks/posts/created [post]
func (h *postCreatedHandler) Handle(c *fiber.Ctx) error {
	body, decoded, err := httpx.DecodeChain(c.Get(fiber.HeaderContentEncoding), c.Request().Body(), h.maxBodySize)
	if err != nil {
		h.logger.WithError(err).Debug("failed to decode post hook body")
		if errors.Is(err, httpx.ErrDecodedBodyTooLarge) {
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}
	if decoded {
		h.logger.WithField("content_encoding", c.Get(fiber.HeaderContentEncoding)).Debug("post hook body decoded")
	}

	req, err := request.ParsePostCreatedRequest(body)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	ev := appmod.PostCreatedEvent{
		PostID:    req.ID(),
		AuthorID:  req.AuthorID,
		Caption:   req.Caption,
		UserAgent: c.Get(common.UserAgentHeader),
		CreatedAt: time.Now().UTC(),
	}
	if req.CreatedAt != nil {
		ev.CreatedAt = *req.CreatedAt
	}

	outcome, err := h.moderator.OnPostCreated(c.Context(), ev)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusOK).JSON(outcome)
}
