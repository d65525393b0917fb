package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	appmod "github.com/sportsfeed/contentguard/pkg/app/moderation"
	"github.com/sportsfeed/contentguard/pkg/domain"
	"github.com/sportsfeed/contentguard/pkg/handlers/http/request"
	"github.com/sportsfeed/contentguard/pkg/infra/httpx"
	modcore "github.com/sportsfeed/contentguard/pkg/moderation"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func statusFor(err error) int {
	var fieldErr *request.FieldError
	switch {
	case errors.Is(err, request.ErrInvalidBody),
		errors.As(err, &fieldErr),
		modcore.IsCallerError(err),
		errors.Is(err, domain.ErrInvalidReportStatus),
		errors.Is(err, appmod.ErrInvalidPostEvent),
		errors.Is(err, appmod.ErrUserIDRequired),
		errors.Is(err, appmod.ErrRulesRejected):
		return fiber.StatusBadRequest
	case domain.IsNotFoundError(err):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrReportAlreadyClosed):
		return fiber.StatusConflict
	case errors.Is(err, httpx.ErrDecodedBodyTooLarge):
		return fiber.StatusRequestEntityTooLarge
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError maps err to a status code. Internal errors are logged and
// hidden from the caller.
func respondError(c *fiber.Ctx, logger *logrus.Logger, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		logger.WithError(err).WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
		}).Error("request failed")
		return c.Status(status).JSON(ErrorResponse{Error: "internal server error"})
	}
	return c.Status(status).JSON(ErrorResponse{Error: err.Error()})
}
