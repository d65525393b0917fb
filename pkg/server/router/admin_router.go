package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/sportsfeed/contentguard/docs"
	handlers "github.com/sportsfeed/contentguard/pkg/handlers/http"
	"github.com/sportsfeed/contentguard/pkg/middleware"
)

type adminRouter struct {
	middlewareTransport *middleware.Transport
	handlerTransport    *handlers.HandlerTransport
}

func NewAdminRouter(
	middlewareTransport *middleware.Transport,
	handlerTransport *handlers.HandlerTransport,
) ServerRouter {
	return &adminRouter{
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
	}
}

func (r *adminRouter) BuildRoutes(router *fiber.App) error {
	h := r.handlerTransport
	if h == nil || h.ListReportsHandler == nil || h.ResolveReportHandler == nil || h.ReloadRulesHandler == nil {
		return ErrMissingHandler
	}

	router.Use(
		r.middlewareTransport.PanicRecoverMiddleware.Middleware(),
		r.middlewareTransport.RequestLoggerMiddleware.Middleware(),
	)

	router.Get("/docs/*", swagger.HandlerDefault)

	router.Get(HealthPath, h.HealthHandler.Handle)
	router.Get(VersionPath, h.GetVersionHandler.Handle)

	v1 := router.Group("/api/v1")
	{
		v1.Use(r.middlewareTransport.AdminAuthMiddleware.Middleware())

		reports := v1.Group("/reports")
		{
			reports.Get("", h.ListReportsHandler.Handle)
			reports.Get("/:report_id", h.GetReportHandler.Handle)
			reports.Put("/:report_id/resolve", h.ResolveReportHandler.Handle)
		}

		v1.Get("/moderation-logs", h.ListModerationLogsHandler.Handle)
		rules := v1.Group("/rules")
		{
			rules.Get("", h.GetRulesHandler.Handle)
			rules.Post("/reload", h.ReloadRulesHandler.Handle)
		}
	}
	return nil
}
