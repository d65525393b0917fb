package http

import "github.com/gofiber/fiber/v2"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Public API
	ClassifyHandler     Handler
	CheckContentHandler Handler
	PostCreatedHandler  Handler
	HealthHandler       Handler
	GetVersionHandler   Handler

	// Admin
	ListReportsHandler        Handler
	GetReportHandler          Handler
	ResolveReportHandler      Handler
	ListModerationLogsHandler Handler
	GetRulesHandler           Handler
	ReloadRulesHandler        Handler
}
