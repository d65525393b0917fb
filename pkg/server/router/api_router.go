package router

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/sportsfeed/contentguard/pkg/config"
	handlers "github.com/sportsfeed/contentguard/pkg/handlers/http"
	wsHandlers "github.com/sportsfeed/contentguard/pkg/handlers/websocket"
	"github.com/sportsfeed/contentguard/pkg/middleware"
)

const (
	HealthPath  = "/health"
	VersionPath = "/version"
	ChatPath    = "/ws/chat"
)

type apiRouter struct {
	middlewareTransport *middleware.Transport
	handlerTransport    *handlers.HandlerTransport
	wsHandlerTransport  *wsHandlers.HandlerTransport
	config              *config.Config
}

func NewAPIRouter(
	middlewareTransport *middleware.Transport,
	handlerTransport *handlers.HandlerTransport,
	wsHandlerTransport *wsHandlers.HandlerTransport,
	cfg *config.Config,
) ServerRouter {
	return &apiRouter{
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
		wsHandlerTransport:  wsHandlerTransport,
		config:              cfg,
	}
}

func (r *apiRouter) BuildRoutes(router *fiber.App) error {
	h := r.handlerTransport
	if h == nil || h.ClassifyHandler == nil || h.CheckContentHandler == nil || h.PostCreatedHandler == nil {
		return ErrMissingHandler
	}

	router.Use(
		r.middlewareTransport.PanicRecoverMiddleware.Middleware(),
		r.middlewareTransport.RequestLoggerMiddleware.Middleware(),
	)

	router.Get(HealthPath, h.HealthHandler.Handle)
	router.Get(VersionPath, h.GetVersionHandler.Handle)

	v1 := router.Group("/api/v1")
	{
		moderation := v1.Group("/moderation")
		if r.middlewareTransport.RateLimitMiddleware != nil {
			moderation.Use(r.middlewareTransport.RateLimitMiddleware.Middleware())
		}
		{
			moderation.Post("/classify", h.ClassifyHandler.Handle)
			moderation.Post("/check", h.CheckContentHandler.Handle)
		}

		hooks := v1.Group("/hooks")
		{
			hooks.Post("/posts/created", h.PostCreatedHandler.Handle)
		}
	}

	if r.wsHandlerTransport != nil && r.wsHandlerTransport.ChatHandler != nil {
		ws := r.config.WebSocket
		router.Get(ChatPath,
			r.middlewareTransport.WebsocketMiddleware.Middleware(),
			websocket.New(r.wsHandlerTransport.ChatHandler.Handle, websocket.Config{
				ReadBufferSize:  int(ws.MaxMessageSize),
				WriteBufferSize: int(ws.MaxMessageSize),
			}),
		)
	}
	return nil
}
