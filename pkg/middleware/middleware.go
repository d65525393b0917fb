package middleware

import "github.com/gofiber/fiber/v2"

type Middleware interface {
	Middleware() fiber.Handler
}

type Transport struct {
	AdminAuthMiddleware     Middleware
	RequestLoggerMiddleware Middleware
	PanicRecoverMiddleware  Middleware
	WebsocketMiddleware     Middleware
	// RateLimitMiddleware is nil when rate limiting is disabled.
	RateLimitMiddleware Middleware
}
