package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/sportsfeed/contentguard/pkg/common"
	"github.com/sportsfeed/contentguard/pkg/infra/prometheus"
	"github.com/sportsfeed/contentguard/pkg/infra/ratelimit"
)

const (
	rateLimitLimitHeader     = "X-RateLimit-Limit"
	rateLimitRemainingHeader = "X-RateLimit-Remaining"
	rateLimitResetHeader     = "X-RateLimit-Reset"
)

type rateLimitMiddleware struct {
	logger  *logrus.Logger
	limiter ratelimit.Limiter
	scope   string
}

// NewRateLimitMiddleware limits callers by X-User-ID, falling back to the
// client address. Redis failures let the request through.
func NewRateLimitMiddleware(logger *logrus.Logger, limiter ratelimit.Limiter, scope string) Middleware {
	return &rateLimitMiddleware{
		logger:  logger,
		limiter: limiter,
		scope:   scope,
	}
}

func (m *rateLimitMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := callerKey(c)
		decision, err := m.limiter.Allow(c.Context(), key)
		if err != nil {
			m.logger.WithError(err).WithField("key", key).Warn("rate limiter unavailable, allowing request")
			return c.Next()
		}

		c.Set(rateLimitLimitHeader, strconv.Itoa(decision.Limit))
		c.Set(rateLimitRemainingHeader, strconv.FormatInt(decision.Remaining, 10))
		c.Set(rateLimitResetHeader, strconv.FormatInt(decision.Reset.Unix(), 10))

		if !decision.Allowed {
			prometheus.RateLimitedTotal.WithLabelValues(m.scope).Inc()
			retryAfter := int(time.Until(decision.Reset).Seconds())
			if retryAfter <= 0 {
				retryAfter = 60
			}
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "rate limit exceeded",
				"retry_after": retryAfter,
			})
		}
		return c.Next()
	}
}

func callerKey(c *fiber.Ctx) string {
	if userID := c.Get(common.UserIDHeader); userID != "" {
		return "user:" + userID
	}
	if ip := c.Get(common.RealIPHeader); ip != "" {
		return "ip:" + ip
	}
	return "ip:" + c.IP()
}
