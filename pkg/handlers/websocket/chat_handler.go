package websocket

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/sirupsen/logrus"
	appmod "github.com/sportsfeed/contentguard/pkg/app/moderation"
	"github.com/sportsfeed/contentguard/pkg/common"
	"github.com/sportsfeed/contentguard/pkg/config"
	"github.com/sportsfeed/contentguard/pkg/handlers/http/request"
	"github.com/sportsfeed/contentguard/pkg/infra/prometheus"
	"github.com/sportsfeed/contentguard/pkg/infra/ratelimit"
	infra "github.com/sportsfeed/contentguard/pkg/infra/websocket"
	modcore "github.com/sportsfeed/contentguard/pkg/moderation"
)

var (
	errBinaryFrame    = errors.New("only text frames are accepted")
	errMessageLimited = errors.New("too many messages, slow down")
)

type chatHandler struct {
	logger  *logrus.Logger
	checker appmod.ContentChecker
	cfg     config.WebSocketConfig
	limiter ratelimit.Limiter
}

// NewChatHandler checks every chat message sent over the socket and answers
// with one verdict frame per message, in order. limiter may be nil.
func NewChatHandler(
	logger *logrus.Logger,
	checker appmod.ContentChecker,
	cfg config.WebSocketConfig,
	limiter ratelimit.Limiter,
) Handler {
	return &chatHandler{
		logger:  logger,
		checker: checker,
		cfg:     cfg,
		limiter: limiter,
	}
}

func (h *chatHandler) Handle(c *websocket.Conn) {
	if semaphore, ok := c.Locals(common.WsSemaphoreKey).(*infra.Semaphore); ok {
		defer semaphore.Release()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c.SetReadLimit(h.cfg.MaxMessageSize)
	if err := c.SetReadDeadline(time.Now().Add(h.cfg.PongWait)); err != nil {
		h.logger.WithError(err).Error("failed to set read deadline")
		return
	}
	c.SetPongHandler(func(string) error {
		return c.SetReadDeadline(time.Now().Add(h.cfg.PongWait))
	})
	go h.keepAlive(ctx, c)

	userAgent := c.Headers(common.UserAgentHeader)
	if err := c.WriteJSON(infra.ReadyFrame{Type: infra.FrameTypeReady}); err != nil {
		h.logger.WithError(err).Error("failed to send ready frame")
		return
	}

	for {
		msgType, payload, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.WithError(err).Debug("chat connection closed")
			}
			return
		}
		if err := c.SetReadDeadline(time.Now().Add(h.cfg.PongWait)); err != nil {
			h.logger.WithError(err).Error("failed to extend read deadline")
			return
		}

		var frame interface{}
		if msgType != websocket.TextMessage {
			frame = infra.NewErrorFrame(errBinaryFrame)
		} else {
			frame = h.check(ctx, payload, userAgent)
		}
		if err := c.WriteJSON(frame); err != nil {
			h.logger.WithError(err).Error("failed to write chat verdict")
			return
		}
	}
}

func (h *chatHandler) check(ctx context.Context, payload []byte, userAgent string) interface{} {
	msg, err := request.ParseChatMessage(payload)
	if err != nil {
		return infra.NewErrorFrame(err)
	}
	if !h.allow(ctx, msg.UserID) {
		return infra.NewErrorFrame(errMessageLimited)
	}
	resp, err := h.checker.Check(ctx, appmod.CheckRequest{
		Text:      msg.Text,
		Context:   modcore.ContextChat,
		UserID:    msg.UserID,
		ContentID: msg.ContentID,
		UserAgent: userAgent,
	})
	if err != nil {
		h.logger.WithError(err).Error("chat check failed")
		return infra.NewErrorFrame(err)
	}
	return infra.VerdictFrame{
		Type:      infra.FrameTypeVerdict,
		ContentID: msg.ContentID,
		Allowed:   resp.Allowed,
		Warning:   resp.Warning,
		Message:   resp.Message,
		Result:    resp.Result,
	}
}

func (h *chatHandler) allow(ctx context.Context, userID string) bool {
	if h.limiter == nil {
		return true
	}
	decision, err := h.limiter.Allow(ctx, "user:"+userID)
	if err != nil {
		h.logger.WithError(err).Warn("chat rate limiter unavailable, allowing message")
		return true
	}
	if !decision.Allowed {
		prometheus.RateLimitedTotal.WithLabelValues("chat").Inc()
	}
	return decision.Allowed
}

func (h *chatHandler) keepAlive(ctx context.Context, c *websocket.Conn) {
	ticker := time.NewTicker(h.cfg.PingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deadline := time.Now().Add(h.cfg.PongWait)
			if err := c.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				h.logger.WithError(err).Debug("failed to send ping")
				return
			}
		}
	}
}
