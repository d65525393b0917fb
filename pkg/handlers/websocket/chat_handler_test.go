package websocket_test

import (
	"errors"
	"net"
	"net/http"
	"testing"
	"time"

	fiberws "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	gorilla "github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	appmod "github.com/sportsfeed/contentguard/pkg/app/moderation"
	"github.com/sportsfeed/contentguard/pkg/app/moderation/mocks"
	"github.com/sportsfeed/contentguard/pkg/config"
	handlers "github.com/sportsfeed/contentguard/pkg/handlers/websocket"
	"github.com/sportsfeed/contentguard/pkg/infra/ratelimit"
	ratelimitmocks "github.com/sportsfeed/contentguard/pkg/infra/ratelimit/mocks"
	infra "github.com/sportsfeed/contentguard/pkg/infra/websocket"
	"github.com/sportsfeed/contentguard/pkg/middleware"
	modcore "github.com/sportsfeed/contentguard/pkg/moderation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func startChatServer(t *testing.T, checker appmod.ContentChecker, semaphore *infra.Semaphore) string {
	return startLimitedChatServer(t, checker, semaphore, nil)
}

func startLimitedChatServer(t *testing.T, checker appmod.ContentChecker, semaphore *infra.Semaphore, limiter ratelimit.Limiter) string {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	handler := handlers.NewChatHandler(logger, checker, config.WebSocketConfig{
		MaxMessageSize: 1024,
		PingPeriod:     time.Second,
		PongWait:       2 * time.Second,
	}, limiter)
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use("/ws", middleware.NewWebsocketMiddleware(logger, semaphore).Middleware())
	app.Get("/ws/chat", fiberws.New(handler.Handle))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	return "ws://" + ln.Addr().String() + "/ws/chat"
}

func dial(t *testing.T, url string) *gorilla.Conn {
	t.Helper()
	conn, resp, err := gorilla.DefaultDialer.Dial(url, http.Header{"User-Agent": []string{"SportsFeed/3.1 (iPhone; iOS 17.0)"}})
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })

	var ready map[string]interface{}
	require.NoError(t, conn.ReadJSON(&ready))
	assert.Equal(t, infra.FrameTypeReady, ready["type"])
	return conn
}

func TestChatHandler_Verdicts(t *testing.T) {
	checker := new(mocks.ContentChecker)
	checker.On("Check", mock.Anything, mock.MatchedBy(func(req appmod.CheckRequest) bool {
		return req.Text == "nice goal" && req.Context == modcore.ContextChat
	})).Return(&appmod.CheckResponse{
		Allowed: true,
		Result:  &modcore.Result{Action: modcore.ActionAllow, IsClean: true},
	}, nil)
	checker.On("Check", mock.Anything, mock.MatchedBy(func(req appmod.CheckRequest) bool {
		return req.Text == "kys"
	})).Return(&appmod.CheckResponse{
		Allowed: false,
		Message: "blocked",
		Result:  &modcore.Result{Action: modcore.ActionBlock, ShouldBlock: true},
	}, nil)

	conn := dial(t, startChatServer(t, checker, infra.NewSemaphore(10)))

	require.NoError(t, conn.WriteMessage(gorilla.TextMessage, []byte(`{"user_id":"u1","text":"nice goal","content_id":"m1"}`)))
	var first infra.VerdictFrame
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, infra.FrameTypeVerdict, first.Type)
	assert.Equal(t, "m1", first.ContentID)
	assert.True(t, first.Allowed)

	require.NoError(t, conn.WriteMessage(gorilla.TextMessage, []byte(`{"user_id":"u1","text":"kys"}`)))
	var second infra.VerdictFrame
	require.NoError(t, conn.ReadJSON(&second))
	assert.False(t, second.Allowed)
	assert.Equal(t, "blocked", second.Message)

	checker.AssertNumberOfCalls(t, "Check", 2)
}

func TestChatHandler_InvalidFrames(t *testing.T) {
	checker := new(mocks.ContentChecker)
	conn := dial(t, startChatServer(t, checker, infra.NewSemaphore(10)))

	tests := []struct {
		name    string
		msgType int
		payload string
	}{
		{name: "not json", msgType: gorilla.TextMessage, payload: "hello"},
		{name: "missing user", msgType: gorilla.TextMessage, payload: `{"text":"hi"}`},
		{name: "binary frame", msgType: gorilla.BinaryMessage, payload: `{"user_id":"u1","text":"hi"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, conn.WriteMessage(tt.msgType, []byte(tt.payload)))
			var frame infra.ErrorFrame
			require.NoError(t, conn.ReadJSON(&frame))
			assert.Equal(t, infra.FrameTypeError, frame.Type)
			assert.NotEmpty(t, frame.Error)
		})
	}
	checker.AssertNotCalled(t, "Check", mock.Anything, mock.Anything)
}

func TestChatHandler_CheckerError(t *testing.T) {
	checker := new(mocks.ContentChecker)
	checker.On("Check", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))
	conn := dial(t, startChatServer(t, checker, infra.NewSemaphore(10)))

	require.NoError(t, conn.WriteMessage(gorilla.TextMessage, []byte(`{"user_id":"u1","text":"hi"}`)))
	var frame infra.ErrorFrame
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, "boom", frame.Error)
}

func TestChatHandler_ReleasesSlotOnClose(t *testing.T) {
	semaphore := infra.NewSemaphore(1)
	url := startChatServer(t, new(mocks.ContentChecker), semaphore)

	conn := dial(t, url)
	assert.Equal(t, 1, semaphore.GetCurrentConnections())

	_, resp, err := gorilla.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	require.NoError(t, conn.WriteMessage(gorilla.CloseMessage,
		gorilla.FormatCloseMessage(gorilla.CloseNormalClosure, "")))
	assert.Eventually(t, func() bool {
		return semaphore.GetCurrentConnections() == 0
	}, 2*time.Second, 20*time.Millisecond)
}

func TestChatHandler_RateLimited(t *testing.T) {
	checker := new(mocks.ContentChecker)
	checker.On("Check", mock.Anything, mock.Anything).Return(&appmod.CheckResponse{
		Allowed: true,
		Result:  &modcore.Result{Action: modcore.ActionAllow, IsClean: true},
	}, nil)

	limiter := new(ratelimitmocks.Limiter)
	limiter.On("Allow", mock.Anything, "user:u1").
		Return(&ratelimit.Decision{Allowed: true, Limit: 1, Remaining: 0}, nil).Once()
	limiter.On("Allow", mock.Anything, "user:u1").
		Return(&ratelimit.Decision{Allowed: false, Limit: 1, Remaining: 0}, nil).Once()

	conn := dial(t, startLimitedChatServer(t, checker, infra.NewSemaphore(10), limiter))

	require.NoError(t, conn.WriteMessage(gorilla.TextMessage, []byte(`{"user_id":"u1","text":"first"}`)))
	var verdict infra.VerdictFrame
	require.NoError(t, conn.ReadJSON(&verdict))
	assert.Equal(t, infra.FrameTypeVerdict, verdict.Type)

	require.NoError(t, conn.WriteMessage(gorilla.TextMessage, []byte(`{"user_id":"u1","text":"second"}`)))
	var limited infra.ErrorFrame
	require.NoError(t, conn.ReadJSON(&limited))
	assert.Equal(t, infra.FrameTypeError, limited.Type)
	assert.Equal(t, "too many messages, slow down", limited.Error)

	checker.AssertNumberOfCalls(t, "Check", 1)
	limiter.AssertExpectations(t)
}
