package http

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	appmod "github.com/sportsfeed/contentguard/pkg/app/moderation"
	moderationMocks "github.com/sportsfeed/contentguard/pkg/app/moderation/mocks"
	modcore "github.com/sportsfeed/contentguard/pkg/moderation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newClassifier(t *testing.T) *modcore.Classifier {
	t.Helper()
	c, err := modcore.NewClassifier(newTestLogger(), modcore.DefaultRuleConfig())
	require.NoError(t, err)
	return c
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func TestClassifyHandler(t *testing.T) {
	app := fiber.New()
	app.Post("/api/v1/moderation/classify", NewClassifyHandler(newTestLogger(), newClassifier(t)).Handle)

	t.Run("verdict", func(t *testing.T) {
		status, body := postJSON(t, app, "/api/v1/moderation/classify",
			`{"text":"Let's discuss the BJP election results","context":"general","languages":["english"]}`)
		require.Equal(t, fiber.StatusOK, status)

		var result modcore.Result
		require.NoError(t, json.Unmarshal(body, &result))
		assert.False(t, result.IsClean)
		assert.True(t, result.ShouldBlock)
		assert.Equal(t, []modcore.Category{modcore.CategoryPolitics}, result.Categories)
		require.NotNil(t, result.MaxSeverity)
		assert.Equal(t, modcore.SeverityMedium, *result.MaxSeverity)
	})

	t.Run("clean verdict has null max severity", func(t *testing.T) {
		status, body := postJSON(t, app, "/api/v1/moderation/classify", `{"text":"Great game today"}`)
		require.Equal(t, fiber.StatusOK, status)

		var raw map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &raw))
		assert.Equal(t, true, raw["is_clean"])
		assert.Nil(t, raw["max_severity"])
		assert.Equal(t, "general", raw["context"])
	})

	tests := []struct {
		name string
		body string
	}{
		{"missing text", `{"context":"chat"}`},
		{"null text", `{"text":null}`},
		{"numeric text", `{"text":12}`},
		{"unknown context", `{"text":"hi","context":"lobby"}`},
		{"unknown language", `{"text":"hi","languages":["klingon"]}`},
		{"malformed", `{"text":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := postJSON(t, app, "/api/v1/moderation/classify", tt.body)
			assert.Equal(t, fiber.StatusBadRequest, status)
		})
	}
}

func TestCheckContentHandler(t *testing.T) {
	checker := new(moderationMocks.ContentChecker)
	app := fiber.New()
	app.Post("/api/v1/moderation/check", NewCheckContentHandler(newTestLogger(), checker).Handle)

	checker.On("Check", mock.Anything, mock.MatchedBy(func(req appmod.CheckRequest) bool {
		return req.UserID == "u1" && req.Context == modcore.ContextChat && req.Text == "You are an idiot"
	})).Return(&appmod.CheckResponse{
		Allowed: false,
		Message: "Hateful or abusive language is not allowed.",
	}, nil)

	status, body := postJSON(t, app, "/api/v1/moderation/check", `{"text":"You are an idiot","context":"chat","user_id":"u1"}`)
	assert.Equal(t, fiber.StatusOK, status)

	var resp appmod.CheckResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.False(t, resp.Allowed)
	assert.Equal(t, "Hateful or abusive language is not allowed.", resp.Message)
	checker.AssertExpectations(t)

	status, _ = postJSON(t, app, "/api/v1/moderation/check", `{"text":"hi","context":"chat"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	for _, ctx := range []string{"lobby", "server_authoritative"} {
		status, _ = postJSON(t, app, "/api/v1/moderation/check", `{"text":"Vote for BJP","context":"`+ctx+`","user_id":"u2"}`)
		assert.Equal(t, fiber.StatusBadRequest, status, ctx)
	}
	checker.AssertNumberOfCalls(t, "Check", 1)
}

func TestPostCreatedHandler(t *testing.T) {
	postID := uuid.New()

	setup := func() (*fiber.App, *moderationMocks.PostModerator) {
		moderator := new(moderationMocks.PostModerator)
		app := fiber.New()
		app.Post("/api/v1/hooks/posts/created", NewPostCreatedHandler(newTestLogger(), moderator, 1024).Handle)
		return app, moderator
	}

	t.Run("gzip body", func(t *testing.T) {
		app, moderator := setup()
		moderator.On("OnPostCreated", mock.Anything, mock.MatchedBy(func(ev appmod.PostCreatedEvent) bool {
			return ev.PostID == postID && ev.AuthorID == "athlete-1" && ev.Caption == "kys"
		})).Return(&appmod.PostModerationOutcome{PostID: postID, Action: modcore.ActionBlock}, nil)

		var buf bytes.Buffer
		gz := gzip.NewWriter(&buf)
		_, err := gz.Write([]byte(`{"post_id":"` + postID.String() + `","author_id":"athlete-1","caption":"kys"}`))
		require.NoError(t, err)
		require.NoError(t, gz.Close())

		req := httptest.NewRequest("POST", "/api/v1/hooks/posts/created", &buf)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Content-Encoding", "gzip")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var outcome appmod.PostModerationOutcome
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&outcome))
		assert.Equal(t, modcore.ActionBlock, outcome.Action)
		moderator.AssertExpectations(t)
	})

	t.Run("unsupported encoding", func(t *testing.T) {
		app, moderator := setup()
		req := httptest.NewRequest("POST", "/api/v1/hooks/posts/created", strings.NewReader("{}"))
		req.Header.Set("Content-Encoding", "compress")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		moderator.AssertNotCalled(t, "OnPostCreated", mock.Anything, mock.Anything)
	})

	t.Run("decoded body too large", func(t *testing.T) {
		app, _ := setup()
		var buf bytes.Buffer
		gz := gzip.NewWriter(&buf)
		_, err := gz.Write([]byte(`{"caption":"` + strings.Repeat("a", 4096) + `"}`))
		require.NoError(t, err)
		require.NoError(t, gz.Close())

		req := httptest.NewRequest("POST", "/api/v1/hooks/posts/created", &buf)
		req.Header.Set("Content-Encoding", "gzip")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)
	})

	t.Run("null caption", func(t *testing.T) {
		app, _ := setup()
		status, _ := postJSON(t, app, "/api/v1/hooks/posts/created",
			`{"post_id":"`+postID.String()+`","author_id":"athlete-1","caption":null}`)
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("persistence failure", func(t *testing.T) {
		app, moderator := setup()
		moderator.On("OnPostCreated", mock.Anything, mock.Anything).Return(nil, assert.AnError)
		status, body := postJSON(t, app, "/api/v1/hooks/posts/created",
			`{"post_id":"`+postID.String()+`","author_id":"athlete-1","caption":"hi"}`)
		assert.Equal(t, fiber.StatusInternalServerError, status)
		assert.Contains(t, string(body), "internal server error")
	})
}
