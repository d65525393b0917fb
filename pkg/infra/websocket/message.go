package websocket

import (
	modcore "github.com/sportsfeed/contentguard/pkg/moderation"
)

const (
	FrameTypeVerdict = "verdict"
	FrameTypeError   = "error"
	FrameTypeReady   = "ready"
)

// VerdictFrame answers one chat message.
type VerdictFrame struct {
	Type      string          `json:"type"`
	ContentID string          `json:"content_id,omitempty"`
	Allowed   bool            `json:"allowed"`
	Warning   string          `json:"warning,omitempty"`
	Message   string          `json:"message,omitempty"`
	Result    *modcore.Result `json:"result"`
}

type ErrorFrame struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

type ReadyFrame struct {
	Type string `json:"type"`
}

func NewErrorFrame(err error) ErrorFrame {
	return ErrorFrame{Type: FrameTypeError, Error: err.Error()}
}
