package request

import (
	"encoding/json"
)

type CheckRequest struct {
	Text      string   `json:"text"`
	Context   string   `json:"context"`
	UserID    string   `json:"user_id"`
	ContentID string   `json:"content_id,omitempty"`
	Languages []string `json:"languages,omitempty"`
}

func ParseCheckRequest(body []byte) (*CheckRequest, error) {
	err := parseObject(body, func(f fields) error {
		if err := f.requiredString("text"); err != nil {
			return err
		}
		if err := f.requiredNonEmptyString("user_id"); err != nil {
			return err
		}
		if err := f.optionalString("context"); err != nil {
			return err
		}
		if err := f.optionalString("content_id"); err != nil {
			return err
		}
		return f.optionalStringArray("languages")
	})
	if err != nil {
		return nil, err
	}
	var req CheckRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, ErrInvalidBody
	}
	return &req, nil
}

// ChatMessage is one inbound websocket frame.
type ChatMessage struct {
	UserID    string `json:"user_id"`
	Text      string `json:"text"`
	ContentID string `json:"content_id,omitempty"`
}

func ParseChatMessage(body []byte) (*ChatMessage, error) {
	err := parseObject(body, func(f fields) error {
		if err := f.requiredString("text"); err != nil {
			return err
		}
		if err := f.requiredNonEmptyString("user_id"); err != nil {
			return err
		}
		return f.optionalString("content_id")
	})
	if err != nil {
		return nil, err
	}
	var msg ChatMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, ErrInvalidBody
	}
	return &msg, nil
}
