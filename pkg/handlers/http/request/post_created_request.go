package request

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type PostCreatedRequest struct {
	PostID    string     `json:"post_id"`
	AuthorID  string     `json:"author_id"`
	Caption   string     `json:"caption"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

func ParsePostCreatedRequest(body []byte) (*PostCreatedRequest, error) {
	err := parseObject(body, func(f fields) error {
		if err := f.requiredNonEmptyString("post_id"); err != nil {
			return err
		}
		if err := f.requiredNonEmptyString("author_id"); err != nil {
			return err
		}
		if err := f.requiredString("caption"); err != nil {
			return err
		}
		return f.optionalString("created_at")
	})
	if err != nil {
		return nil, err
	}
	var req PostCreatedRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, ErrInvalidBody
	}
	if _, err := uuid.Parse(req.PostID); err != nil {
		return nil, &FieldError{Field: "post_id", Reason: "must be a UUID"}
	}
	return &req, nil
}

func (r *PostCreatedRequest) ID() uuid.UUID {
	return uuid.MustParse(r.PostID)
}
