package post

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Visibility string

const (
	VisibilityVisible Visibility = "visible"
	VisibilityHidden  Visibility = "hidden"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusApproved    Status = "approved"
	StatusNeedsReview Status = "needs_review"
	StatusBlocked     Status = "blocked"
)

// Post is the moderation view of a user post. The caption is the only field
// that is classified.
type Post struct {
	ID               uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	AuthorID         string         `json:"author_id" gorm:"type:text;not null;index"`
	Caption          string         `json:"caption" gorm:"type:text"`
	Visibility       Visibility     `json:"visibility" gorm:"type:text;not null;default:'visible'"`
	ModerationStatus Status         `json:"moderation_status" gorm:"column:moderation_status;type:text;not null;default:'pending'"`
	RiskScore        int            `json:"risk_score" gorm:"not null;default:0"`
	Categories       pq.StringArray `json:"categories" gorm:"type:text[]"`
	ModeratedAt      *time.Time     `json:"moderated_at,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	return nil
}

func (p *Post) BeforeUpdate(tx *gorm.DB) error {
	p.UpdatedAt = time.Now()
	return nil
}

func (p *Post) TableName() string {
	return "posts"
}

func (p *Post) Hide() {
	p.Visibility = VisibilityHidden
	p.ModerationStatus = StatusBlocked
}

func (p *Post) Restore() {
	p.Visibility = VisibilityVisible
	p.ModerationStatus = StatusApproved
}

func (p *Post) IsHidden() bool {
	return p.Visibility == VisibilityHidden
}
