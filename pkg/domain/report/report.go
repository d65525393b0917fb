package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Status string

const (
	StatusOpen      Status = "open"
	StatusResolved  Status = "resolved"
	StatusDismissed Status = "dismissed"
)

const (
	ContentTypePost = "post"
	SystemReporter  = "system"
)

// Report is a moderation report against a piece of content. Reports filed by
// the post creation trigger use SystemReporter.
type Report struct {
	ID             uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	ContentID      uuid.UUID      `json:"content_id" gorm:"type:uuid;not null;index"`
	ContentType    string         `json:"content_type" gorm:"type:text;not null"`
	ReporterID     string         `json:"reporter_id" gorm:"type:text;not null"`
	Reason         string         `json:"reason" gorm:"type:text"`
	Categories     pq.StringArray `json:"categories" gorm:"type:text[]"`
	Severity       string         `json:"severity" gorm:"type:text"`
	RiskScore      int            `json:"risk_score" gorm:"not null;default:0"`
	Status         Status         `json:"status" gorm:"type:text;not null;default:'open';index"`
	ResolutionNote string         `json:"resolution_note,omitempty" gorm:"type:text"`
	ResolvedBy     string         `json:"resolved_by,omitempty" gorm:"type:text"`
	ResolvedAt     *time.Time     `json:"resolved_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Status == "" {
		r.Status = StatusOpen
	}
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
	return nil
}

func (r *Report) BeforeUpdate(tx *gorm.DB) error {
	r.UpdatedAt = time.Now()
	return nil
}

func (r *Report) TableName() string {
	return "moderation_reports"
}

func (r *Report) IsOpen() bool {
	return r.Status == StatusOpen
}

// Close moves an open report to a terminal status.
func (r *Report) Close(status Status, note, actor string, at time.Time) {
	r.Status = status
	r.ResolutionNote = note
	r.ResolvedBy = actor
	r.ResolvedAt = &at
}

func ParseStatus(value string) (Status, bool) {
	switch Status(value) {
	case StatusOpen, StatusResolved, StatusDismissed:
		return Status(value), true
	default:
		return "", false
	}
}
