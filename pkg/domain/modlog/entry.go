package modlog

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sportsfeed/contentguard/pkg/domain"
	"gorm.io/gorm"
)

const MaxContentRunes = 500

// Entry is an advisory record of a classification. It is never read back to
// make a decision.
type Entry struct {
	ID          uuid.UUID             `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      string                `json:"user_id" gorm:"type:text;not null;index"`
	ContentID   string                `json:"content_id,omitempty" gorm:"type:text;index"`
	Content     string                `json:"content" gorm:"type:text"`
	Context     string                `json:"context" gorm:"type:text;not null"`
	Action      string                `json:"action" gorm:"type:text;not null"`
	IsClean     bool                  `json:"is_clean"`
	RiskScore   int                   `json:"risk_score"`
	MaxSeverity string                `json:"max_severity,omitempty" gorm:"type:text"`
	Categories  pq.StringArray        `json:"categories" gorm:"type:text[]"`
	Violations  domain.ViolationsJSON `json:"violations" gorm:"type:jsonb"`
	Platform    string                `json:"platform,omitempty" gorm:"type:text"`
	CreatedAt   time.Time             `json:"created_at" gorm:"index"`
}

func (e *Entry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	return nil
}

func (e *Entry) TableName() string {
	return "moderation_logs"
}

// TruncateContent keeps at most MaxContentRunes runes of the original text.
func TruncateContent(content string) string {
	runes := []rune(content)
	if len(runes) <= MaxContentRunes {
		return content
	}
	return string(runes[:MaxContentRunes])
}
