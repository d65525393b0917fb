package migrations

import (
	"github.com/sportsfeed/contentguard/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20261002_create_moderation_reports_table",
		Name: "Create moderation_reports table",

		Up: func(db *gorm.DB) error {
			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS moderation_reports (
					id              UUID PRIMARY KEY,
					content_id      UUID NOT NULL,
					content_type    TEXT NOT NULL,
					reporter_id     TEXT NOT NULL,
					reason          TEXT,
					categories      TEXT[],
					severity        TEXT,
					risk_score      INTEGER NOT NULL DEFAULT 0,
					status          TEXT NOT NULL DEFAULT 'open',
					resolution_note TEXT,
					resolved_by     TEXT,
					resolved_at     TIMESTAMPTZ,
					created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`).Error; err != nil {
				return err
			}
			if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_moderation_reports_content_id ON moderation_reports (content_id);`).Error; err != nil {
				return err
			}
			return db.Exec(`CREATE INDEX IF NOT EXISTS idx_moderation_reports_status ON moderation_reports (status, created_at DESC);`).Error
		},

		Down: func(db *gorm.DB) error {
			return db.Exec(`DROP TABLE IF EXISTS moderation_reports;`).Error
		},
	})
}
