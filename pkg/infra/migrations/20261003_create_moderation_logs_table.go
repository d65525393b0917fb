package migrations

import (
	"github.com/sportsfeed/contentguard/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20261003_create_moderation_logs_table",
		Name: "Create moderation_logs table",

		Up: func(db *gorm.DB) error {
			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS moderation_logs (
					id           UUID PRIMARY KEY,
					user_id      TEXT NOT NULL,
					content_id   TEXT,
					content      TEXT,
					context      TEXT NOT NULL,
					action       TEXT NOT NULL,
					is_clean     BOOLEAN NOT NULL DEFAULT TRUE,
					risk_score   INTEGER NOT NULL DEFAULT 0,
					max_severity TEXT,
					categories   TEXT[],
					violations   JSONB,
					platform     TEXT,
					created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`).Error; err != nil {
				return err
			}
			// Listing is always per user, newest first.
			return db.Exec(`CREATE INDEX IF NOT EXISTS idx_moderation_logs_user_created ON moderation_logs (user_id, created_at DESC);`).Error
		},

		Down: func(db *gorm.DB) error {
			return db.Exec(`DROP TABLE IF EXISTS moderation_logs;`).Error
		},
	})
}
