package migrations

import (
	"github.com/sportsfeed/contentguard/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20261001_create_posts_table",
		Name: "Create posts table with moderation status",

		Up: func(db *gorm.DB) error {
			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS posts (
					id                UUID PRIMARY KEY,
					author_id         TEXT NOT NULL,
					caption           TEXT,
					visibility        TEXT NOT NULL DEFAULT 'visible',
					moderation_status TEXT NOT NULL DEFAULT 'pending',
					risk_score        INTEGER NOT NULL DEFAULT 0,
					categories        TEXT[],
					moderated_at      TIMESTAMPTZ,
					created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`).Error; err != nil {
				return err
			}
			if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_posts_author_id ON posts (author_id);`).Error; err != nil {
				return err
			}
			return db.Exec(`CREATE INDEX IF NOT EXISTS idx_posts_moderation_status ON posts (moderation_status);`).Error
		},

		Down: func(db *gorm.DB) error {
			return db.Exec(`DROP TABLE IF EXISTS posts;`).Error
		},
	})
}
