package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sportsfeed/contentguard/pkg/domain"
	"github.com/sportsfeed/contentguard/pkg/domain/post"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) post.Repository {
	return &postRepository{
		db: db,
	}
}

// Save upserts by id so a redelivered creation trigger overwrites the previous verdict.
func (r *postRepository) Save(ctx context.Context, p *post.Post) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"caption", "visibility", "moderation_status", "risk_score", "categories", "moderated_at", "updated_at",
		}),
	}).Create(p).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	var p post.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("post", id)
		}
		return nil, err
	}
	return &p, nil
}
