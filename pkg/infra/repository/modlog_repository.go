package repository

import (
	"context"

	"github.com/sportsfeed/contentguard/pkg/domain/modlog"
	"gorm.io/gorm"
)

type modlogRepository struct {
	db *gorm.DB
}

func NewModerationLogRepository(db *gorm.DB) modlog.Repository {
	return &modlogRepository{
		db: db,
	}
}

func (r *modlogRepository) Create(ctx context.Context, e *modlog.Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *modlogRepository) ListByUser(ctx context.Context, userID string, offset, limit int) ([]*modlog.Entry, error) {
	var entries []*modlog.Entry
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
