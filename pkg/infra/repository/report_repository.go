package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sportsfeed/contentguard/pkg/domain"
	"github.com/sportsfeed/contentguard/pkg/domain/post"
	"github.com/sportsfeed/contentguard/pkg/domain/report"
	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) report.Repository {
	return &reportRepository{
		db: db,
	}
}

func (r *reportRepository) Create(ctx context.Context, rep *report.Report) error {
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *reportRepository) GetByID(ctx context.Context, id uuid.UUID) (*report.Report, error) {
	var rep report.Report
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rep).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("report", id)
		}
		return nil, err
	}
	return &rep, nil
}

func (r *reportRepository) List(ctx context.Context, filter report.ListFilter) ([]*report.Report, int64, error) {
	query := r.db.WithContext(ctx).Model(&report.Report{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []*report.Report
	if err := query.
		Order("created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (r *reportRepository) Close(ctx context.Context, rep *report.Report, restorePost bool) error {
	now := time.Now()
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	result := tx.Model(&report.Report{}).
		Where("id = ? AND status = ?", rep.ID, report.StatusOpen).
		Updates(map[string]interface{}{
			"status":          rep.Status,
			"resolution_note": rep.ResolutionNote,
			"resolved_by":     rep.ResolvedBy,
			"resolved_at":     rep.ResolvedAt,
			"updated_at":      now,
		})
	if result.Error != nil {
		tx.Rollback()
		return result.Error
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		if _, err := r.GetByID(ctx, rep.ID); err != nil {
			return err
		}
		return domain.ErrReportAlreadyClosed
	}

	if restorePost {
		result = tx.Model(&post.Post{}).
			Where("id = ?", rep.ContentID).
			Updates(map[string]interface{}{
				"visibility":        post.VisibilityVisible,
				"moderation_status": post.StatusApproved,
				"updated_at":        now,
			})
		if result.Error != nil {
			tx.Rollback()
			return result.Error
		}
		if result.RowsAffected == 0 {
			tx.Rollback()
			return domain.NewNotFoundError("post", rep.ContentID)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}
	rep.UpdatedAt = now
	return nil
}
