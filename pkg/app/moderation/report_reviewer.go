package moderation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sportsfeed/contentguard/pkg/domain"
	"github.com/sportsfeed/contentguard/pkg/domain/modlog"
	"github.com/sportsfeed/contentguard/pkg/domain/report"
	"github.com/sportsfeed/contentguard/pkg/infra/auditlogs"
	"github.com/sportsfeed/contentguard/pkg/infra/cache"
	"github.com/sportsfeed/contentguard/pkg/infra/cache/event"
	"github.com/sportsfeed/contentguard/pkg/infra/prometheus"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// ReportResolution closes an open report. Restore only applies together with
// report.StatusResolved and makes the reported post visible again.
type ReportResolution struct {
	Status  report.Status
	Note    string
	Restore bool
	Actor   string
}

type ReportPage struct {
	Reports []*report.Report `json:"reports"`
	Total   int64            `json:"total"`
	Offset  int              `json:"offset"`
	Limit   int              `json:"limit"`
}

//go:generate mockery --name=ReportReviewer --dir=. --output=./mocks --filename=report_reviewer_mock.go --case=underscore --with-expecter
type ReportReviewer interface {
	ListReports(ctx context.Context, status report.Status, offset, limit int) (*ReportPage, error)
	GetReport(ctx context.Context, id uuid.UUID) (*report.Report, error)
	ResolveReport(ctx context.Context, id uuid.UUID, res ReportResolution) (*report.Report, error)
	ListModerationLogs(ctx context.Context, userID string, offset, limit int) ([]*modlog.Entry, error)
}

type reportReviewer struct {
	logger    *logrus.Logger
	reports   report.Repository
	logs      modlog.Repository
	publisher cache.EventPublisher
	audit     auditlogs.Service
}

func NewReportReviewer(
	logger *logrus.Logger,
	reports report.Repository,
	logs modlog.Repository,
	publisher cache.EventPublisher,
	audit auditlogs.Service,
) ReportReviewer {
	return &reportReviewer{
		logger:    logger,
		reports:   reports,
		logs:      logs,
		publisher: publisher,
		audit:     audit,
	}
}

func page(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return offset, limit
}

func (r *reportReviewer) ListReports(ctx context.Context, status report.Status, offset, limit int) (*ReportPage, error) {
	if status != "" {
		if _, ok := report.ParseStatus(string(status)); !ok {
			return nil, domain.ErrInvalidReportStatus
		}
	}
	offset, limit = page(offset, limit)
	reports, total, err := r.reports.List(ctx, report.ListFilter{
		Status: status,
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	if reports == nil {
		reports = []*report.Report{}
	}
	return &ReportPage{
		Reports: reports,
		Total:   total,
		Offset:  offset,
		Limit:   limit,
	}, nil
}

func (r *reportReviewer) GetReport(ctx context.Context, id uuid.UUID) (*report.Report, error) {
	return r.reports.GetByID(ctx, id)
}

func (r *reportReviewer) ResolveReport(ctx context.Context, id uuid.UUID, res ReportResolution) (*report.Report, error) {
	if res.Status != report.StatusResolved && res.Status != report.StatusDismissed {
		return nil, domain.ErrInvalidReportStatus
	}

	current, err := r.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.IsOpen() {
		return nil, domain.ErrReportAlreadyClosed
	}

	restore := res.Restore && res.Status == report.StatusResolved && current.ContentType == report.ContentTypePost
	rep := *current
	rep.Close(res.Status, res.Note, res.Actor, time.Now().UTC())
	if err := r.reports.Close(ctx, &rep, restore); err != nil {
		if errors.Is(err, domain.ErrReportAlreadyClosed) || domain.IsNotFoundError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to close report: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"report_id":  rep.ID,
		"content_id": rep.ContentID,
		"status":     rep.Status,
		"restored":   restore,
		"actor":      res.Actor,
	}).Info("report closed")

	prometheus.ReportsTotal.WithLabelValues(string(rep.Status)).Inc()

	eventType := auditlogs.EventTypeReportResolved
	if rep.Status == report.StatusDismissed {
		eventType = auditlogs.EventTypeReportDismissed
	}
	r.audit.Emit(ctx, auditlogs.Event{
		Event: auditlogs.EventInfo{
			Type:        eventType,
			Category:    auditlogs.CategoryContentModeration,
			Description: fmt.Sprintf("report %s %s", rep.ID, rep.Status),
			Status:      auditlogs.StatusSuccess,
		},
		Target: auditlogs.Target{Type: auditlogs.TargetTypePost, ID: rep.ContentID.String()},
		Actor:  auditlogs.Actor{ID: res.Actor, Type: auditlogs.ActorTypeAdmin},
		Moderation: &auditlogs.ModerationDetails{
			RiskScore:   rep.RiskScore,
			MaxSeverity: rep.Severity,
			Categories:  rep.Categories,
			ReportID:    rep.ID.String(),
		},
	})

	err = r.publisher.Publish(ctx, event.ReportResolvedEvent{
		ReportID:  rep.ID.String(),
		ContentID: rep.ContentID.String(),
		Status:    string(rep.Status),
		Restored:  restore,
	})
	if err != nil {
		r.logger.WithError(err).WithField("report_id", rep.ID).Error("failed to publish report resolved event")
	}
	return &rep, nil
}

func (r *reportReviewer) ListModerationLogs(ctx context.Context, userID string, offset, limit int) ([]*modlog.Entry, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	offset, limit = page(offset, limit)
	entries, err := r.logs.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list moderation logs: %w", err)
	}
	if entries == nil {
		entries = []*modlog.Entry{}
	}
	return entries, nil
}
