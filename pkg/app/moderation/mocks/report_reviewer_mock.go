package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/sportsfeed/contentguard/pkg/app/moderation"
	"github.com/sportsfeed/contentguard/pkg/domain/modlog"
	"github.com/sportsfeed/contentguard/pkg/domain/report"
	"github.com/stretchr/testify/mock"
)

type ReportReviewer struct {
	mock.Mock
}

func (m *ReportReviewer) ListReports(ctx context.Context, status report.Status, offset, limit int) (*moderation.ReportPage, error) {
	args := m.Called(ctx, status, offset, limit)
	page, _ := args.Get(0).(*moderation.ReportPage)
	return page, args.Error(1)
}

func (m *ReportReviewer) GetReport(ctx context.Context, id uuid.UUID) (*report.Report, error) {
	args := m.Called(ctx, id)
	rep, _ := args.Get(0).(*report.Report)
	return rep, args.Error(1)
}

func (m *ReportReviewer) ResolveReport(ctx context.Context, id uuid.UUID, res moderation.ReportResolution) (*report.Report, error) {
	args := m.Called(ctx, id, res)
	rep, _ := args.Get(0).(*report.Report)
	return rep, args.Error(1)
}

func (m *ReportReviewer) ListModerationLogs(ctx context.Context, userID string, offset, limit int) ([]*modlog.Entry, error) {
	args := m.Called(ctx, userID, offset, limit)
	entries, _ := args.Get(0).([]*modlog.Entry)
	return entries, args.Error(1)
}
