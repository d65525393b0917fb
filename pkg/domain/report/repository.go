package report

import (
	"context"

	"github.com/google/uuid"
)

type ListFilter struct {
	Status Status
	Offset int
	Limit  int
}

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=report_repository_mock.go --case=underscore --with-expecter
type Repository interface {
	Create(ctx context.Context, r *Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*Report, error)
	List(ctx context.Context, filter ListFilter) ([]*Report, int64, error)
	// Close stores the final status of r only while the stored report is still
	// open, otherwise it returns domain.ErrReportAlreadyClosed. With restorePost
	// the reported post becomes visible and approved in the same transaction.
	Close(ctx context.Context, r *Report, restorePost bool) error
}
