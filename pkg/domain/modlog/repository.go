package modlog

import "context"

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=modlog_repository_mock.go --case=underscore --with-expecter
type Repository interface {
	Create(ctx context.Context, e *Entry) error
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]*Entry, error)
}
