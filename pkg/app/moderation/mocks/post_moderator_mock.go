package mocks

import (
	"context"

	"github.com/sportsfeed/contentguard/pkg/app/moderation"
	"github.com/stretchr/testify/mock"
)

type PostModerator struct {
	mock.Mock
}

func (m *PostModerator) OnPostCreated(ctx context.Context, ev moderation.PostCreatedEvent) (*moderation.PostModerationOutcome, error) {
	args := m.Called(ctx, ev)
	outcome, _ := args.Get(0).(*moderation.PostModerationOutcome)
	return outcome, args.Error(1)
}
