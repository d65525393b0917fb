package mocks

import (
	"context"

	"github.com/sportsfeed/contentguard/pkg/app/moderation"
	"github.com/stretchr/testify/mock"
)

type ContentChecker struct {
	mock.Mock
}

func (m *ContentChecker) Check(ctx context.Context, req moderation.CheckRequest) (*moderation.CheckResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*moderation.CheckResponse)
	return resp, args.Error(1)
}
