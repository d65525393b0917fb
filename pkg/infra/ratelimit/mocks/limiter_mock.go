package mocks

import (
	"context"

	"github.com/sportsfeed/contentguard/pkg/infra/ratelimit"
	"github.com/stretchr/testify/mock"
)

type Limiter struct {
	mock.Mock
}

func (m *Limiter) Allow(ctx context.Context, key string) (*ratelimit.Decision, error) {
	args := m.Called(ctx, key)
	decision, _ := args.Get(0).(*ratelimit.Decision)
	return decision, args.Error(1)
}
