package mocks

import (
	"context"

	modcore "github.com/sportsfeed/contentguard/pkg/moderation"
	"github.com/stretchr/testify/mock"
)

type RulesReloader struct {
	mock.Mock
}

func (m *RulesReloader) Reload(ctx context.Context, actor string) (*modcore.RuleSetSummary, error) {
	args := m.Called(ctx, actor)
	summary, _ := args.Get(0).(*modcore.RuleSetSummary)
	return summary, args.Error(1)
}

func (m *RulesReloader) Apply(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *RulesReloader) InstanceID() string {
	args := m.Called()
	return args.String(0)
}
