package moderation

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/sportsfeed/contentguard/pkg/domain/modlog"
	"github.com/sportsfeed/contentguard/pkg/domain/post"
	"github.com/sportsfeed/contentguard/pkg/domain/report"
	"github.com/sportsfeed/contentguard/pkg/infra/auditlogs"
	"github.com/sportsfeed/contentguard/pkg/infra/cache/event"
	"github.com/stretchr/testify/mock"
)

type mockPostRepository struct {
	mock.Mock
}

func (m *mockPostRepository) Save(ctx context.Context, p *post.Post) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*post.Post); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockReportRepository struct {
	mock.Mock
}

func (m *mockReportRepository) Create(ctx context.Context, r *report.Report) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*report.Report, error) {
	args := m.Called(ctx, id)
	if r, ok := args.Get(0).(*report.Report); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReportRepository) List(ctx context.Context, filter report.ListFilter) ([]*report.Report, int64, error) {
	args := m.Called(ctx, filter)
	reports, _ := args.Get(0).([]*report.Report)
	return reports, args.Get(1).(int64), args.Error(2)
}

func (m *mockReportRepository) Close(ctx context.Context, r *report.Report, restorePost bool) error {
	return m.Called(ctx, r, restorePost).Error(0)
}

type mockModlogRepository struct {
	mock.Mock
}

func (m *mockModlogRepository) Create(ctx context.Context, e *modlog.Entry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockModlogRepository) ListByUser(ctx context.Context, userID string, offset, limit int) ([]*modlog.Entry, error) {
	args := m.Called(ctx, userID, offset, limit)
	entries, _ := args.Get(0).([]*modlog.Entry)
	return entries, args.Error(1)
}

type mockCacheClient struct {
	mock.Mock
}

func (m *mockCacheClient) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockCacheClient) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}

func (m *mockCacheClient) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockCacheClient) SetOnce(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.Error(1)
}

func (m *mockCacheClient) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockCacheClient) RedisClient() *redis.Client {
	return nil
}

type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) Publish(ctx context.Context, ev event.Event) error {
	return m.Called(ctx, ev).Error(0)
}

// recordingAudit keeps every emitted event.
type recordingAudit struct {
	mu     sync.Mutex
	events []auditlogs.Event
}

func (a *recordingAudit) Emit(_ context.Context, ev auditlogs.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

func (a *recordingAudit) Close() error { return nil }

func (a *recordingAudit) types() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.events))
	for _, ev := range a.events {
		out = append(out, ev.Event.Type)
	}
	return out
}

// recordingRecorder keeps log entries instead of enqueueing them.
type recordingRecorder struct {
	mu      sync.Mutex
	entries []*modlog.Entry
}

func (r *recordingRecorder) Record(entry *modlog.Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

func (r *recordingRecorder) all() []*modlog.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*modlog.Entry(nil), r.entries...)
}
