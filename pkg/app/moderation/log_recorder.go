package moderation

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sportsfeed/contentguard/pkg/domain/modlog"
	"github.com/sportsfeed/contentguard/pkg/infra/httpx"
	"github.com/sportsfeed/contentguard/pkg/infra/prometheus"
	"github.com/sportsfeed/contentguard/pkg/infra/worker"
)

const (
	logTaskName            = "moderation_log"
	DefaultLogWriteTimeout = 3 * time.Second
)

//go:generate mockery --name=LogRecorder --dir=. --output=./mocks --filename=log_recorder_mock.go --case=underscore --with-expecter
type LogRecorder interface {
	Record(entry *modlog.Entry)
}

type logRecorder struct {
	logger  *logrus.Logger
	repo    modlog.Repository
	worker  worker.Worker
	breaker httpx.CircuitBreaker
	timeout time.Duration
}

// NewLogRecorder writes moderation log entries on the background worker. The
// caller never waits for the write and never sees its error.
func NewLogRecorder(
	logger *logrus.Logger,
	repo modlog.Repository,
	w worker.Worker,
	breaker httpx.CircuitBreaker,
	timeout time.Duration,
) LogRecorder {
	if timeout <= 0 {
		timeout = DefaultLogWriteTimeout
	}
	return &logRecorder{
		logger:  logger,
		repo:    repo,
		worker:  w,
		breaker: breaker,
		timeout: timeout,
	}
}

func (r *logRecorder) Record(entry *modlog.Entry) {
	r.worker.Enqueue(logTaskName, func(ctx context.Context) {
		r.write(ctx, entry)
	})
}

func (r *logRecorder) write(ctx context.Context, entry *modlog.Entry) {
	writeCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	err := r.breaker.Execute(func() error {
		return r.repo.Create(writeCtx, entry)
	})
	if err == nil {
		prometheus.BackgroundTasksTotal.WithLabelValues(logTaskName, "ok").Inc()
		return
	}

	result := "error"
	if httpx.IsOpen(err) {
		result = "rejected"
	}
	prometheus.BackgroundTasksTotal.WithLabelValues(logTaskName, result).Inc()
	r.logger.WithError(err).WithFields(logrus.Fields{
		"user_id":    entry.UserID,
		"content_id": entry.ContentID,
		"context":    entry.Context,
	}).Error("failed to write moderation log")
}
