package worker

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"github.com/sportsfeed/contentguard/pkg/infra/prometheus"
)

const DefaultQueueSize = 1000

type Task func(ctx context.Context)

// Worker runs best-effort background tasks on a fixed pool. Tasks enqueued
// while the queue is full are dropped.
type Worker interface {
	StartWorkers(n int)
	Enqueue(name string, task Task) bool
	Shutdown()
}

type queued struct {
	name string
	task Task
}

type worker struct {
	logger   *logrus.Logger
	taskChan chan queued
	ctx      context.Context
	cancel   context.CancelFunc
	closed   atomic.Bool
	mu       sync.RWMutex
	wg       sync.WaitGroup
}

func NewWorker(logger *logrus.Logger, queueSize int) Worker {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &worker{
		logger:   logger,
		taskChan: make(chan queued, queueSize),
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (w *worker) StartWorkers(n int) {
	if n <= 0 {
		n = 1
	}
	w.logger.WithField("workers", n).Info("starting background workers")
	for i := 0; i < n; i++ {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			for q := range w.taskChan {
				w.run(q)
			}
		}()
	}
}

func (w *worker) run(q queued) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.WithFields(logrus.Fields{"task": q.name, "panic": r}).Error("background task panicked")
			prometheus.BackgroundTasksTotal.WithLabelValues(q.name, "panic").Inc()
		}
	}()
	q.task(w.ctx)
}

func (w *worker) Enqueue(name string, task Task) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed.Load() {
		return false
	}
	select {
	case w.taskChan <- queued{name: name, task: task}:
		return true
	default:
		w.logger.WithField("task", name).Warn("task queue is full, dropping task")
		prometheus.BackgroundTasksTotal.WithLabelValues(name, "dropped").Inc()
		return false
	}
}

// Shutdown stops accepting tasks and waits for queued ones to finish.
func (w *worker) Shutdown() {
	w.mu.Lock()
	if w.closed.Swap(true) {
		w.mu.Unlock()
		return
	}
	close(w.taskChan)
	w.mu.Unlock()

	w.logger.Info("draining background workers")
	w.wg.Wait()
	w.cancel()
	w.logger.Info("background workers stopped")
}
