package auditlogs

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

type Service interface {
	Emit(ctx context.Context, event Event)
	Close() error
}

type service struct {
	enabled bool
	logger  *logrus.Logger
	sink    Sink
	timeout time.Duration
}

func NewService(sink Sink, logger *logrus.Logger, enabled bool) Service {
	return &service{
		enabled: enabled,
		logger:  logger,
		sink:    sink,
		timeout: 5 * time.Second,
	}
}

// Emit writes the event and only logs failures. Audit events never change a
// moderation verdict.
func (s *service) Emit(ctx context.Context, event Event) {
	if !s.enabled || s.sink == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if event.Actor.Type == "" {
		event.Actor = Actor{ID: "system", Type: ActorTypeSystem}
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()
	if err := s.sink.Write(writeCtx, event); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"event_type": event.Event.Type,
			"target_id":  event.Target.ID,
		}).Error("failed to emit audit event")
	}
}

func (s *service) Close() error {
	if s.sink != nil {
		s.sink.Close()
	}
	return nil
}
