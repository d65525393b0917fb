package subscriber

import (
	"context"

	"github.com/sirupsen/logrus"
	appmod "github.com/sportsfeed/contentguard/pkg/app/moderation"
	"github.com/sportsfeed/contentguard/pkg/infra/cache"
	"github.com/sportsfeed/contentguard/pkg/infra/cache/event"
)

type rulesReloadedSubscriber struct {
	logger   *logrus.Logger
	reloader appmod.RulesReloader
}

// NewRulesReloadedSubscriber rebuilds the local classifier when another
// instance reloads the rule table.
func NewRulesReloadedSubscriber(
	logger *logrus.Logger,
	reloader appmod.RulesReloader,
) cache.EventSubscriber[event.RulesReloadedEvent] {
	return &rulesReloadedSubscriber{
		logger:   logger,
		reloader: reloader,
	}
}

func (s *rulesReloadedSubscriber) OnEvent(ctx context.Context, ev event.RulesReloadedEvent) error {
	if ev.Origin == s.reloader.InstanceID() {
		return nil
	}
	if err := s.reloader.Apply(ctx); err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{
		"origin": ev.Origin,
		"actor":  ev.Actor,
	}).Info("moderation rules reloaded from event")
	return nil
}
